package data

import (
	"fmt"
	"sort"
	"time"

	"github.com/quantetra/backtester/common"
	"github.com/quantetra/backtester/eventtypes/bar"
	"github.com/quantetra/backtester/eventtypes/tick"
	"github.com/quantetra/backtester/instrument"
	"github.com/quantetra/backtester/money"
)

// BarStream streams a pre-loaded, time-merged sequence of OHLCV bars. The
// CSV and SQLite feeds load their rows into one of these. Bid and ask
// queries both answer with the last close, the convention for bar feeds.
type BarStream struct {
	bars        []*bar.Bar
	offset      int
	latest      map[string]*bar.Bar
	instruments map[string]instrument.Details
	done        bool
}

// NewBarStream merge-sorts bars from all tickers into one chronological
// stream. Tickers without explicit metadata default to cash instruments.
func NewBarStream(bars []*bar.Bar, details map[string]instrument.Details) *BarStream {
	sort.SliceStable(bars, func(i, j int) bool {
		return bars[i].GetTime().Before(bars[j].GetTime())
	})
	info := make(map[string]instrument.Details, len(details))
	for k, v := range details {
		info[k] = v
	}
	for i := range bars {
		if _, ok := info[bars[i].Ticker()]; !ok {
			info[bars[i].Ticker()] = instrument.Equity(bars[i].Ticker())
		}
	}
	return &BarStream{
		bars:        bars,
		latest:      make(map[string]*bar.Bar),
		instruments: info,
	}
}

// StreamNext advances simulated time by one bar
func (s *BarStream) StreamNext() (common.MarketEventHandler, bool) {
	if s.offset >= len(s.bars) {
		s.done = true
		return nil, false
	}
	b := s.bars[s.offset]
	s.offset++
	s.latest[b.Ticker()] = b
	return b, true
}

// Continue reports whether the stream still has data
func (s *BarStream) Continue() bool {
	return !s.done
}

// IsTick reports that this is a bar-based feed
func (s *BarStream) IsTick() bool {
	return false
}

// BestBidAsk answers with the last close on both sides
func (s *BarStream) BestBidAsk(ticker string) (money.Price, money.Price, error) {
	b, ok := s.latest[ticker]
	if !ok {
		return 0, 0, fmt.Errorf("%w: %s", ErrTickerNotFound, ticker)
	}
	return b.Close, b.Close, nil
}

// LastClose returns the most recent close for the ticker
func (s *BarStream) LastClose(ticker string) (money.Price, error) {
	b, ok := s.latest[ticker]
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrTickerNotFound, ticker)
	}
	return b.Close, nil
}

// LastTimestamp returns the time of the ticker's most recent bar
func (s *BarStream) LastTimestamp(ticker string) (time.Time, error) {
	b, ok := s.latest[ticker]
	if !ok {
		return time.Time{}, fmt.Errorf("%w: %s", ErrTickerNotFound, ticker)
	}
	return b.GetTime(), nil
}

// Instrument returns the ticker's metadata
func (s *BarStream) Instrument(ticker string) (instrument.Details, error) {
	d, ok := s.instruments[ticker]
	if !ok {
		return instrument.Details{}, fmt.Errorf("%w: %s", ErrTickerNotFound, ticker)
	}
	return d, nil
}

// Reset rewinds the stream to the beginning
func (s *BarStream) Reset() {
	s.offset = 0
	s.done = false
	s.latest = make(map[string]*bar.Bar)
}

// TickStream streams a pre-loaded sequence of top-of-book quotes. LastClose
// answers with the mid-price, the closest analogue a quote feed has.
type TickStream struct {
	ticks       []*tick.Tick
	offset      int
	latest      map[string]*tick.Tick
	instruments map[string]instrument.Details
	done        bool
}

// NewTickStream merge-sorts ticks from all tickers into one chronological
// stream
func NewTickStream(ticks []*tick.Tick, details map[string]instrument.Details) *TickStream {
	sort.SliceStable(ticks, func(i, j int) bool {
		return ticks[i].GetTime().Before(ticks[j].GetTime())
	})
	info := make(map[string]instrument.Details, len(details))
	for k, v := range details {
		info[k] = v
	}
	for i := range ticks {
		if _, ok := info[ticks[i].Ticker()]; !ok {
			info[ticks[i].Ticker()] = instrument.Equity(ticks[i].Ticker())
		}
	}
	return &TickStream{
		ticks:       ticks,
		latest:      make(map[string]*tick.Tick),
		instruments: info,
	}
}

// StreamNext advances simulated time by one quote
func (s *TickStream) StreamNext() (common.MarketEventHandler, bool) {
	if s.offset >= len(s.ticks) {
		s.done = true
		return nil, false
	}
	t := s.ticks[s.offset]
	s.offset++
	s.latest[t.Ticker()] = t
	return t, true
}

// Continue reports whether the stream still has data
func (s *TickStream) Continue() bool {
	return !s.done
}

// IsTick reports that this is a quote-based feed
func (s *TickStream) IsTick() bool {
	return true
}

// BestBidAsk returns the most recent top-of-book quote
func (s *TickStream) BestBidAsk(ticker string) (money.Price, money.Price, error) {
	t, ok := s.latest[ticker]
	if !ok {
		return 0, 0, fmt.Errorf("%w: %s", ErrTickerNotFound, ticker)
	}
	return t.Bid, t.Ask, nil
}

// LastClose returns the mid-price of the most recent quote
func (s *TickStream) LastClose(ticker string) (money.Price, error) {
	t, ok := s.latest[ticker]
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrTickerNotFound, ticker)
	}
	return t.Mid(), nil
}

// LastTimestamp returns the time of the ticker's most recent quote
func (s *TickStream) LastTimestamp(ticker string) (time.Time, error) {
	t, ok := s.latest[ticker]
	if !ok {
		return time.Time{}, fmt.Errorf("%w: %s", ErrTickerNotFound, ticker)
	}
	return t.GetTime(), nil
}

// Instrument returns the ticker's metadata
func (s *TickStream) Instrument(ticker string) (instrument.Details, error) {
	d, ok := s.instruments[ticker]
	if !ok {
		return instrument.Details{}, fmt.Errorf("%w: %s", ErrTickerNotFound, ticker)
	}
	return d, nil
}

// Reset rewinds the stream to the beginning
func (s *TickStream) Reset() {
	s.offset = 0
	s.done = false
	s.latest = make(map[string]*tick.Tick)
}
