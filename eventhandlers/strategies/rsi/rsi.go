package rsi

import (
	"github.com/shopspring/decimal"
	"github.com/thrasher-corp/gct-ta/indicators"

	"github.com/quantetra/backtester/common"
	"github.com/quantetra/backtester/eventtypes/bar"
	"github.com/quantetra/backtester/eventtypes/signal"
)

// New returns an RSI strategy with the conventional 14/30/70 settings
func New() *Strategy {
	return &Strategy{
		Period: 14,
		Low:    decimal.NewFromInt(30),
		High:   decimal.NewFromInt(70),
		closes: make(map[string][]float64),
		open:   make(map[string]bool),
	}
}

// Name returns the registry name
func (s *Strategy) Name() string {
	return Name
}

// OnBar appends the close to the instrument's history and signals when the
// latest RSI value crosses the strategy's lines. Entries are long-only and
// exits flatten whatever is open.
func (s *Strategy) OnBar(b *bar.Bar) ([]*signal.Signal, error) {
	if b == nil {
		return nil, common.ErrNilEvent
	}
	if s.closes == nil {
		s.closes = make(map[string][]float64)
		s.open = make(map[string]bool)
	}

	ticker := b.Ticker()
	s.closes[ticker] = append(s.closes[ticker], b.Close.Float64())
	history := s.closes[ticker]
	if len(history) <= s.Period {
		return nil, nil
	}

	values := indicators.RSI(history, s.Period)
	latest := decimal.NewFromFloat(values[len(values)-1])

	switch {
	case latest.LessThanOrEqual(s.Low) && !s.open[ticker]:
		s.open[ticker] = true
		sig := signal.New(ticker, b.GetTime(), common.Bought)
		sig.Name = Name
		return []*signal.Signal{sig}, nil
	case latest.GreaterThanOrEqual(s.High) && s.open[ticker]:
		s.open[ticker] = false
		sig := signal.New(ticker, b.GetTime(), common.Exit)
		sig.Name = Name
		return []*signal.Signal{sig}, nil
	}
	return nil, nil
}

// Reset discards price history and open state
func (s *Strategy) Reset() {
	s.closes = make(map[string][]float64)
	s.open = make(map[string]bool)
}
