// Package data defines the price source contract the engine consumes and
// shared stream plumbing for the bar and tick feed implementations.
package data

import (
	"errors"
	"time"

	"github.com/quantetra/backtester/common"
	"github.com/quantetra/backtester/instrument"
	"github.com/quantetra/backtester/money"
)

// ErrTickerNotFound is returned when quotes are requested for an instrument
// the stream has not yet produced data for
var ErrTickerNotFound = errors.New("ticker not found in price stream")

// Quoter answers point-in-time price queries against the most recently
// streamed market data
type Quoter interface {
	// IsTick reports whether the feed is quote-based (bid/ask) rather than
	// bar-based (last close)
	IsTick() bool
	BestBidAsk(ticker string) (bid, ask money.Price, err error)
	LastClose(ticker string) (money.Price, error)
	LastTimestamp(ticker string) (time.Time, error)
	Instrument(ticker string) (instrument.Details, error)
}

// Handler is the full price source consumed by the engine: quotes plus the
// ability to advance simulated time one market event at a time
type Handler interface {
	Quoter
	// StreamNext produces the next market event, reporting false once the
	// stream is exhausted
	StreamNext() (common.MarketEventHandler, bool)
	// Continue reports whether more data remains; it flips false permanently
	// at end of stream
	Continue() bool
	Reset()
}
