// Package tick defines the market event for a top-of-book quote update.
package tick

import (
	"time"

	"github.com/quantetra/backtester/eventtypes/event"
	"github.com/quantetra/backtester/money"
)

// Tick is a best bid/ask update for one instrument
type Tick struct {
	event.Base
	Bid money.Price
	Ask money.Price
}

// New returns a tick event
func New(ticker string, t time.Time, bid, ask money.Price) *Tick {
	return &Tick{
		Base: event.Base{Symbol: ticker, Time: t},
		Bid:  bid,
		Ask:  ask,
	}
}

// Priority returns the market data priority rank
func (t *Tick) Priority() int {
	return event.PriorityMarket
}

// IsMarket flags the tick as a market data event
func (t *Tick) IsMarket() bool {
	return true
}

// Mid returns the midpoint of the bid-ask spread
func (t *Tick) Mid() money.Price {
	return (t.Bid + t.Ask) / 2
}
