// Package bar defines the market event for one OHLCV period.
package bar

import (
	"time"

	"github.com/quantetra/backtester/eventtypes/event"
	"github.com/quantetra/backtester/money"
)

// Bar is a single open-high-low-close-volume period for one instrument
type Bar struct {
	event.Base
	Period   time.Duration
	Open     money.Price
	High     money.Price
	Low      money.Price
	Close    money.Price
	AdjClose money.Price
	Volume   int64
}

// New returns a bar event
func New(ticker string, t time.Time, period time.Duration, open, high, low, closePrice money.Price, volume int64) *Bar {
	return &Bar{
		Base:   event.Base{Symbol: ticker, Time: t},
		Period: period,
		Open:   open,
		High:   high,
		Low:    low,
		Close:  closePrice,
		Volume: volume,
	}
}

// Priority returns the market data priority rank
func (b *Bar) Priority() int {
	return event.PriorityMarket
}

// IsMarket flags the bar as a market data event
func (b *Bar) IsMarket() bool {
	return true
}
