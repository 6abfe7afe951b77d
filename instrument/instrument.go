// Package instrument describes the static metadata the engine needs about a
// tradeable instrument: how its notional scales and what margin it requires.
package instrument

import "github.com/quantetra/backtester/money"

// Type classifies how an instrument's cash flows are calculated
type Type string

const (
	// Stock is a cash instrument, transacted at full notional value
	Stock Type = "STK"
	// Future is a derivative instrument, transacted on margin with a
	// contract multiplier applied to every point of price movement
	Future Type = "FUT"
)

// Details holds per-instrument metadata used by sizing and cash accounting
type Details struct {
	Ticker        string
	Name          string
	Type          Type
	BigPointValue int64
	Margin        money.Price
	TickSize      money.Price
}

// Multiplier returns the contract multiplier, defaulting to 1 for
// instruments that never set one
func (d Details) Multiplier() int64 {
	if d.BigPointValue <= 0 {
		return 1
	}
	return d.BigPointValue
}

// Equity returns stock-style defaults for a ticker
func Equity(ticker string) Details {
	return Details{
		Ticker:        ticker,
		Type:          Stock,
		BigPointValue: 1,
	}
}
