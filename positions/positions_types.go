// Package positions implements the lot-accurate financial state of a single
// instrument position: FIFO lot matching, realized and unrealized P&L, and
// cost basis, all in fixed-point arithmetic.
package positions

import (
	"time"

	"github.com/quantetra/backtester/common"
	"github.com/quantetra/backtester/money"
)

// Lot records one executed trade tranche. Remaining tracks how much of the
// tranche has not yet been matched against opposite-side trades; the sum of
// Remaining across a side's lots always equals the position's open quantity
// on that side.
type Lot struct {
	Quantity    int64
	Remaining   int64
	Price       money.Price
	Commission  money.Price
	InitialCost money.Price
}

// Position is the running account of one instrument. Realized P&L only ever
// accumulates; unrealized P&L, cost basis and market value are recomputed
// from the remaining open lots on every refresh.
type Position struct {
	ID         int64
	Side       common.Side
	Ticker     string
	Multiplier int64

	// Quantity is the cumulative entry-side quantity, OpenQuantity the
	// portion not yet closed
	Quantity     int64
	OpenQuantity int64

	Bought []Lot
	Sold   []Lot

	RealizedPNL   money.Price
	UnrealizedPNL money.Price
	CostBasis     money.Price
	MarketValue   money.Price

	EntryPrice      money.Price
	ExitPrice       money.Price
	TotalCommission money.Price

	EntryName string
	ExitName  string
	EntryTime time.Time
	ExitTime  time.Time

	// TradeReturn is a plain rational return for display; it is never fed
	// back into the integer accounting
	TradeReturn    float64
	TimeInPosition int64

	current time.Time
}
