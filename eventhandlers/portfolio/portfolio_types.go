// Package portfolio aggregates per-instrument positions with cash and
// equity bookkeeping, and hosts the manager that turns signals into
// risk-checked orders and fills into transactions.
package portfolio

import (
	"errors"

	"github.com/quantetra/backtester/data"
	"github.com/quantetra/backtester/eventhandlers/portfolio/risk"
	"github.com/quantetra/backtester/eventhandlers/portfolio/sizing"
	"github.com/quantetra/backtester/money"
	"github.com/quantetra/backtester/positions"
)

var (
	errQuotesUnset = errors.New("portfolio requires a price source")
	errSizerUnset  = errors.New("position sizer unset")
	errRiskUnset   = errors.New("risk manager unset")
)

// Portfolio owns the open positions map, the append-only closed positions
// log, and the cash/equity accounting across them. Equity always equals
// initial cash plus total realized P&L plus the sum of open unrealized P&L.
type Portfolio struct {
	quotes data.Quoter

	InitialCash money.Price
	Cash        money.Price

	Positions       map[string]*positions.Position
	ClosedPositions []*positions.Position

	RealizedPNL   money.Price
	UnrealizedPNL money.Price
	Equity        money.Price

	// position IDs come from this sequence; it is owned here rather than
	// shared globally
	nextID int64
}

// Manager routes portfolio-facing events: signals through the sizing and
// risk pipeline, fills into position transactions
type Manager struct {
	Portfolio *Portfolio
	Sizer     sizing.Handler
	Risk      risk.Handler
}
