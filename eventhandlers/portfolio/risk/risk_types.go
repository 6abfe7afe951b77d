// Package risk is the last gate before execution: it turns a fully sized
// suggestion into the final order events, and may veto, trim or split them.
package risk

import (
	"github.com/quantetra/backtester/data"
	"github.com/quantetra/backtester/eventtypes/order"
	"github.com/quantetra/backtester/money"
	"github.com/quantetra/backtester/positions"
)

// Handler refines a sized suggestion into zero or more final orders
type Handler interface {
	RefineOrders(p PortfolioInfo, o *order.Suggested) ([]*order.Order, error)
}

// PortfolioInfo is the read-only view of the portfolio a risk manager sees
type PortfolioInfo interface {
	EquityValue() money.Price
	CashValue() money.Price
	OpenPosition(ticker string) (*positions.Position, bool)
	Quotes() data.Quoter
}

// Passthrough approves every sized suggestion as a single order. Zero
// quantity suggestions are dropped silently so sizers can report "nothing to
// do" without special-casing.
type Passthrough struct{}
