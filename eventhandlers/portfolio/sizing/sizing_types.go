// Package sizing turns a suggested order with sizing hints into a suggested
// order with a concrete quantity. Sizers consult the portfolio for equity and
// open positions but never mutate it.
package sizing

import (
	"errors"

	"github.com/shopspring/decimal"

	"github.com/quantetra/backtester/data"
	"github.com/quantetra/backtester/eventtypes/order"
	"github.com/quantetra/backtester/money"
	"github.com/quantetra/backtester/positions"
)

var (
	errNoQuote         = errors.New("no usable price to size against")
	errNoMargin        = errors.New("derivative sizing requires a positive margin")
	errNonZeroQuantity = errors.New("rotational sizing requires a zero quantity suggestion")
	errBadFraction     = errors.New("sizing fraction must be non-zero")
)

// Handler sizes a suggested order. A nil result with a nil error means the
// suggestion resolved to a no-op and no order should be placed.
type Handler interface {
	SizeOrder(p PortfolioInfo, o *order.Suggested) (*order.Suggested, error)
}

// PortfolioInfo is the read-only view of the portfolio a sizer is allowed
type PortfolioInfo interface {
	EquityValue() money.Price
	OpenPosition(ticker string) (*positions.Position, bool)
	Quotes() data.Quoter
}

// Fixed sizes every entry at the same share or contract count
type Fixed struct {
	Quantity int64
}

// FixedDollar sizes every entry to a constant dollar amount: shares the
// amount buys at the last close for cash instruments, contracts it covers in
// margin for derivatives
type FixedDollar struct {
	Amount money.Price
}

// Fractional sizes entries to a fraction of current portfolio equity, with
// optional scale-in: the fraction's total quantity is split across Units
// tranches and the order's Unit selects which tranche this entry fills
type Fractional struct {
	// Fraction of equity to expose, used when the order carries none or
	// UseOrderFraction is false
	Fraction decimal.Decimal
	// UseOrderFraction prefers the fraction on the suggested order itself
	UseOrderFraction bool
	// DollarPerContract, when set, divides the dollar exposure instead of
	// the instrument price (futures sized by margin or big point value)
	DollarPerContract money.Price
	// Units is the number of scale-in tranches, minimum 1
	Units int64
}

// Rotational sizes orders to reach a signed target net exposure expressed as
// a fraction of equity, buying or selling whatever delta closes the gap
// between the target and the current position. An order fraction of zero
// fully closes the open position.
type Rotational struct {
	// Fraction scales every order's target fraction, defaulting to 1
	Fraction decimal.Decimal
}
