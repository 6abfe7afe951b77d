// Package exchange simulates order execution: a final order comes in, a fill
// at the prevailing market terms comes out
package exchange

import (
	"errors"

	"github.com/quantetra/backtester/data"
	"github.com/quantetra/backtester/eventtypes/fill"
	"github.com/quantetra/backtester/eventtypes/order"
	"github.com/quantetra/backtester/money"
)

var (
	errNoMarketPrice = errors.New("no market price to fill against")
	errZeroQuantity  = errors.New("cannot execute a zero quantity order")
)

// ExecutionHandler turns a risk-approved order into a fill
type ExecutionHandler interface {
	ExecuteOrder(o *order.Order, quotes data.Quoter) (*fill.Fill, error)
}

// FeeFunc computes the commission for a trade
type FeeFunc func(quantity int64, price money.Price) money.Price

// FixedFee charges the same commission on every trade
func FixedFee(fee money.Price) FeeFunc {
	return func(int64, money.Price) money.Price { return fee }
}

// PerShareFee charges a commission per share with a minimum per trade
func PerShareFee(perShare, minimum money.Price) FeeFunc {
	return func(quantity int64, _ money.Price) money.Price {
		fee := perShare.MulQty(quantity)
		if fee < minimum {
			return minimum
		}
		return fee
	}
}

// Simulated executes orders instantly at the touch: buys lift the ask, sells
// hit the bid, and bar feeds fill at the last close. No latency, queueing or
// partial fills are modelled.
type Simulated struct {
	Venue string
	Fee   FeeFunc
}
