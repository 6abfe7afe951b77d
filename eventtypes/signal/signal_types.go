// Package signal defines the event a strategy emits when it wants the
// portfolio to consider a trade.
package signal

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/quantetra/backtester/common"
	"github.com/quantetra/backtester/eventtypes/event"
	"github.com/quantetra/backtester/eventtypes/order"
	"github.com/quantetra/backtester/money"
)

// Signal carries a trading intent from a strategy. Quantity and fraction are
// sizing hints only; the portfolio's sizer decides the transacted amount.
type Signal struct {
	event.Base
	Action common.Side
	// SuggestedQuantity, when non-zero, bypasses entry sizing (exits carry
	// the quantity to close)
	SuggestedQuantity int64
	// Fraction is the share of equity the signal wants exposed, or the
	// target net exposure under rotational sizing
	Fraction decimal.Decimal
	// Unit is the 1-based scale-in tranche this signal represents
	Unit int64
	// Name ties entries and exits to a strategy rule for reporting
	Name string
	// Price and Commission are optional pre-agreed fill terms used by the
	// pass-through execution handler
	Price      money.Price
	Commission money.Price
	// Stop, when set, attaches a protective stop to the resulting order
	Stop *order.StopLoss
}

// New returns a signal event
func New(ticker string, t time.Time, action common.Side) *Signal {
	return &Signal{
		Base:   event.Base{Symbol: ticker, Time: t},
		Action: action,
		Unit:   1,
	}
}

// Priority returns the signal priority rank
func (s *Signal) Priority() int {
	return event.PrioritySignal
}

func (s *Signal) String() string {
	return fmt.Sprintf("SIGNAL ticker[%s] action[%s] quantity[%d] fraction[%s] unit[%d] name[%s]",
		s.Symbol, s.Action, s.SuggestedQuantity, s.Fraction, s.Unit, s.Name)
}
