// Package order holds the three-stage refinement of a trading intent: a
// Suggested order carries sizing hints and zero quantity, the position sizer
// fills in the quantity, and the risk manager turns the sized result into
// zero or more final Order events for execution.
package order

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/quantetra/backtester/common"
	"github.com/quantetra/backtester/eventtypes/event"
	"github.com/quantetra/backtester/money"
)

// StopType selects which direction of price movement triggers a stop
type StopType string

// StopMode selects how the stop distance is expressed
type StopMode string

const (
	// StopLossType exits when price moves against the position
	StopLossType StopType = "LOSS"
	// StopProfitType exits when price moves in favour of the position
	StopProfitType StopType = "PROFIT"
	// StopTrailingType trails the stop behind the best price seen
	StopTrailingType StopType = "TRAILING"

	// StopModePoints expresses the stop distance in price points
	StopModePoints StopMode = "POINTS"
	// StopModePercent expresses the stop distance as a fraction of the
	// fill price
	StopModePercent StopMode = "PERCENT"
)

// StopLoss describes an optional protective stop attached to an order
type StopLoss struct {
	Type   StopType
	Mode   StopMode
	Amount decimal.Decimal
}

// Suggested is a trading intent before execution. It is created with zero
// quantity by the portfolio handler; keeping it a distinct type from the
// final Order event guarantees nothing is transacted unless it has passed
// the sizing and risk layers.
type Suggested struct {
	Ticker    string
	Action    common.Side
	Quantity  int64
	Fraction  decimal.Decimal
	Unit      int64
	Name      string
	Timestamp time.Time

	// Optional pre-agreed fill terms, carried through to execution
	Price      money.Price
	Commission money.Price
	Stop       *StopLoss
}

func (s *Suggested) String() string {
	return fmt.Sprintf("SUGGESTED ticker[%s] action[%s] quantity[%d] fraction[%s] unit[%d] name[%s]",
		s.Ticker, s.Action, s.Quantity, s.Fraction, s.Unit, s.Name)
}

// Order is a final, risk-approved order ready for execution
type Order struct {
	event.Base
	ID       string
	Action   common.Side
	Quantity int64
	Name     string

	Price      money.Price
	Commission money.Price
	Stop       *StopLoss
}

// New returns a final order event from a fully sized suggestion
func New(s *Suggested) *Order {
	return &Order{
		Base:       event.Base{Symbol: s.Ticker, Time: s.Timestamp},
		Action:     s.Action,
		Quantity:   s.Quantity,
		Name:       s.Name,
		Price:      s.Price,
		Commission: s.Commission,
		Stop:       s.Stop,
	}
}

// Priority returns the order priority rank
func (o *Order) Priority() int {
	return event.PriorityOrder
}

func (o *Order) String() string {
	return fmt.Sprintf("ORDER ticker[%s] action[%s] quantity[%d] name[%s]",
		o.Symbol, o.Action, o.Quantity, o.Name)
}
