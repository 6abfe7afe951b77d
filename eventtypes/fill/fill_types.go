// Package fill defines the event describing an executed order.
package fill

import (
	"fmt"
	"time"

	"github.com/quantetra/backtester/common"
	"github.com/quantetra/backtester/eventtypes/event"
	"github.com/quantetra/backtester/money"
)

// Fill reports the terms an order was executed at
type Fill struct {
	event.Base
	ID         string
	Action     common.Side
	Quantity   int64
	Venue      string
	Price      money.Price
	Commission money.Price
	// StopPrice is the trigger computed from the order's stop-loss
	// specification; zero when no stop applies
	StopPrice money.Price
	Name      string
}

// New returns a fill event
func New(ticker string, t time.Time, action common.Side, quantity int64, venue string, price, commission money.Price) *Fill {
	return &Fill{
		Base:       event.Base{Symbol: ticker, Time: t},
		Action:     action,
		Quantity:   quantity,
		Venue:      venue,
		Price:      price,
		Commission: commission,
	}
}

// Priority returns the fill priority rank
func (f *Fill) Priority() int {
	return event.PriorityFill
}

func (f *Fill) String() string {
	return fmt.Sprintf("FILL ticker[%s] action[%s] quantity[%d] venue[%s] price[%s] commission[%s]",
		f.Symbol, f.Action, f.Quantity, f.Venue, f.Price, f.Commission)
}
