package exchange

import (
	"fmt"

	"github.com/gofrs/uuid"
	"github.com/yanun0323/logs"

	"github.com/quantetra/backtester/common"
	"github.com/quantetra/backtester/data"
	"github.com/quantetra/backtester/eventtypes/fill"
	"github.com/quantetra/backtester/eventtypes/order"
	"github.com/quantetra/backtester/money"
)

// ExecuteOrder fills the order at the prevailing market terms
func (s *Simulated) ExecuteOrder(o *order.Order, quotes data.Quoter) (*fill.Fill, error) {
	if o == nil {
		return nil, common.ErrNilEvent
	}
	if o.Quantity == 0 {
		return nil, fmt.Errorf("%w: %s", errZeroQuantity, o.Ticker())
	}

	price, err := s.fillPrice(o, quotes)
	if err != nil {
		return nil, err
	}

	commission := o.Commission
	if commission == 0 && s.Fee != nil {
		commission = s.Fee(o.Quantity, price)
	}

	ev := fill.New(o.Ticker(), o.GetTime(), o.Action, o.Quantity, s.Venue, price, commission)
	ev.Name = o.Name
	ev.StopPrice = stopPrice(o.Action, price, o.Stop)

	id, err := uuid.NewV4()
	if err != nil {
		return nil, err
	}
	ev.ID = id.String()
	o.ID = ev.ID
	return ev, nil
}

// fillPrice resolves the execution price: the order's pre-agreed price wins,
// then the touch on the taking side for quote feeds, then the last close
func (s *Simulated) fillPrice(o *order.Order, quotes data.Quoter) (money.Price, error) {
	if o.Price > 0 {
		return o.Price, nil
	}
	if quotes.IsTick() {
		bid, ask, err := quotes.BestBidAsk(o.Ticker())
		if err != nil {
			return 0, fmt.Errorf("%w: %s: %v", errNoMarketPrice, o.Ticker(), err)
		}
		if o.Action == common.Sold {
			return bid, nil
		}
		return ask, nil
	}
	last, err := quotes.LastClose(o.Ticker())
	if err != nil {
		return 0, fmt.Errorf("%w: %s: %v", errNoMarketPrice, o.Ticker(), err)
	}
	return last, nil
}

// stopPrice computes the protective trigger from the fill price. A stop-loss
// sits below the fill for longs and above it for shorts. Profit targets and
// trailing stops are not simulated and resolve to no trigger.
func stopPrice(action common.Side, fillPrice money.Price, stop *order.StopLoss) money.Price {
	if stop == nil {
		return 0
	}
	if stop.Type != order.StopLossType {
		logs.Warnf("stop type %s is not simulated, fill carries no trigger", stop.Type)
		return 0
	}

	var distance money.Price
	switch stop.Mode {
	case order.StopModePercent:
		distance = money.FromDecimal(fillPrice.Decimal().Mul(stop.Amount))
	default:
		distance = money.FromDecimal(stop.Amount)
	}

	if action == common.Sold {
		return fillPrice + distance
	}
	return fillPrice - distance
}

var _ ExecutionHandler = (*Simulated)(nil)
