package portfolio

import (
	"github.com/yanun0323/logs"

	"github.com/quantetra/backtester/common"
	"github.com/quantetra/backtester/eventhandlers/portfolio/risk"
	"github.com/quantetra/backtester/eventhandlers/portfolio/sizing"
	"github.com/quantetra/backtester/eventtypes/fill"
	"github.com/quantetra/backtester/eventtypes/order"
	"github.com/quantetra/backtester/eventtypes/signal"
)

// NewManager wires the portfolio to its sizing and risk pipeline
func NewManager(p *Portfolio, s sizing.Handler, r risk.Handler) (*Manager, error) {
	if p == nil {
		return nil, common.ErrNilArguments
	}
	if s == nil {
		return nil, errSizerUnset
	}
	if r == nil {
		return nil, errRiskUnset
	}
	return &Manager{Portfolio: p, Sizer: s, Risk: r}, nil
}

// OnSignal turns a strategy signal into zero or more final orders: the
// suggested order is built from the signal, the sizer fills in the quantity
// and the risk manager has the final say
func (m *Manager) OnSignal(ev *signal.Signal) ([]*order.Order, error) {
	if ev == nil {
		return nil, common.ErrNilEvent
	}
	suggested := m.suggestedFromSignal(ev)
	if suggested == nil {
		return nil, nil
	}

	sized, err := m.Sizer.SizeOrder(m.Portfolio, suggested)
	if err != nil {
		return nil, err
	}
	if sized == nil {
		// sizer reported a no-op, e.g. rotational zero delta
		return nil, nil
	}

	return m.Risk.RefineOrders(m.Portfolio, sized)
}

// OnFill books an executed order into the portfolio
func (m *Manager) OnFill(ev *fill.Fill) error {
	if ev == nil {
		return common.ErrNilEvent
	}
	m.Portfolio.TransactPosition(ev.Action, ev.Ticker(), ev.Quantity, ev.Price, ev.Commission, ev.GetTime(), ev.Name)
	return nil
}

// UpdatePortfolioValue revalues all open positions against current quotes
func (m *Manager) UpdatePortfolioValue() {
	m.Portfolio.Revalue()
}

// suggestedFromSignal builds the zero-or-hinted quantity suggestion. An exit
// signal against a flat instrument is a reportable no-op, not an error.
func (m *Manager) suggestedFromSignal(ev *signal.Signal) *order.Suggested {
	action := ev.Action
	quantity := ev.SuggestedQuantity

	if action == common.Exit {
		pos, ok := m.Portfolio.OpenPosition(ev.Ticker())
		if !ok {
			logs.Warnf("exit signal for %s with no open position, ignoring", ev.Ticker())
			return nil
		}
		action = pos.Side.Opposite()
		quantity = pos.OpenQuantity
	}

	return &order.Suggested{
		Ticker:     ev.Ticker(),
		Action:     action,
		Quantity:   quantity,
		Fraction:   ev.Fraction,
		Unit:       ev.Unit,
		Name:       ev.Name,
		Timestamp:  ev.GetTime(),
		Price:      ev.Price,
		Commission: ev.Commission,
		Stop:       ev.Stop,
	}
}
