package engine

import (
	"context"
	"fmt"

	"github.com/yanun0323/logs"

	"github.com/quantetra/backtester/common"
	"github.com/quantetra/backtester/eventholder"
	"github.com/quantetra/backtester/eventtypes/bar"
	"github.com/quantetra/backtester/eventtypes/fill"
	"github.com/quantetra/backtester/eventtypes/order"
	"github.com/quantetra/backtester/eventtypes/signal"
	"github.com/quantetra/backtester/eventtypes/tick"
)

// New assembles a backtest from its components
func New(d *BackTest) (*BackTest, error) {
	if d == nil || d.Data == nil || d.Strategy == nil || d.Manager == nil ||
		d.Exchange == nil || d.Statistics == nil {
		return nil, errNilComponent
	}
	if d.Queue == nil {
		d.Queue = &eventholder.Holder{}
	}
	return d, nil
}

// Run drives the loop to completion: pop the next queued event, or stream
// the next market event when the queue is empty, until both are exhausted
func (bt *BackTest) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		ev, ok := bt.Queue.NextEvent()
		if !ok {
			market, more := bt.Data.StreamNext()
			if !more {
				return nil
			}
			bt.Queue.AppendEvent(market)
			continue
		}
		if err := bt.handleEvent(ev); err != nil {
			return err
		}
	}
}

// handleEvent routes one event by kind. An event kind the loop does not know
// is a wiring bug and aborts the run.
func (bt *BackTest) handleEvent(ev common.EventHandler) error {
	switch e := ev.(type) {
	case common.MarketEventHandler:
		return bt.onMarket(e)
	case *signal.Signal:
		return bt.onSignal(e)
	case *order.Order:
		return bt.onOrder(e)
	case *fill.Fill:
		return bt.onFill(e)
	default:
		return fmt.Errorf("%w: %T", errUnhandledEvent, ev)
	}
}

// onMarket revalues the book at the new prices, lets the strategy react, and
// samples the equity curve
func (bt *BackTest) onMarket(ev common.MarketEventHandler) error {
	bt.Manager.UpdatePortfolioValue()

	var sigs []*signal.Signal
	var err error
	switch e := ev.(type) {
	case *bar.Bar:
		sigs, err = bt.Strategy.OnBar(e)
	case *tick.Tick:
		sigs, err = bt.Strategy.OnTick(e)
	}
	if err != nil {
		return err
	}
	for i := range sigs {
		if sigs[i] == nil {
			continue
		}
		bt.logEvent(sigs[i])
		bt.Queue.AppendEvent(sigs[i])
	}

	bt.Statistics.Update(ev.GetTime(), bt.Manager.Portfolio)
	return nil
}

func (bt *BackTest) onSignal(ev *signal.Signal) error {
	orders, err := bt.Manager.OnSignal(ev)
	if err != nil {
		return err
	}
	for i := range orders {
		bt.logEvent(orders[i])
		bt.Queue.AppendEvent(orders[i])
	}
	return nil
}

func (bt *BackTest) onOrder(ev *order.Order) error {
	f, err := bt.Exchange.ExecuteOrder(ev, bt.Data)
	if err != nil {
		return err
	}
	bt.logEvent(f)
	bt.Queue.AppendEvent(f)
	// the audit trail sees the fill once it is queued for the portfolio
	if bt.Compliance != nil {
		bt.Compliance.AddRecord(f)
	}
	return nil
}

func (bt *BackTest) logEvent(ev fmt.Stringer) {
	if bt.Verbose {
		logs.Infof("%s", ev)
		return
	}
	logs.Debugf("%s", ev)
}

// onFill books the trade, then resamples the same timestamp so the equity
// curve reflects the settled state
func (bt *BackTest) onFill(ev *fill.Fill) error {
	if err := bt.Manager.OnFill(ev); err != nil {
		return err
	}
	bt.Statistics.TrackFill(ev)
	bt.Statistics.Update(ev.GetTime(), bt.Manager.Portfolio)
	return nil
}

// Reset returns every component to its pre-run state
func (bt *BackTest) Reset() {
	bt.Queue.Reset()
	bt.Data.Reset()
	bt.Strategy.Reset()
	bt.Manager.Portfolio.Reset()
	bt.Statistics.Reset()
	if bt.Compliance != nil {
		bt.Compliance.Reset()
	}
}
