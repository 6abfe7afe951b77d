// Package engine owns the dispatch loop: it drains the event queue in
// timestamp and priority order, refills it from the data stream, and routes
// each event to the strategy, portfolio and execution layers.
package engine

import (
	"errors"

	"github.com/quantetra/backtester/data"
	"github.com/quantetra/backtester/eventhandlers/exchange"
	"github.com/quantetra/backtester/eventhandlers/portfolio"
	"github.com/quantetra/backtester/eventhandlers/portfolio/compliance"
	"github.com/quantetra/backtester/eventhandlers/statistics"
	"github.com/quantetra/backtester/eventhandlers/strategies"
	"github.com/quantetra/backtester/eventholder"
)

var (
	errUnhandledEvent = errors.New("unhandled event type")
	errNilComponent   = errors.New("backtest component unset")
)

// BackTest holds every component of a run. Components communicate only
// through events on the queue; the loop is single threaded so each event is
// fully processed before the next is popped.
type BackTest struct {
	Queue      *eventholder.Holder
	Data       data.Handler
	Strategy   strategies.Handler
	Manager    *portfolio.Manager
	Exchange   exchange.ExecutionHandler
	Statistics statistics.Handler
	// Compliance, when set, holds the fill audit trail for post-run export
	Compliance *compliance.Manager
	// Verbose promotes per-event logging from debug to info
	Verbose bool
}
