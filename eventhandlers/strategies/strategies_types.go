// Package strategies defines the contract trading strategies implement and a
// registry for loading them by name
package strategies

import (
	"errors"

	"github.com/quantetra/backtester/eventtypes/bar"
	"github.com/quantetra/backtester/eventtypes/signal"
	"github.com/quantetra/backtester/eventtypes/tick"
)

var errStrategyNotFound = errors.New("strategy not found")

// Handler reacts to market data with zero or more trading signals. A
// strategy never sizes or places orders itself; it only states intent.
type Handler interface {
	Name() string
	OnBar(b *bar.Bar) ([]*signal.Signal, error)
	OnTick(t *tick.Tick) ([]*signal.Signal, error)
	Reset()
}
