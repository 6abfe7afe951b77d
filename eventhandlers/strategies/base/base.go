// Package base provides default behaviour shared by strategy implementations
package base

import (
	"github.com/quantetra/backtester/eventtypes/signal"
	"github.com/quantetra/backtester/eventtypes/tick"
)

// Strategy is embedded by concrete strategies to inherit no-op behaviour for
// the event kinds they do not trade on
type Strategy struct{}

// OnTick ignores quote updates
func (s *Strategy) OnTick(_ *tick.Tick) ([]*signal.Signal, error) {
	return nil, nil
}

// Reset is a no-op for stateless strategies
func (s *Strategy) Reset() {}
