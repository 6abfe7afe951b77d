// Package buyandhold implements the simplest possible strategy: buy each
// instrument on its first bar and never trade it again
package buyandhold

import (
	"github.com/quantetra/backtester/common"
	"github.com/quantetra/backtester/eventhandlers/strategies/base"
	"github.com/quantetra/backtester/eventtypes/bar"
	"github.com/quantetra/backtester/eventtypes/signal"
)

// Name is the registry name of the strategy
const Name = "buyandhold"

// Strategy buys once per instrument and holds
type Strategy struct {
	base.Strategy
	bought map[string]bool
}

// New returns a buy-and-hold strategy
func New() *Strategy {
	return &Strategy{bought: make(map[string]bool)}
}

// Name returns the registry name
func (s *Strategy) Name() string {
	return Name
}

// OnBar emits a single buy signal the first time an instrument is seen
func (s *Strategy) OnBar(b *bar.Bar) ([]*signal.Signal, error) {
	if b == nil {
		return nil, common.ErrNilEvent
	}
	if s.bought[b.Ticker()] {
		return nil, nil
	}
	s.bought[b.Ticker()] = true

	sig := signal.New(b.Ticker(), b.GetTime(), common.Bought)
	sig.Name = Name
	return []*signal.Signal{sig}, nil
}

// Reset forgets which instruments were bought
func (s *Strategy) Reset() {
	s.bought = make(map[string]bool)
}
