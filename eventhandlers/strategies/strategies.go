package strategies

import (
	"fmt"
	"strings"

	"github.com/quantetra/backtester/eventhandlers/strategies/buyandhold"
	"github.com/quantetra/backtester/eventhandlers/strategies/rsi"
)

// LoadStrategyByName returns a fresh instance of the named strategy with its
// default settings
func LoadStrategyByName(name string) (Handler, error) {
	for _, s := range all() {
		if strings.EqualFold(s.Name(), name) {
			return s, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", errStrategyNotFound, name)
}

// Names lists every registered strategy
func Names() []string {
	registered := all()
	names := make([]string, len(registered))
	for i := range registered {
		names[i] = registered[i].Name()
	}
	return names
}

func all() []Handler {
	return []Handler{
		buyandhold.New(),
		rsi.New(),
	}
}
