// Package rsi implements a mean-reversion strategy on the relative strength
// index: enter long when the indicator drops below the oversold line, exit
// when it crosses back above the overbought line
package rsi

import (
	"github.com/shopspring/decimal"

	"github.com/quantetra/backtester/eventhandlers/strategies/base"
)

// Name is the registry name of the strategy
const Name = "rsi"

// Strategy trades RSI crossings of its oversold and overbought lines
type Strategy struct {
	base.Strategy
	// Period is the RSI lookback in bars
	Period int
	// Low is the oversold line that triggers entries
	Low decimal.Decimal
	// High is the overbought line that triggers exits
	High decimal.Decimal

	closes map[string][]float64
	open   map[string]bool
}
