// Package event contains the base type embedded by every concrete event.
// Events are immutable once created and owned by the queue until consumed
// by exactly one handler.
package event

import "time"

// Priority ranks give events of equal timestamp a total order: market data
// settles before the signals it generates, signals before the orders they
// produce, and orders before their fills.
const (
	PriorityMarket = 100
	PrioritySignal = 200
	PriorityOrder  = 300
	PriorityFill   = 400
)

// Base carries the fields shared by all events
type Base struct {
	Symbol string
	Time   time.Time
}

// GetTime returns the event timestamp
func (b *Base) GetTime() time.Time {
	return b.Time
}

// Ticker returns the instrument the event refers to
func (b *Base) Ticker() string {
	return b.Symbol
}
