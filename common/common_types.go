package common

import (
	"errors"
	"time"
)

// Side is the direction of a trade or signal as reported by the broker
// protocol: "BOT" for buys, "SLD" for sells. Exit is a signal-only
// pseudo-side instructing the portfolio to close whatever is open.
type Side string

const (
	// Bought is the buy side
	Bought Side = "BOT"
	// Sold is the sell side
	Sold Side = "SLD"
	// Exit instructs the portfolio handler to flatten the open position
	Exit Side = "XIT"
)

// Opposite returns the closing side for s
func (s Side) Opposite() Side {
	if s == Bought {
		return Sold
	}
	return Bought
}

var (
	// ErrNilArguments is a common error response to highlight that nils were
	// passed in when they should not have been
	ErrNilArguments = errors.New("received nil argument(s)")
	// ErrNilEvent is a common error for whenever a nil event occurs when it
	// shouldn't have
	ErrNilEvent = errors.New("nil event received")
	// ErrInvalidDataType occurs when an event of an unexpected concrete type
	// reaches a handler
	ErrInvalidDataType = errors.New("invalid datatype received")
)

// EventHandler is the minimal interface shared by every queued event
type EventHandler interface {
	GetTime() time.Time
	Ticker() string
	Priority() int
}

// MarketEventHandler is implemented by tick and bar events, the two event
// kinds produced by a price stream
type MarketEventHandler interface {
	EventHandler
	IsMarket() bool
}
