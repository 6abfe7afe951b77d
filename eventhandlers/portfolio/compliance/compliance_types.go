// Package compliance keeps an append-only record of every executed fill so a
// run can be audited or replayed after the fact
package compliance

import (
	"errors"
	"time"

	"github.com/quantetra/backtester/common"
	"github.com/quantetra/backtester/money"
)

var errNilWriter = errors.New("compliance export requires a writer")

// Record is one executed fill as seen by the audit trail
type Record struct {
	FillID     string
	Timestamp  time.Time
	Ticker     string
	Action     common.Side
	Quantity   int64
	Price      money.Price
	Commission money.Price
	Venue      string
	Name       string
}

// Manager accumulates fill records in execution order
type Manager struct {
	records []Record
}
