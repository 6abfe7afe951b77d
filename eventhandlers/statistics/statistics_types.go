// Package statistics tracks the equity curve of a run and condenses it into
// headline performance numbers
package statistics

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/quantetra/backtester/eventtypes/fill"
	"github.com/quantetra/backtester/money"
)

// Handler receives portfolio snapshots and fills as the run progresses
type Handler interface {
	Update(t time.Time, p PortfolioReader)
	TrackFill(ev *fill.Fill)
	Results() Results
	PrintResult()
	Reset()
}

// PortfolioReader is the portfolio view the tracker samples
type PortfolioReader interface {
	EquityValue() money.Price
	CashValue() money.Price
	RealizedTotal() money.Price
}

// EquityPoint is one sample of the equity curve
type EquityPoint struct {
	Timestamp   time.Time
	Equity      money.Price
	Cash        money.Price
	RealizedPNL money.Price
}

// Results are the headline numbers of a finished run
type Results struct {
	StartTime     time.Time
	EndTime       time.Time
	InitialEquity money.Price
	FinalEquity   money.Price
	RealizedPNL   money.Price
	// TotalReturn is final over initial equity minus one
	TotalReturn decimal.Decimal
	// MaxDrawdown is the largest peak-to-trough equity decline as a
	// fraction of the peak
	MaxDrawdown decimal.Decimal
	Fills       int
	Samples     int
}

// Tracker samples the portfolio once per market timestamp
type Tracker struct {
	points []EquityPoint
	fills  int

	high  money.Price
	maxDD decimal.Decimal
}
