package statistics

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/yanun0323/logs"

	"github.com/quantetra/backtester/eventtypes/fill"
)

// Update samples the portfolio at a market timestamp. Repeated updates at
// the same timestamp overwrite the previous sample so each equity point
// reflects the fully settled state of that instant.
func (t *Tracker) Update(ts time.Time, p PortfolioReader) {
	point := EquityPoint{
		Timestamp:   ts,
		Equity:      p.EquityValue(),
		Cash:        p.CashValue(),
		RealizedPNL: p.RealizedTotal(),
	}
	if n := len(t.points); n > 0 && t.points[n-1].Timestamp.Equal(ts) {
		t.points[n-1] = point
	} else {
		t.points = append(t.points, point)
	}

	if point.Equity > t.high {
		t.high = point.Equity
	}
	if t.high > 0 && point.Equity < t.high {
		dd := t.high.Decimal().Sub(point.Equity.Decimal()).Div(t.high.Decimal())
		if dd.GreaterThan(t.maxDD) {
			t.maxDD = dd
		}
	}
}

// TrackFill counts an executed fill
func (t *Tracker) TrackFill(ev *fill.Fill) {
	if ev == nil {
		return
	}
	t.fills++
}

// EquityCurve returns a copy of the sampled curve
func (t *Tracker) EquityCurve() []EquityPoint {
	out := make([]EquityPoint, len(t.points))
	copy(out, t.points)
	return out
}

// Results condenses the sampled curve into headline numbers
func (t *Tracker) Results() Results {
	r := Results{
		MaxDrawdown: t.maxDD,
		Fills:       t.fills,
		Samples:     len(t.points),
	}
	if len(t.points) == 0 {
		return r
	}
	first := t.points[0]
	last := t.points[len(t.points)-1]
	r.StartTime = first.Timestamp
	r.EndTime = last.Timestamp
	r.InitialEquity = first.Equity
	r.FinalEquity = last.Equity
	r.RealizedPNL = last.RealizedPNL
	if first.Equity > 0 {
		r.TotalReturn = last.Equity.Decimal().Div(first.Equity.Decimal()).Sub(decimal.NewFromInt(1))
	}
	return r
}

// Reset discards the sampled curve
func (t *Tracker) Reset() {
	t.points = nil
	t.fills = 0
	t.high = 0
	t.maxDD = decimal.Zero
}

// PrintResult logs the headline numbers of a finished run
func (t *Tracker) PrintResult() {
	r := t.Results()
	if r.Samples == 0 {
		logs.Warn("no market data was processed")
		return
	}
	logs.Infof("period: %s to %s (%d samples)",
		r.StartTime.Format("2006-01-02"), r.EndTime.Format("2006-01-02"), r.Samples)
	logs.Infof("equity: %s -> %s", r.InitialEquity.Display(2), r.FinalEquity.Display(2))
	logs.Infof("realized pnl: %s", r.RealizedPNL.Display(2))
	logs.Infof("total return: %s%%", r.TotalReturn.Mul(decimal.NewFromInt(100)).StringFixed(2))
	logs.Infof("max drawdown: %s%%", r.MaxDrawdown.Mul(decimal.NewFromInt(100)).StringFixed(2))
	logs.Infof("fills: %d", r.Fills)
}

var _ Handler = (*Tracker)(nil)
