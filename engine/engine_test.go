package engine

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quantetra/backtester/common"
	"github.com/quantetra/backtester/data"
	"github.com/quantetra/backtester/eventhandlers/exchange"
	"github.com/quantetra/backtester/eventhandlers/portfolio"
	"github.com/quantetra/backtester/eventhandlers/portfolio/compliance"
	"github.com/quantetra/backtester/eventhandlers/portfolio/risk"
	"github.com/quantetra/backtester/eventhandlers/portfolio/sizing"
	"github.com/quantetra/backtester/eventhandlers/statistics"
	"github.com/quantetra/backtester/eventhandlers/strategies/buyandhold"
	"github.com/quantetra/backtester/eventtypes/bar"
	"github.com/quantetra/backtester/eventtypes/fill"
	"github.com/quantetra/backtester/eventtypes/order"
	"github.com/quantetra/backtester/money"
)

func price(t *testing.T, s string) money.Price {
	t.Helper()
	p, err := money.FromString(s)
	require.NoError(t, err)
	return p
}

func testBar(t *testing.T, day int, closePx string) *bar.Bar {
	t.Helper()
	ts := time.Date(2016, 1, day, 0, 0, 0, 0, time.UTC)
	px := price(t, closePx)
	return bar.New("AAA", ts, 24*time.Hour, px, px, px, px, 1000)
}

func testBacktest(t *testing.T, feed data.Handler) *BackTest {
	t.Helper()
	pf, err := portfolio.New(feed, money.FromInt64(100000))
	require.NoError(t, err)
	mgr, err := portfolio.NewManager(pf, &sizing.Fixed{Quantity: 100}, &risk.Passthrough{})
	require.NoError(t, err)

	bt, err := New(&BackTest{
		Data:     feed,
		Strategy: buyandhold.New(),
		Manager:  mgr,
		Exchange: &exchange.Simulated{
			Venue: "simulated",
			Fee:   exchange.FixedFee(price(t, "1.00")),
		},
		Statistics: &statistics.Tracker{},
		Compliance: &compliance.Manager{},
	})
	require.NoError(t, err)
	return bt
}

func TestRunBuyAndHold(t *testing.T) {
	t.Parallel()
	feed := data.NewBarStream([]*bar.Bar{
		testBar(t, 4, "10.00"),
		testBar(t, 5, "12.00"),
		testBar(t, 6, "11.00"),
	}, nil)
	bt := testBacktest(t, feed)

	require.NoError(t, bt.Run(context.Background()))

	// the first bar's signal fills at that bar's close for 100 shares, so
	// the run ends long 100 marked at the last close
	pf := bt.Manager.Portfolio
	pos, ok := pf.OpenPosition("AAA")
	require.True(t, ok)
	assert.Equal(t, int64(100), pos.OpenQuantity)
	assert.Equal(t, price(t, "1001.00"), pos.CostBasis)
	assert.Equal(t, price(t, "99.00"), pos.UnrealizedPNL)
	assert.Equal(t, price(t, "100099.00"), pf.Equity)

	r := bt.Statistics.Results()
	assert.Equal(t, 1, r.Fills)
	assert.Equal(t, 3, r.Samples)
	assert.Equal(t, price(t, "100099.00"), r.FinalEquity)

	assert.Equal(t, 1, bt.Compliance.Count())

	// nothing left queued
	_, ok = bt.Queue.NextEvent()
	assert.False(t, ok)
}

func TestRunHonoursContext(t *testing.T) {
	t.Parallel()
	feed := data.NewBarStream([]*bar.Bar{testBar(t, 4, "10.00")}, nil)
	bt := testBacktest(t, feed)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, bt.Run(ctx), context.Canceled)
}

func TestReset(t *testing.T) {
	t.Parallel()
	feed := data.NewBarStream([]*bar.Bar{
		testBar(t, 4, "10.00"),
		testBar(t, 5, "12.00"),
	}, nil)
	bt := testBacktest(t, feed)
	require.NoError(t, bt.Run(context.Background()))

	bt.Reset()

	pf := bt.Manager.Portfolio
	assert.Empty(t, pf.Positions)
	assert.Equal(t, money.FromInt64(100000), pf.Equity)
	assert.Zero(t, bt.Statistics.Results().Samples)
	assert.Zero(t, bt.Compliance.Count())
	assert.True(t, bt.Data.Continue())

	// a reset backtest runs again from scratch
	require.NoError(t, bt.Run(context.Background()))
	_, ok := pf.OpenPosition("AAA")
	assert.True(t, ok)
}

func TestFillIsQueuedBeforeAuditRecord(t *testing.T) {
	t.Parallel()
	feed := data.NewBarStream([]*bar.Bar{testBar(t, 4, "10.00")}, nil)
	bt := testBacktest(t, feed)

	// prime the quote the exchange fills against
	_, ok := feed.StreamNext()
	require.True(t, ok)

	o := order.New(&order.Suggested{
		Ticker:    "AAA",
		Action:    common.Bought,
		Quantity:  100,
		Name:      "entry",
		Timestamp: time.Date(2016, 1, 4, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, bt.handleEvent(o))

	// the fill reaches the queue, and the audit trail holds the same fill
	ev, ok := bt.Queue.NextEvent()
	require.True(t, ok)
	f, isFill := ev.(*fill.Fill)
	require.True(t, isFill)

	require.Equal(t, 1, bt.Compliance.Count())
	rec := bt.Compliance.Records()[0]
	assert.Equal(t, f.ID, rec.FillID)
	assert.Equal(t, f.Price, rec.Price)
}

type bogusEvent struct{}

func (bogusEvent) GetTime() time.Time { return time.Time{} }
func (bogusEvent) Ticker() string     { return "AAA" }
func (bogusEvent) Priority() int      { return 999 }

var _ common.EventHandler = bogusEvent{}

func TestUnknownEventKindIsFatal(t *testing.T) {
	t.Parallel()
	feed := data.NewBarStream([]*bar.Bar{testBar(t, 4, "10.00")}, nil)
	bt := testBacktest(t, feed)

	err := bt.handleEvent(bogusEvent{})
	assert.ErrorIs(t, err, errUnhandledEvent)
}

func TestNewRejectsMissingComponents(t *testing.T) {
	t.Parallel()
	_, err := New(&BackTest{})
	assert.ErrorIs(t, err, errNilComponent)
	_, err = New(nil)
	assert.ErrorIs(t, err, errNilComponent)
}
