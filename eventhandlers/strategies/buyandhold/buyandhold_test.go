package buyandhold

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quantetra/backtester/common"
	"github.com/quantetra/backtester/eventtypes/bar"
	"github.com/quantetra/backtester/money"
)

func testBar(ticker string, ts time.Time) *bar.Bar {
	px := money.FromInt64(10)
	return bar.New(ticker, ts, 24*time.Hour, px, px, px, px, 1000)
}

func TestBuysOncePerInstrument(t *testing.T) {
	t.Parallel()
	s := New()
	ts := time.Date(2016, 1, 4, 0, 0, 0, 0, time.UTC)

	sigs, err := s.OnBar(testBar("AAA", ts))
	require.NoError(t, err)
	require.Len(t, sigs, 1)
	assert.Equal(t, common.Bought, sigs[0].Action)
	assert.Equal(t, "AAA", sigs[0].Ticker())
	assert.Equal(t, Name, sigs[0].Name)

	// later bars of the same instrument stay quiet
	sigs, err = s.OnBar(testBar("AAA", ts.Add(24*time.Hour)))
	require.NoError(t, err)
	assert.Empty(t, sigs)

	// a new instrument gets its own entry
	sigs, err = s.OnBar(testBar("BBB", ts.Add(24*time.Hour)))
	require.NoError(t, err)
	assert.Len(t, sigs, 1)
}

func TestResetForgets(t *testing.T) {
	t.Parallel()
	s := New()
	ts := time.Date(2016, 1, 4, 0, 0, 0, 0, time.UTC)

	_, err := s.OnBar(testBar("AAA", ts))
	require.NoError(t, err)
	s.Reset()

	sigs, err := s.OnBar(testBar("AAA", ts.Add(24*time.Hour)))
	require.NoError(t, err)
	assert.Len(t, sigs, 1)
}

func TestNilBar(t *testing.T) {
	t.Parallel()
	s := New()
	_, err := s.OnBar(nil)
	assert.ErrorIs(t, err, common.ErrNilEvent)
}
