package rsi

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quantetra/backtester/common"
	"github.com/quantetra/backtester/eventtypes/bar"
	"github.com/quantetra/backtester/eventtypes/signal"
	"github.com/quantetra/backtester/money"
)

func feed(t *testing.T, s *Strategy, closes []float64) []*signal.Signal {
	t.Helper()
	ts := time.Date(2016, 1, 4, 0, 0, 0, 0, time.UTC)
	var out []*signal.Signal
	for i, c := range closes {
		px := money.FromFloat64(c)
		b := bar.New("AAA", ts.Add(time.Duration(i)*24*time.Hour), 24*time.Hour, px, px, px, px, 1000)
		sigs, err := s.OnBar(b)
		require.NoError(t, err)
		out = append(out, sigs...)
	}
	return out
}

func TestEntersOversoldExitsOverbought(t *testing.T) {
	t.Parallel()
	s := New()

	// 20 falling closes drive RSI to the floor, then 30 rising closes push
	// it through the ceiling
	closes := make([]float64, 0, 50)
	px := 100.0
	for i := 0; i < 20; i++ {
		px -= 1
		closes = append(closes, px)
	}
	for i := 0; i < 30; i++ {
		px += 1
		closes = append(closes, px)
	}

	sigs := feed(t, s, closes)
	require.Len(t, sigs, 2)
	assert.Equal(t, common.Bought, sigs[0].Action)
	assert.Equal(t, Name, sigs[0].Name)
	assert.Equal(t, common.Exit, sigs[1].Action)
	assert.True(t, sigs[0].GetTime().Before(sigs[1].GetTime()))
}

func TestQuietBeforeLookbackFills(t *testing.T) {
	t.Parallel()
	s := New()

	closes := make([]float64, s.Period)
	for i := range closes {
		closes[i] = 100 - float64(i)
	}
	sigs := feed(t, s, closes)
	assert.Empty(t, sigs)
}

func TestReset(t *testing.T) {
	t.Parallel()
	s := New()
	feed(t, s, []float64{100, 99, 98})
	s.Reset()
	assert.Empty(t, s.closes)

	_, err := s.OnBar(nil)
	assert.ErrorIs(t, err, common.ErrNilEvent)
}
