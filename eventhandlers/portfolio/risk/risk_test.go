package risk

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quantetra/backtester/common"
	"github.com/quantetra/backtester/eventtypes/order"
)

func TestPassthroughApprovesSizedOrders(t *testing.T) {
	t.Parallel()
	r := &Passthrough{}
	ts := time.Date(2016, 1, 4, 0, 0, 0, 0, time.UTC)

	orders, err := r.RefineOrders(nil, &order.Suggested{
		Ticker:    "AAA",
		Action:    common.Bought,
		Quantity:  100,
		Name:      "test",
		Timestamp: ts,
	})
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, "AAA", orders[0].Ticker())
	assert.Equal(t, ts, orders[0].GetTime())
	assert.Equal(t, int64(100), orders[0].Quantity)
}

func TestPassthroughDropsZeroQuantity(t *testing.T) {
	t.Parallel()
	r := &Passthrough{}

	orders, err := r.RefineOrders(nil, &order.Suggested{Ticker: "AAA", Action: common.Bought})
	require.NoError(t, err)
	assert.Empty(t, orders)
}

func TestPassthroughNilSuggestion(t *testing.T) {
	t.Parallel()
	r := &Passthrough{}
	_, err := r.RefineOrders(nil, nil)
	assert.ErrorIs(t, err, common.ErrNilEvent)
}
