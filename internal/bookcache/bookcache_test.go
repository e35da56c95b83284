package bookcache

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"main/internal/schema"
)

func snap(market schema.MarketID, tsMs int64, bid, ask schema.Price) schema.BookSnapshot {
	return schema.BookSnapshot{
		MarketID:  market,
		VenueTsMs: tsMs,
		Bids:      []schema.Level{{Price: bid, Quantity: 10}},
		Asks:      []schema.Level{{Price: ask, Quantity: 10}},
	}
}

func TestUpdateAndLatest(t *testing.T) {
	c := New(1000, 10000, 0)
	c.Update(snap(1, 1000, 49, 51))
	got, ok := c.Latest(1, 1000)
	require.True(t, ok)
	assert.Equal(t, schema.Price(49), got.Bids[0].Price)
}

func TestLatestUnknownMarket(t *testing.T) {
	c := New(1000, 10000, 0)
	_, ok := c.Latest(999, 0)
	assert.False(t, ok)
}

func TestLatestEvictsStaleSnapshot(t *testing.T) {
	c := New(1000, 10000, 5000)
	c.Update(snap(1, 1000, 49, 51))
	_, ok := c.Latest(1, 1000+5001)
	assert.False(t, ok)

	// After eviction the market state was removed, so a second query
	// with no fresh update still reports missing.
	_, ok = c.Latest(1, 1000+5001)
	assert.False(t, ok)
}

func TestLatestNotStaleWhenEvictionDisabled(t *testing.T) {
	c := New(1000, 10000, 0)
	c.Update(snap(1, 1000, 49, 51))
	_, ok := c.Latest(1, 1000+1_000_000)
	assert.True(t, ok)
}

func TestBarsAccumulateAcrossBuckets(t *testing.T) {
	c := New(1000, 10000, 0)
	c.Update(snap(1, 0, 49, 51))
	c.Update(snap(1, 500, 49, 51))
	c.Update(snap(1, 1000, 59, 61))
	c.Update(snap(1, 2000, 59, 61))

	bars := c.Bars(1)
	require.Len(t, bars, 2)
	assert.InDelta(t, 50, bars[0].Mid, 0.001)
	assert.Equal(t, int64(0), bars[0].StartMs)
	assert.Equal(t, int64(1000), bars[1].StartMs)
}

func TestBarsRetentionBounded(t *testing.T) {
	c := New(1000, 3000, 0)
	for i := int64(0); i < 20; i++ {
		c.Update(snap(1, i*1000, 49, 51))
	}
	bars := c.Bars(1)
	assert.LessOrEqual(t, len(bars), 3)
}

func TestBarsReturnsCopy(t *testing.T) {
	c := New(1000, 10000, 0)
	c.Update(snap(1, 0, 49, 51))
	c.Update(snap(1, 1000, 49, 51))
	bars := c.Bars(1)
	bars[0].Mid = 999
	fresh := c.Bars(1)
	assert.NotEqual(t, float64(999), fresh[0].Mid)
}
