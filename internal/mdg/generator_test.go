package mdg

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"main/internal/schema"
)

func testSpec() PairSpec {
	return PairSpec{
		MarketA: 1, MarketB: 2, VenueA: 10, VenueB: 20,
		StartPriceCents: 50, SpreadCents: 4, DepthQty: 100, LagBars: 2, NoiseCents: 0,
	}
}

func TestNextIsDeterministicForSameSeed(t *testing.T) {
	g1 := NewPairGenerator(testSpec(), 42)
	g2 := NewPairGenerator(testSpec(), 42)

	for i := 0; i < 10; i++ {
		a1, b1 := g1.Next(int64(i) * 100)
		a2, b2 := g2.Next(int64(i) * 100)
		assert.Equal(t, a1, a2)
		assert.Equal(t, b1, b2)
	}
}

func TestNextIncrementsSequenceNumber(t *testing.T) {
	g := NewPairGenerator(testSpec(), 1)
	a1, _ := g.Next(0)
	a2, _ := g.Next(1000)
	assert.Equal(t, uint64(1), a1.SequenceNo)
	assert.Equal(t, uint64(2), a2.SequenceNo)
}

func TestNextProducesTwoLevelBooks(t *testing.T) {
	g := NewPairGenerator(testSpec(), 1)
	a, b := g.Next(0)
	require.Len(t, a.Bids, 2)
	require.Len(t, a.Asks, 2)
	require.Len(t, b.Bids, 2)
	require.Len(t, b.Asks, 2)

	bestBid, ok := a.BestBid()
	require.True(t, ok)
	bestAsk, ok := a.BestAsk()
	require.True(t, ok)
	assert.Less(t, bestBid.Price, bestAsk.Price)
}

func TestNextKeepsPriceWithinSpreadBounds(t *testing.T) {
	spec := testSpec()
	spec.SpreadCents = 4
	g := NewPairGenerator(spec, 7)
	for i := 0; i < 500; i++ {
		a, _ := g.Next(int64(i) * 100)
		bid := a.Bids[0].Price
		ask := a.Asks[0].Price
		assert.GreaterOrEqual(t, int64(bid), int64(0))
		assert.LessOrEqual(t, int64(ask), int64(102))
	}
}

func TestVenueBLagsVenueA(t *testing.T) {
	spec := testSpec()
	spec.LagBars = 3
	spec.NoiseCents = 0
	g := NewPairGenerator(spec, 9)

	var aMids []schema.Price
	var bMids []schema.Price
	for i := 0; i < 10; i++ {
		a, b := g.Next(int64(i) * 100)
		aBid, _ := a.BestBid()
		bBid, _ := b.BestBid()
		aMids = append(aMids, aBid.Price)
		bMids = append(bMids, bBid.Price)
	}
	// Venue B's mid at tick i should equal venue A's mid from LagBars
	// ticks earlier (both offset by the same half-spread bid distance).
	for i := spec.LagBars + 1; i < len(aMids); i++ {
		assert.Equal(t, aMids[i-spec.LagBars], bMids[i])
	}
}
