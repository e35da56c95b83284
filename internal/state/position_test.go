package state

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"main/internal/schema"
)

func TestApplyFillAccumulatesWeightedAverage(t *testing.T) {
	r := NewPositionReducer()
	r.ApplyFill(schema.Fill{VenueID: 1, MarketID: 10, Side: schema.OrderSideYes, Price: 40, Qty: 10})
	pos := r.ApplyFill(schema.Fill{VenueID: 1, MarketID: 10, Side: schema.OrderSideYes, Price: 60, Qty: 10})

	assert.Equal(t, schema.Quantity(20), pos.QtyYes)
	assert.Equal(t, schema.Price(50), pos.AvgPxYes)
}

func TestApplyFillTracksYesAndNoIndependently(t *testing.T) {
	r := NewPositionReducer()
	r.ApplyFill(schema.Fill{VenueID: 1, MarketID: 10, Side: schema.OrderSideYes, Price: 40, Qty: 5})
	pos := r.ApplyFill(schema.Fill{VenueID: 1, MarketID: 10, Side: schema.OrderSideNo, Price: 55, Qty: 5})

	assert.Equal(t, schema.Quantity(5), pos.QtyYes)
	assert.Equal(t, schema.Quantity(5), pos.QtyNo)
	assert.Equal(t, schema.Price(55), pos.AvgPxNo)
}

func TestPositionKeyedByVenueAndMarket(t *testing.T) {
	r := NewPositionReducer()
	r.ApplyFill(schema.Fill{VenueID: 1, MarketID: 10, Side: schema.OrderSideYes, Price: 40, Qty: 5})
	r.ApplyFill(schema.Fill{VenueID: 2, MarketID: 10, Side: schema.OrderSideYes, Price: 60, Qty: 5})

	assert.Equal(t, 2, r.Count())
	pos1 := r.Position(1, 10)
	pos2 := r.Position(2, 10)
	assert.Equal(t, schema.Price(40), pos1.AvgPxYes)
	assert.Equal(t, schema.Price(60), pos2.AvgPxYes)
}

func TestSnapshotRoundTripAndApply(t *testing.T) {
	r := NewPositionReducer()
	r.ApplyFill(schema.Fill{VenueID: 1, MarketID: 10, Side: schema.OrderSideYes, Price: 40, Qty: 5})
	r.ApplyFill(schema.Fill{VenueID: 2, MarketID: 20, Side: schema.OrderSideNo, Price: 55, Qty: 3})

	snap := r.SnapshotWithMeta(42, 1000)
	require.Len(t, snap.Positions, 2)
	assert.Equal(t, uint64(42), snap.LastSeq)
	assert.Equal(t, int64(1000), snap.LastEventTs)

	r2 := NewPositionReducer()
	r2.ApplySnapshot(snap)
	assert.Equal(t, r.Count(), r2.Count())
	assert.Equal(t, r.Position(1, 10), r2.Position(1, 10))
}

func TestWriteAndReadSnapshot(t *testing.T) {
	r := NewPositionReducer()
	r.ApplyFill(schema.Fill{VenueID: 1, MarketID: 10, Side: schema.OrderSideYes, Price: 40, Qty: 5})
	snap := r.SnapshotWithMeta(1, 1)

	path := t.TempDir() + "/positions.json"
	require.NoError(t, WriteSnapshot(path, snap))

	got, err := ReadSnapshot(path)
	require.NoError(t, err)
	assert.NoError(t, CompareSnapshots(snap, got))
}

func TestCompareSnapshotsDetectsMismatch(t *testing.T) {
	a := Snapshot{Positions: []schema.Position{{VenueID: 1, MarketID: 10, QtyYes: 5}}}
	b := Snapshot{Positions: []schema.Position{{VenueID: 1, MarketID: 10, QtyYes: 9}}}
	assert.Error(t, CompareSnapshots(a, b))
}
