package codec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"main/internal/schema"
)

func TestEncodeDecodeBookSnapshotRoundTrip(t *testing.T) {
	snap := schema.BookSnapshot{
		VenueID:    3,
		MarketID:   42,
		SequenceNo: 123456,
		VenueTsMs:  1700000000000,
		Bids: []schema.Level{
			{Price: 49, Quantity: 100},
			{Price: 48, Quantity: 200},
		},
		Asks: []schema.Level{
			{Price: 51, Quantity: 150},
		},
	}

	buf := EncodeBookSnapshot(nil, snap)
	assert.Equal(t, BookSnapshotHeaderSize+3*levelSize, len(buf))

	got, ok := DecodeBookSnapshot(buf)
	require.True(t, ok)
	assert.Equal(t, snap.VenueID, got.VenueID)
	assert.Equal(t, snap.MarketID, got.MarketID)
	assert.Equal(t, snap.SequenceNo, got.SequenceNo)
	assert.Equal(t, snap.VenueTsMs, got.VenueTsMs)
	assert.Equal(t, snap.Bids, got.Bids)
	assert.Equal(t, snap.Asks, got.Asks)
	// RecvTsMs isn't carried on the wire.
	assert.Zero(t, got.RecvTsMs)
}

func TestEncodeDecodeBookSnapshotEmptySides(t *testing.T) {
	snap := schema.BookSnapshot{VenueID: 1, MarketID: 2, SequenceNo: 7}
	buf := EncodeBookSnapshot(nil, snap)
	assert.Equal(t, BookSnapshotHeaderSize, len(buf))

	got, ok := DecodeBookSnapshot(buf)
	require.True(t, ok)
	assert.Empty(t, got.Bids)
	assert.Empty(t, got.Asks)
}

func TestDecodeBookSnapshotTruncated(t *testing.T) {
	_, ok := DecodeBookSnapshot(make([]byte, BookSnapshotHeaderSize-1))
	assert.False(t, ok)

	snap := schema.BookSnapshot{Bids: []schema.Level{{Price: 1, Quantity: 1}}}
	buf := EncodeBookSnapshot(nil, snap)
	_, ok = DecodeBookSnapshot(buf[:len(buf)-1])
	assert.False(t, ok)
}

func TestEncodeBookSnapshotReusesCapacity(t *testing.T) {
	dst := make([]byte, 0, 256)
	snap := schema.BookSnapshot{Bids: []schema.Level{{Price: 1, Quantity: 1}}}
	buf := EncodeBookSnapshot(dst, snap)
	assert.Equal(t, BookSnapshotHeaderSize+levelSize, len(buf))
}
