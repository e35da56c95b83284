package codec

import (
	"encoding/binary"

	"main/internal/schema"
)

// BookSnapshotHeaderSize is the fixed portion preceding the variable-length
// bid/ask level arrays.
const BookSnapshotHeaderSize = 26
const levelSize = 16

// EncodeBookSnapshot serializes a book snapshot into a variable-length
// payload: a fixed header followed by BidCount then AskCount levels.
func EncodeBookSnapshot(dst []byte, snap schema.BookSnapshot) []byte {
	total := BookSnapshotHeaderSize + (len(snap.Bids)+len(snap.Asks))*levelSize
	if cap(dst) < total {
		dst = make([]byte, total)
	} else {
		dst = dst[:total]
	}

	binary.LittleEndian.PutUint16(dst[0:2], uint16(snap.VenueID))
	binary.LittleEndian.PutUint32(dst[2:6], uint32(snap.MarketID))
	binary.LittleEndian.PutUint64(dst[6:14], snap.SequenceNo)
	binary.LittleEndian.PutUint64(dst[14:22], uint64(snap.VenueTsMs))
	binary.LittleEndian.PutUint16(dst[22:24], uint16(len(snap.Bids)))
	binary.LittleEndian.PutUint16(dst[24:26], uint16(len(snap.Asks)))

	off := BookSnapshotHeaderSize
	for _, lvl := range snap.Bids {
		binary.LittleEndian.PutUint64(dst[off:off+8], uint64(lvl.Price))
		binary.LittleEndian.PutUint64(dst[off+8:off+16], uint64(lvl.Quantity))
		off += levelSize
	}
	for _, lvl := range snap.Asks {
		binary.LittleEndian.PutUint64(dst[off:off+8], uint64(lvl.Price))
		binary.LittleEndian.PutUint64(dst[off+8:off+16], uint64(lvl.Quantity))
		off += levelSize
	}
	return dst
}

// DecodeBookSnapshot parses a variable-length book snapshot payload.
// RecvTsMs is not carried on the wire; callers set it from arrival time.
func DecodeBookSnapshot(src []byte) (schema.BookSnapshot, bool) {
	if len(src) < BookSnapshotHeaderSize {
		return schema.BookSnapshot{}, false
	}
	bidCount := int(binary.LittleEndian.Uint16(src[22:24]))
	askCount := int(binary.LittleEndian.Uint16(src[24:26]))
	want := BookSnapshotHeaderSize + (bidCount+askCount)*levelSize
	if len(src) < want {
		return schema.BookSnapshot{}, false
	}

	snap := schema.BookSnapshot{
		VenueID:    schema.VenueID(binary.LittleEndian.Uint16(src[0:2])),
		MarketID:   schema.MarketID(binary.LittleEndian.Uint32(src[2:6])),
		SequenceNo: binary.LittleEndian.Uint64(src[6:14]),
		VenueTsMs:  int64(binary.LittleEndian.Uint64(src[14:22])),
	}

	off := BookSnapshotHeaderSize
	if bidCount > 0 {
		snap.Bids = make([]schema.Level, bidCount)
		for i := 0; i < bidCount; i++ {
			snap.Bids[i] = schema.Level{
				Price:    schema.Price(int64(binary.LittleEndian.Uint64(src[off : off+8]))),
				Quantity: schema.Quantity(int64(binary.LittleEndian.Uint64(src[off+8 : off+16]))),
			}
			off += levelSize
		}
	}
	if askCount > 0 {
		snap.Asks = make([]schema.Level, askCount)
		for i := 0; i < askCount; i++ {
			snap.Asks[i] = schema.Level{
				Price:    schema.Price(int64(binary.LittleEndian.Uint64(src[off : off+8]))),
				Quantity: schema.Quantity(int64(binary.LittleEndian.Uint64(src[off+8 : off+16]))),
			}
			off += levelSize
		}
	}
	return snap, true
}
