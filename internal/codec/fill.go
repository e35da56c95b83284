package codec

import (
	"encoding/binary"

	"main/internal/schema"
)

const FillPayloadSize = 42

// EncodeFill serializes a fill into a fixed-size payload.
func EncodeFill(dst []byte, fill schema.Fill) []byte {
	if cap(dst) < FillPayloadSize {
		dst = make([]byte, FillPayloadSize)
	} else {
		dst = dst[:FillPayloadSize]
	}

	binary.LittleEndian.PutUint64(dst[0:8], fill.OrderID)
	binary.LittleEndian.PutUint16(dst[8:10], uint16(fill.VenueID))
	binary.LittleEndian.PutUint32(dst[10:14], uint32(fill.MarketID))
	binary.LittleEndian.PutUint16(dst[14:16], uint16(fill.Side))
	binary.LittleEndian.PutUint16(dst[16:18], fill.Flags)
	binary.LittleEndian.PutUint64(dst[18:26], uint64(fill.Price))
	binary.LittleEndian.PutUint64(dst[26:34], uint64(fill.Qty))
	binary.LittleEndian.PutUint64(dst[34:42], uint64(fill.Fee))

	return dst
}

// DecodeFill parses a fixed-size fill payload.
func DecodeFill(src []byte) (schema.Fill, bool) {
	if len(src) < FillPayloadSize {
		return schema.Fill{}, false
	}
	return schema.Fill{
		OrderID:  binary.LittleEndian.Uint64(src[0:8]),
		VenueID:  schema.VenueID(binary.LittleEndian.Uint16(src[8:10])),
		MarketID: schema.MarketID(binary.LittleEndian.Uint32(src[10:14])),
		Side:     schema.OrderSide(binary.LittleEndian.Uint16(src[14:16])),
		Flags:    binary.LittleEndian.Uint16(src[16:18]),
		Price:    schema.Price(int64(binary.LittleEndian.Uint64(src[18:26]))),
		Qty:      schema.Quantity(int64(binary.LittleEndian.Uint64(src[26:34]))),
		Fee:      schema.Fee(int64(binary.LittleEndian.Uint64(src[34:42]))),
	}, true
}
