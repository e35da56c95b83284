package codec

import (
	"encoding/binary"

	"main/internal/schema"
)

const OrderIntentPayloadSize = 56

// EncodeOrderIntent serializes an order intent into a fixed-size payload.
func EncodeOrderIntent(dst []byte, order schema.OrderIntent) []byte {
	if cap(dst) < OrderIntentPayloadSize {
		dst = make([]byte, OrderIntentPayloadSize)
	} else {
		dst = dst[:OrderIntentPayloadSize]
	}

	binary.LittleEndian.PutUint64(dst[0:8], order.OrderID)
	binary.LittleEndian.PutUint64(dst[8:16], order.TraceID)
	binary.LittleEndian.PutUint64(dst[16:24], order.IntentID)
	binary.LittleEndian.PutUint16(dst[24:26], uint16(order.VenueID))
	binary.LittleEndian.PutUint32(dst[26:30], uint32(order.MarketID))
	binary.LittleEndian.PutUint16(dst[30:32], uint16(order.Side))
	binary.LittleEndian.PutUint16(dst[32:34], uint16(order.Type))
	binary.LittleEndian.PutUint16(dst[34:36], uint16(order.TimeInForce))
	binary.LittleEndian.PutUint16(dst[36:38], order.Flags)
	binary.LittleEndian.PutUint64(dst[40:48], uint64(order.Price))
	binary.LittleEndian.PutUint64(dst[48:56], uint64(order.Qty))

	return dst
}

// DecodeOrderIntent parses a fixed-size order intent payload.
func DecodeOrderIntent(src []byte) (schema.OrderIntent, bool) {
	if len(src) < OrderIntentPayloadSize {
		return schema.OrderIntent{}, false
	}
	return schema.OrderIntent{
		OrderID:     binary.LittleEndian.Uint64(src[0:8]),
		TraceID:     binary.LittleEndian.Uint64(src[8:16]),
		IntentID:    binary.LittleEndian.Uint64(src[16:24]),
		VenueID:     schema.VenueID(binary.LittleEndian.Uint16(src[24:26])),
		MarketID:    schema.MarketID(binary.LittleEndian.Uint32(src[26:30])),
		Side:        schema.OrderSide(binary.LittleEndian.Uint16(src[30:32])),
		Type:        schema.OrderType(binary.LittleEndian.Uint16(src[32:34])),
		TimeInForce: schema.TimeInForce(binary.LittleEndian.Uint16(src[34:36])),
		Flags:       binary.LittleEndian.Uint16(src[36:38]),
		Price:       schema.Price(int64(binary.LittleEndian.Uint64(src[40:48]))),
		Qty:         schema.Quantity(int64(binary.LittleEndian.Uint64(src[48:56]))),
	}, true
}
