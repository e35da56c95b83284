package codec

import (
	"encoding/binary"

	"main/internal/schema"
)

const TradeRecordPayloadSize = 56

// EncodeTradeRecord serializes a trade record into a fixed-size payload.
func EncodeTradeRecord(dst []byte, rec schema.TradeRecord) []byte {
	if cap(dst) < TradeRecordPayloadSize {
		dst = make([]byte, TradeRecordPayloadSize)
	} else {
		dst = dst[:TradeRecordPayloadSize]
	}

	binary.LittleEndian.PutUint64(dst[0:8], rec.TradeID)
	binary.LittleEndian.PutUint64(dst[8:16], rec.IntentID)
	binary.LittleEndian.PutUint64(dst[16:24], rec.TraceID)
	binary.LittleEndian.PutUint32(dst[24:28], uint32(rec.PairID))
	binary.LittleEndian.PutUint16(dst[28:30], uint16(rec.Package))
	binary.LittleEndian.PutUint16(dst[30:32], uint16(rec.Outcome))
	binary.LittleEndian.PutUint64(dst[32:40], uint64(rec.RealizedPnLCents))
	binary.LittleEndian.PutUint64(dst[40:48], uint64(rec.OpenedTsMs))
	binary.LittleEndian.PutUint64(dst[48:56], uint64(rec.ClosedTsMs))

	return dst
}

// DecodeTradeRecord parses a fixed-size trade record payload.
func DecodeTradeRecord(src []byte) (schema.TradeRecord, bool) {
	if len(src) < TradeRecordPayloadSize {
		return schema.TradeRecord{}, false
	}
	return schema.TradeRecord{
		TradeID:          binary.LittleEndian.Uint64(src[0:8]),
		IntentID:         binary.LittleEndian.Uint64(src[8:16]),
		TraceID:          binary.LittleEndian.Uint64(src[16:24]),
		PairID:           schema.PairID(binary.LittleEndian.Uint32(src[24:28])),
		Package:          schema.Package(binary.LittleEndian.Uint16(src[28:30])),
		Outcome:          schema.TradeOutcome(binary.LittleEndian.Uint16(src[30:32])),
		RealizedPnLCents: schema.Price(int64(binary.LittleEndian.Uint64(src[32:40]))),
		OpenedTsMs:       int64(binary.LittleEndian.Uint64(src[40:48])),
		ClosedTsMs:       int64(binary.LittleEndian.Uint64(src[48:56])),
	}, true
}
