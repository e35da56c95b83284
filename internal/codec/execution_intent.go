package codec

import (
	"encoding/binary"

	"main/internal/schema"
)

const ExecutionIntentPayloadSize = 56

// EncodeExecutionIntent serializes an execution intent into a fixed-size payload.
func EncodeExecutionIntent(dst []byte, intent schema.ExecutionIntent) []byte {
	if cap(dst) < ExecutionIntentPayloadSize {
		dst = make([]byte, ExecutionIntentPayloadSize)
	} else {
		dst = dst[:ExecutionIntentPayloadSize]
	}

	binary.LittleEndian.PutUint64(dst[0:8], intent.IntentID)
	binary.LittleEndian.PutUint64(dst[8:16], intent.TraceID)
	binary.LittleEndian.PutUint32(dst[16:20], uint32(intent.PairID))
	binary.LittleEndian.PutUint16(dst[20:22], uint16(intent.Package))
	binary.LittleEndian.PutUint64(dst[24:32], uint64(intent.NetEdgeCents))
	binary.LittleEndian.PutUint64(dst[32:40], uint64(intent.Qty))
	binary.LittleEndian.PutUint64(dst[40:48], uint64(intent.DeadlineMs))
	binary.LittleEndian.PutUint64(dst[48:56], uint64(intent.CreatedMs))

	return dst
}

// DecodeExecutionIntent parses a fixed-size execution intent payload.
func DecodeExecutionIntent(src []byte) (schema.ExecutionIntent, bool) {
	if len(src) < ExecutionIntentPayloadSize {
		return schema.ExecutionIntent{}, false
	}
	return schema.ExecutionIntent{
		IntentID:     binary.LittleEndian.Uint64(src[0:8]),
		TraceID:      binary.LittleEndian.Uint64(src[8:16]),
		PairID:       schema.PairID(binary.LittleEndian.Uint32(src[16:20])),
		Package:      schema.Package(binary.LittleEndian.Uint16(src[20:22])),
		NetEdgeCents: schema.Price(int64(binary.LittleEndian.Uint64(src[24:32]))),
		Qty:          schema.Quantity(int64(binary.LittleEndian.Uint64(src[32:40]))),
		DeadlineMs:   int64(binary.LittleEndian.Uint64(src[40:48])),
		CreatedMs:    int64(binary.LittleEndian.Uint64(src[48:56])),
	}, true
}
