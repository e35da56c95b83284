package codec

import (
	"encoding/binary"

	"main/internal/schema"
)

const EdgeQuotePayloadSize = 64

// EncodeEdgeQuote serializes an edge quote into a fixed-size payload.
func EncodeEdgeQuote(dst []byte, q schema.EdgeQuote) []byte {
	if cap(dst) < EdgeQuotePayloadSize {
		dst = make([]byte, EdgeQuotePayloadSize)
	} else {
		dst = dst[:EdgeQuotePayloadSize]
	}

	binary.LittleEndian.PutUint32(dst[0:4], uint32(q.PairID))
	binary.LittleEndian.PutUint16(dst[4:6], uint16(q.Package))
	binary.LittleEndian.PutUint16(dst[6:8], uint16(q.Leader))
	binary.LittleEndian.PutUint64(dst[8:16], uint64(q.GrossEdgeCents))
	binary.LittleEndian.PutUint64(dst[16:24], uint64(q.FeesCents))
	binary.LittleEndian.PutUint64(dst[24:32], uint64(q.FrictionCents))
	binary.LittleEndian.PutUint64(dst[32:40], uint64(q.SlippageCents))
	binary.LittleEndian.PutUint64(dst[40:48], uint64(q.NetEdgeCents))
	binary.LittleEndian.PutUint64(dst[48:56], q.TraceID)
	binary.LittleEndian.PutUint64(dst[56:64], uint64(q.TsMs))

	return dst
}

// DecodeEdgeQuote parses a fixed-size edge quote payload.
func DecodeEdgeQuote(src []byte) (schema.EdgeQuote, bool) {
	if len(src) < EdgeQuotePayloadSize {
		return schema.EdgeQuote{}, false
	}
	return schema.EdgeQuote{
		PairID:         schema.PairID(binary.LittleEndian.Uint32(src[0:4])),
		Package:        schema.Package(binary.LittleEndian.Uint16(src[4:6])),
		Leader:         schema.Leader(binary.LittleEndian.Uint16(src[6:8])),
		GrossEdgeCents: schema.Price(int64(binary.LittleEndian.Uint64(src[8:16]))),
		FeesCents:      schema.Price(int64(binary.LittleEndian.Uint64(src[16:24]))),
		FrictionCents:  schema.Price(int64(binary.LittleEndian.Uint64(src[24:32]))),
		SlippageCents:  schema.Price(int64(binary.LittleEndian.Uint64(src[32:40]))),
		NetEdgeCents:   schema.Price(int64(binary.LittleEndian.Uint64(src[40:48]))),
		TraceID:        binary.LittleEndian.Uint64(src[48:56]),
		TsMs:           int64(binary.LittleEndian.Uint64(src[56:64])),
	}, true
}
