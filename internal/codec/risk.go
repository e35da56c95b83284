package codec

import (
	"encoding/binary"

	"main/internal/schema"
)

const RiskDecisionPayloadSize = 34

// EncodeRiskDecision serializes a risk decision into a fixed-size payload.
func EncodeRiskDecision(dst []byte, decision schema.RiskDecision) []byte {
	if cap(dst) < RiskDecisionPayloadSize {
		dst = make([]byte, RiskDecisionPayloadSize)
	} else {
		dst = dst[:RiskDecisionPayloadSize]
	}

	binary.LittleEndian.PutUint32(dst[0:4], uint32(decision.PairID))
	binary.LittleEndian.PutUint16(dst[4:6], uint16(decision.Package))
	binary.LittleEndian.PutUint16(dst[6:8], uint16(decision.Action))
	binary.LittleEndian.PutUint16(dst[8:10], uint16(decision.Reason))
	binary.LittleEndian.PutUint64(dst[10:18], uint64(decision.NetEdgeCents))
	binary.LittleEndian.PutUint64(dst[18:26], decision.TraceID)
	binary.LittleEndian.PutUint64(dst[26:34], uint64(decision.TsMs))

	return dst
}

// DecodeRiskDecision parses a fixed-size risk decision payload.
func DecodeRiskDecision(src []byte) (schema.RiskDecision, bool) {
	if len(src) < RiskDecisionPayloadSize {
		return schema.RiskDecision{}, false
	}
	return schema.RiskDecision{
		PairID:       schema.PairID(binary.LittleEndian.Uint32(src[0:4])),
		Package:      schema.Package(binary.LittleEndian.Uint16(src[4:6])),
		Action:       schema.RiskAction(binary.LittleEndian.Uint16(src[6:8])),
		Reason:       schema.RiskReason(binary.LittleEndian.Uint16(src[8:10])),
		NetEdgeCents: schema.Price(int64(binary.LittleEndian.Uint64(src[10:18]))),
		TraceID:      binary.LittleEndian.Uint64(src[18:26]),
		TsMs:         int64(binary.LittleEndian.Uint64(src[26:34])),
	}, true
}
