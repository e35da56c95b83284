package codec

import (
	"encoding/binary"

	"main/internal/schema"
)

// HaltCommandHeaderSize is the fixed portion preceding the variable-length
// operator and reason strings.
const HaltCommandHeaderSize = 16

// EncodeHaltCommand serializes an operator halt/resume command into a
// variable-length payload: a fixed header followed by the operator string
// then the reason string.
func EncodeHaltCommand(dst []byte, cmd schema.HaltCommand) []byte {
	total := HaltCommandHeaderSize + len(cmd.Operator) + len(cmd.Reason)
	if cap(dst) < total {
		dst = make([]byte, total)
	} else {
		dst = dst[:total]
	}

	binary.LittleEndian.PutUint16(dst[0:2], uint16(cmd.VenueID))
	dst[2] = 0
	if cmd.Halted {
		dst[2] = 1
	}
	binary.LittleEndian.PutUint64(dst[4:12], uint64(cmd.TsMs))
	binary.LittleEndian.PutUint16(dst[12:14], uint16(len(cmd.Operator)))
	binary.LittleEndian.PutUint16(dst[14:16], uint16(len(cmd.Reason)))

	off := HaltCommandHeaderSize
	off += copy(dst[off:], cmd.Operator)
	copy(dst[off:], cmd.Reason)
	return dst
}

// DecodeHaltCommand parses a variable-length halt/resume command payload.
func DecodeHaltCommand(src []byte) (schema.HaltCommand, bool) {
	if len(src) < HaltCommandHeaderSize {
		return schema.HaltCommand{}, false
	}
	operatorLen := int(binary.LittleEndian.Uint16(src[12:14]))
	reasonLen := int(binary.LittleEndian.Uint16(src[14:16]))
	want := HaltCommandHeaderSize + operatorLen + reasonLen
	if len(src) < want {
		return schema.HaltCommand{}, false
	}

	off := HaltCommandHeaderSize
	operator := string(src[off : off+operatorLen])
	off += operatorLen
	reason := string(src[off : off+reasonLen])

	return schema.HaltCommand{
		VenueID:  schema.VenueID(binary.LittleEndian.Uint16(src[0:2])),
		Halted:   src[2] != 0,
		TsMs:     int64(binary.LittleEndian.Uint64(src[4:12])),
		Operator: operator,
		Reason:   reason,
	}, true
}
