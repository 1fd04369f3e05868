package parser

import (
	"encoding/binary"
)

// ReadVarInt reads a Bitcoin CompactSize integer. The first byte selects the width:
//
//	0x00-0xfc  the byte itself
//	0xfd       uint16 follows
//	0xfe       uint32 follows
//	0xff       uint64 follows
//
// Non-minimal encodings are accepted.
func ReadVarInt(b []byte) (uint64, []byte, error) {
	tag, rest, err := ReadU8(b)
	if err != nil {
		return 0, nil, err
	}

	switch tag {
	case 0xfd:
		v, rest, err := ReadU16(rest)
		return uint64(v), rest, err
	case 0xfe:
		v, rest, err := ReadU32(rest)
		return uint64(v), rest, err
	case 0xff:
		return ReadU64(rest)
	default:
		return uint64(tag), rest, nil
	}
}

// AppendVarInt appends the minimal CompactSize encoding of v
func AppendVarInt(dst []byte, v uint64) []byte {
	switch {
	case v < 0xfd:
		return append(dst, byte(v))
	case v <= 0xffff:
		return binary.LittleEndian.AppendUint16(append(dst, 0xfd), uint16(v))
	case v <= 0xffffffff:
		return binary.LittleEndian.AppendUint32(append(dst, 0xfe), uint32(v))
	default:
		return binary.LittleEndian.AppendUint64(append(dst, 0xff), v)
	}
}
