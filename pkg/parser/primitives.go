package parser

import (
	"encoding/binary"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
)

// Every reader in this package takes the unread part of the buffer and returns
// the decoded value together with whatever follows it.

// ReadU8 reads a single byte
func ReadU8(b []byte) (uint8, []byte, error) {
	if len(b) < 1 {
		return 0, nil, truncated(1, len(b))
	}
	return b[0], b[1:], nil
}

// ReadU16 reads a little-endian uint16
func ReadU16(b []byte) (uint16, []byte, error) {
	if len(b) < 2 {
		return 0, nil, truncated(2, len(b))
	}
	return binary.LittleEndian.Uint16(b), b[2:], nil
}

// ReadU32 reads a little-endian uint32
func ReadU32(b []byte) (uint32, []byte, error) {
	if len(b) < 4 {
		return 0, nil, truncated(4, len(b))
	}
	return binary.LittleEndian.Uint32(b), b[4:], nil
}

// ReadI32 reads a little-endian two's-complement int32
func ReadI32(b []byte) (int32, []byte, error) {
	v, rest, err := ReadU32(b)
	return int32(v), rest, err
}

// ReadU64 reads a little-endian uint64
func ReadU64(b []byte) (uint64, []byte, error) {
	if len(b) < 8 {
		return 0, nil, truncated(8, len(b))
	}
	return binary.LittleEndian.Uint64(b), b[8:], nil
}

// ReadHash reads a raw 32-byte hash. Bytes are kept in wire order.
func ReadHash(b []byte) (chainhash.Hash, []byte, error) {
	var h chainhash.Hash
	if len(b) < chainhash.HashSize {
		return h, nil, truncated(chainhash.HashSize, len(b))
	}
	copy(h[:], b[:chainhash.HashSize])
	return h, b[chainhash.HashSize:], nil
}

// ReadBytes returns the next n bytes without copying them
func ReadBytes(b []byte, n uint64) ([]byte, []byte, error) {
	if uint64(len(b)) < n {
		return nil, nil, truncated(n, len(b))
	}
	return b[:n], b[n:], nil
}
