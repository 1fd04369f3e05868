package parser

import (
	"encoding/binary"
	"fmt"
	"time"

	"block-lens/pkg/utils"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
)

// BlockHeaderSize is the serialized size of a block header
const BlockHeaderSize = 80

// BlockHeader is the fixed 80-byte block header
type BlockHeader struct {
	Version    int32
	PrevBlock  chainhash.Hash
	MerkleRoot chainhash.Hash
	Timestamp  uint32
	Bits       uint32
	Nonce      uint32
}

// Block is a header followed by its transactions, the first being the coinbase
type Block struct {
	Header       BlockHeader
	Transactions []Transaction
}

// ReadBlockHeader reads the six header fields in wire order
func ReadBlockHeader(b []byte) (BlockHeader, []byte, error) {
	var h BlockHeader
	var err error

	rest := b
	if h.Version, rest, err = ReadI32(rest); err != nil {
		return h, nil, fmt.Errorf("version: %w", err)
	}
	if h.PrevBlock, rest, err = ReadHash(rest); err != nil {
		return h, nil, fmt.Errorf("prev block: %w", err)
	}
	if h.MerkleRoot, rest, err = ReadHash(rest); err != nil {
		return h, nil, fmt.Errorf("merkle root: %w", err)
	}
	if h.Timestamp, rest, err = ReadU32(rest); err != nil {
		return h, nil, fmt.Errorf("timestamp: %w", err)
	}
	if h.Bits, rest, err = ReadU32(rest); err != nil {
		return h, nil, fmt.Errorf("bits: %w", err)
	}
	if h.Nonce, rest, err = ReadU32(rest); err != nil {
		return h, nil, fmt.Errorf("nonce: %w", err)
	}

	return h, rest, nil
}

// Bytes serializes the header back to its 80-byte wire form
func (h *BlockHeader) Bytes() []byte {
	buf := make([]byte, 0, BlockHeaderSize)
	buf = binary.LittleEndian.AppendUint32(buf, uint32(h.Version))
	buf = append(buf, h.PrevBlock[:]...)
	buf = append(buf, h.MerkleRoot[:]...)
	buf = binary.LittleEndian.AppendUint32(buf, h.Timestamp)
	buf = binary.LittleEndian.AppendUint32(buf, h.Bits)
	buf = binary.LittleEndian.AppendUint32(buf, h.Nonce)
	return buf
}

// Hash returns the block hash (double SHA256 of the header)
func (h *BlockHeader) Hash() chainhash.Hash {
	return chainhash.DoubleHashH(h.Bytes())
}

// Time returns the header timestamp
func (h *BlockHeader) Time() time.Time {
	return time.Unix(int64(h.Timestamp), 0).UTC()
}

// ReadBlock reads a header and its transactions. Whatever follows the last
// transaction is returned untouched.
func (d *Decoder) ReadBlock(b []byte) (*Block, []byte, error) {
	header, rest, err := ReadBlockHeader(b)
	if err != nil {
		return nil, nil, fmt.Errorf("block header: %w", err)
	}

	txs, rest, err := ReadSequence(rest, d.ReadTransaction)
	if err != nil {
		return nil, nil, fmt.Errorf("transactions: %w", err)
	}

	return &Block{Header: header, Transactions: txs}, rest, nil
}

// DecodeBlock decodes a complete serialized block. Any bytes left after the
// block fail with ErrTrailingBytes.
func (d *Decoder) DecodeBlock(b []byte) (*Block, error) {
	block, rest, err := d.ReadBlock(b)
	if err != nil {
		return nil, err
	}
	if len(rest) != 0 {
		return nil, fmt.Errorf("%w: %d bytes after block", ErrTrailingBytes, len(rest))
	}
	return block, nil
}

// DecodeBlockHex decodes a hex encoded block
func (d *Decoder) DecodeBlockHex(s string) (*Block, error) {
	b, err := utils.HexToBytes(s)
	if err != nil {
		return nil, err
	}
	return d.DecodeBlock(b)
}

// DecodeBlock decodes a complete serialized block with default options
func DecodeBlock(b []byte) (*Block, error) {
	return defaultDecoder.DecodeBlock(b)
}

// DecodeBlockHex decodes a hex encoded block with default options
func DecodeBlockHex(s string) (*Block, error) {
	return defaultDecoder.DecodeBlockHex(s)
}
