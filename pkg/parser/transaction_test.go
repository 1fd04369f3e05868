package parser

import (
	"encoding/binary"
	"testing"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func outPointBytes(hash chainhash.Hash, index uint32) []byte {
	return binary.LittleEndian.AppendUint32(append([]byte{}, hash[:]...), index)
}

func TestOutPointIsCoinbase(t *testing.T) {
	var zero chainhash.Hash
	other := chainhash.Hash{0x01}

	assert.True(t, OutPoint{Hash: zero, Index: 0xffffffff}.IsCoinbase())
	assert.False(t, OutPoint{Hash: zero, Index: 0}.IsCoinbase())
	assert.False(t, OutPoint{Hash: zero, Index: 0xfffffffe}.IsCoinbase())
	assert.False(t, OutPoint{Hash: other, Index: 0xffffffff}.IsCoinbase())
}

func TestReadOutPoint(t *testing.T) {
	hash := chainhash.Hash{0xaa, 0xbb}
	in := append(outPointBytes(hash, 7), 0x01)

	op, rest, err := ReadOutPoint(in)
	require.NoError(t, err)
	assert.Equal(t, hash, op.Hash)
	assert.Equal(t, uint32(7), op.Index)
	assert.Equal(t, []byte{0x01}, rest)

	_, _, err = ReadOutPoint(in[:34])
	require.ErrorIs(t, err, ErrTruncatedInput)
	assert.Contains(t, err.Error(), "index")
}

func TestReadTxInCoinbase(t *testing.T) {
	// coinbase data is arbitrary and must not go through the opcode table
	data := []byte{0xff, 0xfe, 0x4d, 0x00, 0x4c}

	in := outPointBytes(chainhash.Hash{}, 0xffffffff)
	in = AppendVarInt(in, uint64(len(data)))
	in = append(in, data...)
	in = binary.LittleEndian.AppendUint32(in, 0xffffffff)
	in = append(in, 0x42)

	txIn, rest, err := defaultDecoder.ReadTxIn(in)
	require.NoError(t, err)
	assert.True(t, txIn.PreviousOutPoint.IsCoinbase())
	assert.Equal(t, data, txIn.CoinbaseData)
	assert.Empty(t, txIn.SignatureScript.Ops)
	assert.Equal(t, uint32(0xffffffff), txIn.Sequence)
	assert.Equal(t, []byte{0x42}, rest)
}

func TestReadTxInCoinbaseTruncated(t *testing.T) {
	in := outPointBytes(chainhash.Hash{}, 0xffffffff)
	in = append(in, 0x10, 0x01, 0x02)

	_, _, err := defaultDecoder.ReadTxIn(in)
	require.ErrorIs(t, err, ErrTruncatedInput)
	assert.Contains(t, err.Error(), "coinbase data")
}

func TestReadTxInRegular(t *testing.T) {
	in := outPointBytes(chainhash.Hash{0x11}, 1)
	in = append(in, 0x03, 0x02, 0xaa, 0xbb)
	in = binary.LittleEndian.AppendUint32(in, 0xfffffffd)

	txIn, rest, err := defaultDecoder.ReadTxIn(in)
	require.NoError(t, err)
	assert.Empty(t, rest)
	assert.False(t, txIn.PreviousOutPoint.IsCoinbase())
	assert.Nil(t, txIn.CoinbaseData)
	require.Len(t, txIn.SignatureScript.Ops, 1)
	assert.Equal(t, []byte{0xaa, 0xbb}, txIn.SignatureScript.Ops[0].Data)
	assert.Equal(t, uint32(0xfffffffd), txIn.Sequence)

	// a non-coinbase input with an unhandled opcode fails
	bad := outPointBytes(chainhash.Hash{0x11}, 1)
	bad = append(bad, 0x01, 0xff)
	bad = binary.LittleEndian.AppendUint32(bad, 0)
	_, _, err = defaultDecoder.ReadTxIn(bad)
	require.ErrorIs(t, err, ErrUnsupportedOpcode)
	assert.Contains(t, err.Error(), "signature script")
}

func TestReadTxOut(t *testing.T) {
	in := binary.LittleEndian.AppendUint64(nil, 5000000000)
	in = append(in, 0x02, 0x6a, 0x00)

	_, _, err := defaultDecoder.ReadTxOut(in)
	require.ErrorIs(t, err, ErrUnsupportedOpcode)

	in = binary.LittleEndian.AppendUint64(nil, 1234)
	in = append(in, 0x01, 0x6a)
	out, rest, err := defaultDecoder.ReadTxOut(in)
	require.NoError(t, err)
	assert.Empty(t, rest)
	assert.Equal(t, uint64(1234), out.Value)
	assert.Equal(t, "OP_RETURN", out.PkScript.String())

	_, _, err = defaultDecoder.ReadTxOut(in[:5])
	require.ErrorIs(t, err, ErrTruncatedInput)
}

func TestReadTransaction(t *testing.T) {
	raw := binary.LittleEndian.AppendUint32(nil, 1)
	raw = append(raw, 0x01)
	raw = append(raw, outPointBytes(chainhash.Hash{0x22}, 3)...)
	raw = append(raw, 0x00)
	raw = binary.LittleEndian.AppendUint32(raw, 0xffffffff)
	raw = append(raw, 0x02)
	raw = binary.LittleEndian.AppendUint64(raw, 10)
	raw = append(raw, 0x01, 0xac)
	raw = binary.LittleEndian.AppendUint64(raw, 20)
	raw = append(raw, 0x00)
	raw = binary.LittleEndian.AppendUint32(raw, 500000)

	in := append(append([]byte{}, raw...), 0x01, 0x02)

	tx, rest, err := defaultDecoder.ReadTransaction(in)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x01, 0x02}, rest)
	assert.Equal(t, uint32(1), tx.Version)
	require.Len(t, tx.TxIn, 1)
	assert.Equal(t, uint32(3), tx.TxIn[0].PreviousOutPoint.Index)
	require.Len(t, tx.TxOut, 2)
	assert.Equal(t, uint64(10), tx.TxOut[0].Value)
	assert.Equal(t, uint64(20), tx.TxOut[1].Value)
	assert.Empty(t, tx.TxOut[1].PkScript.Ops)
	assert.Equal(t, uint32(500000), tx.LockTime)
	assert.Equal(t, len(raw), tx.Size)
	assert.Equal(t, chainhash.DoubleHashH(raw), tx.TxID)
	assert.False(t, tx.IsCoinbase())

	for i := 0; i < len(raw); i++ {
		_, _, err := defaultDecoder.ReadTransaction(raw[:i])
		require.ErrorIs(t, err, ErrTruncatedInput, "prefix of %d bytes", i)
	}
}

func TestReadTransactionNoOutputs(t *testing.T) {
	raw := binary.LittleEndian.AppendUint32(nil, 2)
	raw = append(raw, 0x00, 0x00)
	raw = binary.LittleEndian.AppendUint32(raw, 0)

	tx, rest, err := defaultDecoder.ReadTransaction(raw)
	require.NoError(t, err)
	assert.Empty(t, rest)
	assert.Empty(t, tx.TxIn)
	assert.Empty(t, tx.TxOut)
	assert.Equal(t, len(raw), tx.Size)
}
