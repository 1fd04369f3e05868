package parser

import (
	"fmt"
	"math"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
)

// OutPoint references an output of a previous transaction
type OutPoint struct {
	Hash  chainhash.Hash
	Index uint32
}

// IsCoinbase reports whether the outpoint is the null outpoint used by coinbase inputs
func (o OutPoint) IsCoinbase() bool {
	return o.Index == math.MaxUint32 && o.Hash == (chainhash.Hash{})
}

// TxIn is a transaction input. For a coinbase input SignatureScript is empty
// and the miner supplied bytes are kept undecoded in CoinbaseData.
type TxIn struct {
	PreviousOutPoint OutPoint
	SignatureScript  Script
	CoinbaseData     []byte
	Sequence         uint32
}

// TxOut is a transaction output, value in satoshis
type TxOut struct {
	Value    uint64
	PkScript Script
}

// Transaction is a legacy (non-segwit) serialized transaction.
// TxID and Size are derived from the exact bytes it was decoded from.
type Transaction struct {
	Version  uint32
	TxIn     []TxIn
	TxOut    []TxOut
	LockTime uint32

	TxID chainhash.Hash
	Size int
}

// ReadOutPoint reads the previous transaction hash and output index
func ReadOutPoint(b []byte) (OutPoint, []byte, error) {
	hash, rest, err := ReadHash(b)
	if err != nil {
		return OutPoint{}, nil, fmt.Errorf("hash: %w", err)
	}
	index, rest, err := ReadU32(rest)
	if err != nil {
		return OutPoint{}, nil, fmt.Errorf("index: %w", err)
	}
	return OutPoint{Hash: hash, Index: index}, rest, nil
}

// ReadTxIn reads an input. A coinbase input's script is arbitrary data and is
// skipped by its length prefix rather than decoded as opcodes.
func (d *Decoder) ReadTxIn(b []byte) (TxIn, []byte, error) {
	var in TxIn

	prev, rest, err := ReadOutPoint(b)
	if err != nil {
		return in, nil, fmt.Errorf("outpoint: %w", err)
	}
	in.PreviousOutPoint = prev

	if prev.IsCoinbase() {
		in.CoinbaseData, rest, err = readLengthPrefixed(rest)
		if err != nil {
			return in, nil, fmt.Errorf("coinbase data: %w", err)
		}
		in.SignatureScript = Script{Ops: []OpCode{}, Raw: []byte{}}
	} else {
		in.SignatureScript, rest, err = d.ReadScript(rest)
		if err != nil {
			return in, nil, fmt.Errorf("signature script: %w", err)
		}
	}

	in.Sequence, rest, err = ReadU32(rest)
	if err != nil {
		return in, nil, fmt.Errorf("sequence: %w", err)
	}

	return in, rest, nil
}

// ReadTxOut reads an output
func (d *Decoder) ReadTxOut(b []byte) (TxOut, []byte, error) {
	value, rest, err := ReadU64(b)
	if err != nil {
		return TxOut{}, nil, fmt.Errorf("value: %w", err)
	}
	script, rest, err := d.ReadScript(rest)
	if err != nil {
		return TxOut{}, nil, fmt.Errorf("pubkey script: %w", err)
	}
	return TxOut{Value: value, PkScript: script}, rest, nil
}

// ReadTransaction reads version, inputs, outputs and locktime
func (d *Decoder) ReadTransaction(b []byte) (Transaction, []byte, error) {
	var tx Transaction

	version, rest, err := ReadU32(b)
	if err != nil {
		return tx, nil, fmt.Errorf("version: %w", err)
	}
	tx.Version = version

	tx.TxIn, rest, err = ReadSequence(rest, d.ReadTxIn)
	if err != nil {
		return tx, nil, fmt.Errorf("inputs: %w", err)
	}

	tx.TxOut, rest, err = ReadSequence(rest, d.ReadTxOut)
	if err != nil {
		return tx, nil, fmt.Errorf("outputs: %w", err)
	}

	tx.LockTime, rest, err = ReadU32(rest)
	if err != nil {
		return tx, nil, fmt.Errorf("locktime: %w", err)
	}

	raw := b[:len(b)-len(rest)]
	tx.TxID = chainhash.DoubleHashH(raw)
	tx.Size = len(raw)

	return tx, rest, nil
}

// IsCoinbase reports whether the transaction spends the null outpoint
func (tx *Transaction) IsCoinbase() bool {
	return len(tx.TxIn) == 1 && tx.TxIn[0].PreviousOutPoint.IsCoinbase()
}
