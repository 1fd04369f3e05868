package analyzer

import (
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/txscript"
)

// ExtractBIP34Height extracts the block height a coinbase commits to (BIP34).
// The height is the first push of the coinbase data, either a small integer
// opcode or a little-endian number of up to 8 bytes. Returns 0 when absent.
func ExtractBIP34Height(coinbaseData []byte) int64 {
	if len(coinbaseData) == 0 {
		return 0
	}

	op := coinbaseData[0]
	if op >= txscript.OP_1 && op <= txscript.OP_16 {
		return int64(op - (txscript.OP_1 - 1))
	}

	pushLen := int(op)
	if pushLen < 1 || pushLen > 8 || 1+pushLen > len(coinbaseData) {
		return 0
	}

	// Read little-endian integer
	var height int64
	for i, b := range coinbaseData[1 : 1+pushLen] {
		height |= int64(b) << (8 * i)
	}
	return height
}

// ComputeMerkleRoot computes the merkle root from transaction hashes
func ComputeMerkleRoot(txHashes []chainhash.Hash) chainhash.Hash {
	if len(txHashes) == 0 {
		return chainhash.Hash{}
	}
	if len(txHashes) == 1 {
		return txHashes[0]
	}

	nextLevel := make([]chainhash.Hash, 0, (len(txHashes)+1)/2)
	for i := 0; i < len(txHashes); i += 2 {
		left := txHashes[i]
		right := txHashes[i]
		if i+1 < len(txHashes) {
			right = txHashes[i+1]
		}
		var combined [chainhash.HashSize * 2]byte
		copy(combined[:chainhash.HashSize], left[:])
		copy(combined[chainhash.HashSize:], right[:])
		nextLevel = append(nextLevel, chainhash.DoubleHashH(combined[:]))
	}

	return ComputeMerkleRoot(nextLevel)
}
