package analyzer

import (
	"encoding/hex"
	"unicode/utf8"

	"block-lens/pkg/parser"

	btcec "github.com/btcsuite/btcd/btcec/v2"
)

// Script type labels
const (
	ScriptP2PKH    = "p2pkh"
	ScriptP2SH     = "p2sh"
	ScriptP2PK     = "p2pk"
	ScriptP2WPKH   = "p2wpkh"
	ScriptP2WSH    = "p2wsh"
	ScriptP2TR     = "p2tr"
	ScriptOpReturn = "op_return"
	ScriptUnknown  = "unknown"
)

func isPush(op parser.OpCode, size int) bool {
	return op.Kind == parser.OpPush && len(op.Data) == size
}

func isUnknown(op parser.OpCode, b byte) bool {
	return op.Kind == parser.OpUnknown && op.Byte == b
}

// ClassifyOutputScript determines the script type of a decoded output script
func ClassifyOutputScript(script parser.Script) string {
	ops := script.Ops
	if len(ops) == 0 {
		return ScriptUnknown
	}

	// OP_RETURN: starts with OP_RETURN
	if ops[0].Kind == parser.OpReturn {
		return ScriptOpReturn
	}

	switch len(ops) {
	case 5:
		// P2PKH: OP_DUP OP_HASH160 <20 bytes> OP_EQUALVERIFY OP_CHECKSIG
		if ops[0].Kind == parser.OpDup &&
			ops[1].Kind == parser.OpHash160 &&
			isPush(ops[2], 20) &&
			ops[3].Kind == parser.OpEqualVerify &&
			ops[4].Kind == parser.OpCheckSig {
			return ScriptP2PKH
		}

	case 3:
		// P2SH: OP_HASH160 <20 bytes> OP_EQUAL
		if ops[0].Kind == parser.OpHash160 &&
			isPush(ops[1], 20) &&
			ops[2].Kind == parser.OpEqual {
			return ScriptP2SH
		}

	case 2:
		// P2PK: <33 or 65 byte pubkey> OP_CHECKSIG
		if ops[1].Kind == parser.OpCheckSig &&
			(isPush(ops[0], 33) || isPush(ops[0], 65)) {
			if _, err := btcec.ParsePubKey(ops[0].Data); err == nil {
				return ScriptP2PK
			}
			return ScriptUnknown
		}

		// Witness programs only decode with unknown opcodes allowed (OP_0 / OP_1)
		switch {
		case isUnknown(ops[0], 0x00) && isPush(ops[1], 20):
			return ScriptP2WPKH
		case isUnknown(ops[0], 0x00) && isPush(ops[1], 32):
			return ScriptP2WSH
		case isUnknown(ops[0], 0x51) && isPush(ops[1], 32):
			return ScriptP2TR
		}
	}

	return ScriptUnknown
}

// ParseOpReturn extracts the data pushed after OP_RETURN.
// Multiple data pushes are concatenated.
func ParseOpReturn(script parser.Script) (dataHex string, dataUtf8 *string) {
	if len(script.Ops) == 0 || script.Ops[0].Kind != parser.OpReturn {
		return "", nil
	}

	var allData []byte
	for _, op := range script.Ops[1:] {
		if op.Kind != parser.OpPush {
			break
		}
		allData = append(allData, op.Data...)
	}

	dataHex = hex.EncodeToString(allData)
	if len(allData) > 0 && utf8.Valid(allData) {
		str := string(allData)
		dataUtf8 = &str
	}

	return dataHex, dataUtf8
}
