package parser

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/btcsuite/btcd/txscript"
)

// OpKind identifies the decoded form of a script opcode
type OpKind uint8

const (
	OpPush OpKind = iota
	OpReturn
	OpDup
	OpEqual
	OpEqualVerify
	OpHash160
	OpCheckSig
	// OpUnknown is only produced under OpcodeLenient
	OpUnknown
)

var opNames = map[OpKind]string{
	OpReturn:      "OP_RETURN",
	OpDup:         "OP_DUP",
	OpEqual:       "OP_EQUAL",
	OpEqualVerify: "OP_EQUALVERIFY",
	OpHash160:     "OP_HASH160",
	OpCheckSig:    "OP_CHECKSIG",
}

var opKinds = map[byte]OpKind{
	txscript.OP_RETURN:      OpReturn,
	txscript.OP_DUP:         OpDup,
	txscript.OP_EQUAL:       OpEqual,
	txscript.OP_EQUALVERIFY: OpEqualVerify,
	txscript.OP_HASH160:     OpHash160,
	txscript.OP_CHECKSIG:    OpCheckSig,
}

// OpCode is a single decoded script operation. Byte holds the opcode byte as
// it appeared on the wire; Data is set only for pushes.
type OpCode struct {
	Kind OpKind
	Byte byte
	Data []byte
}

// String renders the opcode in the usual ASM notation
func (o OpCode) String() string {
	switch o.Kind {
	case OpPush:
		if o.Byte == txscript.OP_PUSHDATA1 {
			return "OP_PUSHDATA1 " + hex.EncodeToString(o.Data)
		}
		return fmt.Sprintf("OP_PUSHBYTES_%d %s", len(o.Data), hex.EncodeToString(o.Data))
	case OpUnknown:
		return fmt.Sprintf("OP_UNKNOWN_0x%02x", o.Byte)
	default:
		return opNames[o.Kind]
	}
}

// OpcodePolicy selects what happens on a byte outside the opcode table
type OpcodePolicy uint8

const (
	// OpcodeStrict fails with ErrUnsupportedOpcode
	OpcodeStrict OpcodePolicy = iota
	// OpcodeLenient records an OpUnknown and carries on with the next byte
	OpcodeLenient
)

// Script is the decoded opcode stream together with its raw bytes
type Script struct {
	Ops []OpCode
	Raw []byte
}

// String renders the script as space separated ASM
func (s Script) String() string {
	parts := make([]string, len(s.Ops))
	for i, op := range s.Ops {
		parts[i] = op.String()
	}
	return strings.Join(parts, " ")
}

// HasUnknown reports whether any opcode was left undecoded
func (s Script) HasUnknown() bool {
	for _, op := range s.Ops {
		if op.Kind == OpUnknown {
			return true
		}
	}
	return false
}

// ReadOpCode decodes one opcode from the start of b
func (d *Decoder) ReadOpCode(b []byte) (OpCode, []byte, error) {
	op, rest, err := ReadU8(b)
	if err != nil {
		return OpCode{}, nil, err
	}

	switch {
	case op >= txscript.OP_DATA_1 && op <= txscript.OP_DATA_75:
		data, rest, err := ReadBytes(rest, uint64(op))
		if err != nil {
			return OpCode{}, nil, fmt.Errorf("push: %w", err)
		}
		return OpCode{Kind: OpPush, Byte: op, Data: data}, rest, nil

	case op == txscript.OP_PUSHDATA1:
		n, rest, err := ReadU8(rest)
		if err != nil {
			return OpCode{}, nil, fmt.Errorf("pushdata1 length: %w", err)
		}
		data, rest, err := ReadBytes(rest, uint64(n))
		if err != nil {
			return OpCode{}, nil, fmt.Errorf("pushdata1: %w", err)
		}
		return OpCode{Kind: OpPush, Byte: op, Data: data}, rest, nil
	}

	if kind, ok := opKinds[op]; ok {
		return OpCode{Kind: kind, Byte: op}, rest, nil
	}

	if d.opts.Opcodes == OpcodeLenient {
		return OpCode{Kind: OpUnknown, Byte: op}, rest, nil
	}
	return OpCode{}, nil, &UnsupportedOpcodeError{Op: op}
}

// ReadScript reads a CompactSize length and decodes exactly that many bytes
// as an opcode stream.
func (d *Decoder) ReadScript(b []byte) (Script, []byte, error) {
	raw, rest, err := readLengthPrefixed(b)
	if err != nil {
		return Script{}, nil, err
	}

	ops := make([]OpCode, 0)
	for body := raw; len(body) > 0; {
		var op OpCode
		op, body, err = d.ReadOpCode(body)
		if err != nil {
			return Script{}, nil, fmt.Errorf("opcode %d: %w", len(ops), err)
		}
		ops = append(ops, op)
	}

	return Script{Ops: ops, Raw: raw}, rest, nil
}

// readLengthPrefixed reads a CompactSize length and returns a copy of that many bytes
func readLengthPrefixed(b []byte) ([]byte, []byte, error) {
	n, rest, err := ReadVarInt(b)
	if err != nil {
		return nil, nil, fmt.Errorf("length: %w", err)
	}
	body, rest, err := ReadBytes(rest, n)
	if err != nil {
		return nil, nil, err
	}
	return append([]byte{}, body...), rest, nil
}
