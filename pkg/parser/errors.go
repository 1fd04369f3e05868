package parser

import (
	"errors"
	"fmt"
)

var (
	// ErrTruncatedInput is returned when fewer bytes remain than a field or record requires
	ErrTruncatedInput = errors.New("truncated input")
	// ErrUnsupportedOpcode is returned for script bytes outside the handled opcode table
	ErrUnsupportedOpcode = errors.New("unsupported opcode")
	// ErrTrailingBytes is returned when bytes remain after a complete block
	ErrTrailingBytes = errors.New("trailing bytes")
)

// UnsupportedOpcodeError carries the opcode byte that could not be decoded.
type UnsupportedOpcodeError struct {
	Op byte
}

func (e *UnsupportedOpcodeError) Error() string {
	return fmt.Sprintf("%s 0x%02x", ErrUnsupportedOpcode, e.Op)
}

func (e *UnsupportedOpcodeError) Unwrap() error {
	return ErrUnsupportedOpcode
}

func truncated(need uint64, have int) error {
	return fmt.Errorf("%w: need %d bytes, have %d", ErrTruncatedInput, need, have)
}
