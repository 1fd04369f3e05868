package analyzer

import (
	"errors"

	"block-lens/pkg/parser"
	"block-lens/pkg/types"
	"block-lens/pkg/utils"
)

// Error codes reported in the JSON error envelope
const (
	CodeMalformedHex      = "MALFORMED_HEX"
	CodeTruncatedInput    = "TRUNCATED_INPUT"
	CodeUnsupportedOpcode = "UNSUPPORTED_OPCODE"
	CodeTrailingBytes     = "TRAILING_BYTES"
	CodeInvalidBlock      = "INVALID_BLOCK"
)

// ErrorInfoFor maps a decode failure to its error envelope
func ErrorInfoFor(err error) *types.ErrorInfo {
	code := CodeInvalidBlock
	switch {
	case errors.Is(err, utils.ErrMalformedHex):
		code = CodeMalformedHex
	case errors.Is(err, parser.ErrTruncatedInput):
		code = CodeTruncatedInput
	case errors.Is(err, parser.ErrUnsupportedOpcode):
		code = CodeUnsupportedOpcode
	case errors.Is(err, parser.ErrTrailingBytes):
		code = CodeTrailingBytes
	}
	return &types.ErrorInfo{Code: code, Message: err.Error()}
}
