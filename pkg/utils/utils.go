package utils

import (
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
)

// ErrMalformedHex is returned when the transport encoding of a block is not valid hex
var ErrMalformedHex = errors.New("malformed hex")

// HexToBytes converts a hex string to bytes. Upper and lower case digits are
// accepted; odd length or any non-hex character fails with ErrMalformedHex.
func HexToBytes(hexStr string) ([]byte, error) {
	if len(hexStr)%2 != 0 {
		return nil, fmt.Errorf("%w: odd length %d", ErrMalformedHex, len(hexStr))
	}

	b, err := hex.DecodeString(hexStr)
	if err != nil {
		var invalid hex.InvalidByteError
		if errors.As(err, &invalid) {
			return nil, fmt.Errorf("%w: invalid byte %#02x at offset %d",
				ErrMalformedHex, byte(invalid), strings.IndexByte(hexStr, byte(invalid)))
		}
		return nil, fmt.Errorf("%w: %v", ErrMalformedHex, err)
	}
	return b, nil
}

// BytesToHex converts bytes to a lowercase hex string
func BytesToHex(b []byte) string {
	return hex.EncodeToString(b)
}

// CleanHex strips whitespace a hex dump usually carries (line breaks, trailing newline)
func CleanHex(s string) string {
	return strings.Join(strings.Fields(s), "")
}
