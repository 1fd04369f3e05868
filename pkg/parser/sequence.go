package parser

import (
	"fmt"
)

// maxPrealloc bounds the capacity reserved from an untrusted count
const maxPrealloc = 1024

// ReadSequence reads a CompactSize count followed by that many elements
// decoded with read. The first failing element aborts the whole sequence.
//
// Every element occupies at least one byte, so a count larger than the
// remaining buffer is rejected before anything is decoded. Preallocation is
// capped at maxPrealloc elements; larger sequences grow as elements decode.
func ReadSequence[T any](b []byte, read func([]byte) (T, []byte, error)) ([]T, []byte, error) {
	count, rest, err := ReadVarInt(b)
	if err != nil {
		return nil, nil, fmt.Errorf("count: %w", err)
	}
	if count > uint64(len(rest)) {
		return nil, nil, fmt.Errorf("%w: count %d exceeds %d remaining bytes", ErrTruncatedInput, count, len(rest))
	}

	items := make([]T, 0, min(count, maxPrealloc))
	for i := uint64(0); i < count; i++ {
		item, next, err := read(rest)
		if err != nil {
			return nil, nil, fmt.Errorf("element %d: %w", i, err)
		}
		items = append(items, item)
		rest = next
	}

	return items, rest, nil
}
