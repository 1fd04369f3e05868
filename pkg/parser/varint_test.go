package parser

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadVarInt(t *testing.T) {
	tests := []struct {
		name     string
		in       []byte
		want     uint64
		consumed int
	}{
		{name: "zero", in: []byte{0x00}, want: 0, consumed: 1},
		{name: "single byte max", in: []byte{0xfc}, want: 252, consumed: 1},
		{name: "uint16", in: []byte{0xfd, 0x00, 0x01}, want: 256, consumed: 3},
		{name: "uint16 non minimal", in: []byte{0xfd, 0x01, 0x00}, want: 1, consumed: 3},
		{name: "uint32", in: []byte{0xfe, 0x00, 0x00, 0x01, 0x00}, want: 65536, consumed: 5},
		{name: "uint64 max", in: []byte{0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff}, want: math.MaxUint64, consumed: 9},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := append(append([]byte{}, tt.in...), 0xaa)

			got, rest, err := ReadVarInt(in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Len(t, rest, len(in)-tt.consumed)
			assert.Equal(t, []byte{0xaa}, rest)
		})
	}
}

func TestReadVarIntTruncated(t *testing.T) {
	for _, in := range [][]byte{
		nil,
		{0xfd, 0x00},
		{0xfe, 0x00, 0x00, 0x00},
		{0xff, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00},
	} {
		_, _, err := ReadVarInt(in)
		require.ErrorIs(t, err, ErrTruncatedInput, "input %x", in)
	}
}

func TestAppendVarInt(t *testing.T) {
	assert.Equal(t, []byte{0xfc}, AppendVarInt(nil, 252))
	assert.Equal(t, []byte{0xfd, 0xfd, 0x00}, AppendVarInt(nil, 253))
	assert.Equal(t, []byte{0xfe, 0x00, 0x00, 0x01, 0x00}, AppendVarInt(nil, 0x10000))
	assert.Len(t, AppendVarInt(nil, math.MaxUint64), 9)

	for _, v := range []uint64{0, 0xfc, 0xfd, 0xffff, 0x10000, 0xffffffff, 0x100000000} {
		got, rest, err := ReadVarInt(AppendVarInt(nil, v))
		require.NoError(t, err)
		assert.Equal(t, v, got)
		assert.Empty(t, rest)
	}
}
