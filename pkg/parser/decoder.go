package parser

// Options tunes decoding. The zero value gives the reference behaviour.
type Options struct {
	Opcodes OpcodePolicy
}

// Decoder holds decoding options; it keeps no state between calls and is
// safe for concurrent use.
type Decoder struct {
	opts Options
}

// NewDecoder returns a Decoder using opts
func NewDecoder(opts Options) *Decoder {
	return &Decoder{opts: opts}
}

var defaultDecoder = NewDecoder(Options{})
