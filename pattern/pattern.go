package pattern

import (
	"bytes"
	"errors"
	"fmt"
)

// ErrEmpty is returned when a pattern would contain no bytes.
var ErrEmpty = errors.New("pattern is empty")

// defaultBytes alternates all-ones, all-zeros and mixed nibbles.
var defaultBytes = []byte{
	0x66, 0x99, 0x00, 0xFF, 0xA5, 0x5A, 0xF0, 0x0F,
	0x33, 0xAA, 0xF0, 0x0F, 0xFF,
}

// Pattern is an immutable, non-empty byte sequence.
// The zero value is an empty pattern and is rejected by sessions.
type Pattern struct {
	data []byte
}

// New copies b into a new Pattern.
func New(b []byte) (Pattern, error) {
	if len(b) == 0 {
		return Pattern{}, ErrEmpty
	}
	data := make([]byte, len(b))
	copy(data, b)
	return Pattern{data: data}, nil
}

// MustNew is like New but panics on an empty input.
// Intended for package-level pattern literals.
func MustNew(b []byte) Pattern {
	p, err := New(b)
	if err != nil {
		panic(err)
	}
	return p
}

// Default returns the 13-byte pattern used by the reference test bench.
// It mixes all-zero, all-one and alternating bit patterns.
func Default() Pattern {
	return MustNew(defaultBytes)
}

// Len returns the pattern length in bytes.
func (p Pattern) Len() int {
	return len(p.data)
}

// IsEmpty reports whether the pattern holds no bytes.
func (p Pattern) IsEmpty() bool {
	return len(p.data) == 0
}

// Bytes returns a copy of the pattern.
func (p Pattern) Bytes() []byte {
	out := make([]byte, len(p.data))
	copy(out, p.data)
	return out
}

// Equal reports whether b holds exactly the pattern bytes.
func (p Pattern) Equal(b []byte) bool {
	return bytes.Equal(p.data, b)
}

func (p Pattern) String() string {
	return fmt.Sprintf("% X", p.data)
}
