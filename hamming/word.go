package hamming

import (
	"strings"

	"github.com/pkg/errors"
)

// Code parameters of the (7,4) Hamming code.
const (
	N             = 7      // codeword length
	K             = 4      // message length
	NumCodewords  = 1 << K // one codeword per message
	MinDistance   = 3
	DefaultTrials = 10000
)

var (
	// ErrInvalidInput reports a malformed word, message, index or channel parameter.
	ErrInvalidInput = errors.New("hamming: invalid input")
	// ErrPrecondition reports use of a codebook that has not been built.
	ErrPrecondition = errors.New("hamming: precondition violated")
)

// Message is a K-bit message. Bit 0 (m1) is the most significant bit of Index.
type Message struct{ v uint8 }

// MessageFromIndex returns the message whose big-endian value is i.
func MessageFromIndex(i int) (Message, error) {
	if i < 0 || i >= NumCodewords {
		return Message{}, errors.Wrapf(ErrInvalidInput, "message index %d outside [0,%d]", i, NumCodewords-1)
	}
	return Message{v: uint8(i)}, nil
}

// ParseMessage parses a string of exactly K '0'/'1' characters.
func ParseMessage(s string) (Message, error) {
	v, err := parseBits(s, K)
	if err != nil {
		return Message{}, errors.Wrap(err, "message")
	}
	return Message{v: v}, nil
}

// MessageFromBits packs K bits (each 0 or 1), most significant first.
func MessageFromBits(b []byte) (Message, error) {
	v, err := packBits(b, K)
	if err != nil {
		return Message{}, errors.Wrap(err, "message")
	}
	return Message{v: v}, nil
}

func (m Message) Index() int { return int(m.v) }

// Bit returns m(i+1); it panics if i is outside [0,K).
func (m Message) Bit(i int) byte { return bitAt(m.v, K, i) }

func (m Message) Bits() []byte { return unpackBits(m.v, K) }

func (m Message) String() string { return formatBits(m.v, K) }

// Word is an N-bit word, either a codeword or whatever came off the channel.
// Position 0 is the leftmost bit of String.
type Word struct{ v uint8 }

// ParseWord parses a string of exactly N '0'/'1' characters.
func ParseWord(s string) (Word, error) {
	v, err := parseBits(s, N)
	if err != nil {
		return Word{}, errors.Wrap(err, "word")
	}
	return Word{v: v}, nil
}

// WordFromBits packs N bits (each 0 or 1), position 0 first.
func WordFromBits(b []byte) (Word, error) {
	v, err := packBits(b, N)
	if err != nil {
		return Word{}, errors.Wrap(err, "word")
	}
	return Word{v: v}, nil
}

// WordFromUint8 accepts the big-endian value of a word; v must fit in N bits.
func WordFromUint8(v uint8) (Word, error) {
	if v >= 1<<N {
		return Word{}, errors.Wrapf(ErrInvalidInput, "word value %#x wider than %d bits", v, N)
	}
	return Word{v: v}, nil
}

// Uint8 returns the big-endian value of w.
func (w Word) Uint8() uint8 { return w.v }

// Bit returns the bit at position i; it panics if i is outside [0,N).
func (w Word) Bit(i int) byte { return bitAt(w.v, N, i) }

// Flip returns w with position i inverted; it panics if i is outside [0,N).
func (w Word) Flip(i int) Word {
	checkPos(i, N)
	return Word{v: w.v ^ 1<<(N-1-i)}
}

func (w Word) Bits() []byte { return unpackBits(w.v, N) }

// Message returns the K systematic bits of w.
func (w Word) Message() Message { return Message{v: w.v >> (N - K)} }

func (w Word) String() string { return formatBits(w.v, N) }

func parseBits(s string, width int) (uint8, error) {
	if len(s) != width {
		return 0, errors.Wrapf(ErrInvalidInput, "%q has %d bits, want %d", s, len(s), width)
	}
	var v uint8
	for i := 0; i < width; i++ {
		v <<= 1
		switch s[i] {
		case '0':
		case '1':
			v |= 1
		default:
			return 0, errors.Wrapf(ErrInvalidInput, "%q: invalid bit %q at position %d", s, s[i], i)
		}
	}
	return v, nil
}

func packBits(b []byte, width int) (uint8, error) {
	if len(b) != width {
		return 0, errors.Wrapf(ErrInvalidInput, "got %d bits, want %d", len(b), width)
	}
	var v uint8
	for i, bit := range b {
		if bit > 1 {
			return 0, errors.Wrapf(ErrInvalidInput, "invalid bit %d at position %d", bit, i)
		}
		v = v<<1 | bit
	}
	return v, nil
}

func unpackBits(v uint8, width int) []byte {
	out := make([]byte, width)
	for i := range out {
		out[i] = (v >> (width - 1 - i)) & 1
	}
	return out
}

func formatBits(v uint8, width int) string {
	var sb strings.Builder
	sb.Grow(width)
	for i := 0; i < width; i++ {
		sb.WriteByte('0' + (v>>(width-1-i))&1)
	}
	return sb.String()
}

func bitAt(v uint8, width, i int) byte {
	checkPos(i, width)
	return (v >> (width - 1 - i)) & 1
}

func checkPos(i, width int) {
	if i < 0 || i >= width {
		panic(errors.Wrapf(ErrInvalidInput, "bit position %d outside [0,%d)", i, width))
	}
}
