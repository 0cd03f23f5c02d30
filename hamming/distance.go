package hamming

import (
	"math/bits"

	"github.com/pkg/errors"
)

// Distance returns the number of positions in which a and b differ.
func Distance(a, b Word) int { return bits.OnesCount8(a.v ^ b.v) }

// Weight returns the number of ones in w.
func Weight(w Word) int { return bits.OnesCount8(w.v) }

// DistanceBits is Distance over unpacked bit slices. Both slices must hold
// exactly N bits of value 0 or 1.
func DistanceBits(a, b []byte) (int, error) {
	if len(a) != len(b) {
		return 0, errors.Wrapf(ErrInvalidInput, "word lengths don't match: %d vs %d", len(a), len(b))
	}
	wa, err := WordFromBits(a)
	if err != nil {
		return 0, err
	}
	wb, err := WordFromBits(b)
	if err != nil {
		return 0, err
	}
	return Distance(wa, wb), nil
}
