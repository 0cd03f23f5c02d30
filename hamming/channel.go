package hamming

import (
	"math"

	"github.com/pkg/errors"

	"github.com/observe-l/hamming74/internal/bernoulli"
)

//go:generate mockgen -destination=../internal/mocks/mock_source.go -package=mocks github.com/observe-l/hamming74/hamming Source

// Source supplies uniform draws in [0,1). *math/rand.Rand satisfies it.
type Source interface {
	Float64() float64
}

// Channel is a memoryless binary symmetric channel. Its only state is the
// random source, so a Channel must not be shared between goroutines unless
// the source is.
type Channel struct {
	src Source
}

func NewChannel(src Source) *Channel { return &Channel{src: src} }

// Transmit flips every position of w independently with probability p.
func (c *Channel) Transmit(p float64, w Word) (Word, error) {
	if err := checkProb(p); err != nil {
		return Word{}, err
	}
	flip := bernoulli.New(p, c.src)
	out := w
	for i := 0; i < N; i++ {
		if flip.Trial() {
			out = out.Flip(i)
		}
	}
	return out, nil
}

// TransmitBits is Transmit over an unpacked N-bit slice.
func (c *Channel) TransmitBits(p float64, b []byte) ([]byte, error) {
	w, err := WordFromBits(b)
	if err != nil {
		return nil, err
	}
	out, err := c.Transmit(p, w)
	if err != nil {
		return nil, err
	}
	return out.Bits(), nil
}

func checkProb(p float64) error {
	if math.IsNaN(p) || p < 0 || p > 1 {
		return errors.Wrapf(ErrInvalidInput, "flip probability %v outside [0,1]", p)
	}
	return nil
}
