package hamming

import (
	"github.com/pkg/errors"
)

// Encode appends the three parity bits to m:
//
//	p1 = m2 ^ m3 ^ m4
//	p2 = m1 ^ m3 ^ m4
//	p3 = m1 ^ m2 ^ m4
func Encode(m Message) Word {
	m1, m2, m3, m4 := m.Bit(0), m.Bit(1), m.Bit(2), m.Bit(3)
	p1 := m2 ^ m3 ^ m4
	p2 := m1 ^ m3 ^ m4
	p3 := m1 ^ m2 ^ m4
	return Word{v: m.v<<(N-K) | p1<<2 | p2<<1 | p3}
}

// Codebook is the ordered table of all NumCodewords codewords, indexed by
// message value. The zero value is unbuilt; Build makes it usable. A built
// Codebook is never mutated and may be shared between goroutines.
type Codebook struct {
	words []Word
	index map[Word]int
}

// NewCodebook returns a built codebook.
func NewCodebook() *Codebook {
	cb := &Codebook{}
	if err := cb.Build(); err != nil {
		panic(err)
	}
	return cb
}

// Build populates the table. It may be called only once.
func (c *Codebook) Build() error {
	if c.words != nil {
		return errors.Wrap(ErrPrecondition, "codebook already built")
	}
	words := make([]Word, NumCodewords)
	index := make(map[Word]int, NumCodewords)
	for i := range words {
		words[i] = Encode(Message{v: uint8(i)})
		index[words[i]] = i
	}
	c.words, c.index = words, index
	return nil
}

// Ready returns ErrPrecondition unless the codebook holds exactly NumCodewords entries.
func (c *Codebook) Ready() error {
	if n := c.Len(); n != NumCodewords {
		return errors.Wrapf(ErrPrecondition, "codebook holds %d codewords, want %d", n, NumCodewords)
	}
	return nil
}

func (c *Codebook) Len() int {
	if c == nil {
		return 0
	}
	return len(c.words)
}

// Codeword returns the codeword of message index i.
func (c *Codebook) Codeword(i int) (Word, error) {
	if err := c.Ready(); err != nil {
		return Word{}, err
	}
	if i < 0 || i >= NumCodewords {
		return Word{}, errors.Wrapf(ErrInvalidInput, "message index %d outside [0,%d]", i, NumCodewords-1)
	}
	return c.words[i], nil
}

// Index reports the message index of w if w is a codeword.
func (c *Codebook) Index(w Word) (int, bool) {
	if c == nil {
		return 0, false
	}
	i, ok := c.index[w]
	return i, ok
}

func (c *Codebook) Contains(w Word) bool {
	_, ok := c.Index(w)
	return ok
}

// Words returns a copy of the table in index order.
func (c *Codebook) Words() []Word {
	if c == nil {
		return nil
	}
	out := make([]Word, len(c.words))
	copy(out, c.words)
	return out
}

// WeightDistribution returns A_w, the number of codewords of Hamming weight w.
func (c *Codebook) WeightDistribution() ([N + 1]int, error) {
	var dist [N + 1]int
	if err := c.Ready(); err != nil {
		return dist, err
	}
	for _, w := range c.words {
		dist[Weight(w)]++
	}
	return dist, nil
}

// MinimumDistance returns the smallest distance between two distinct codewords.
func (c *Codebook) MinimumDistance() (int, error) {
	if err := c.Ready(); err != nil {
		return 0, err
	}
	best := N + 1
	for i := range c.words {
		for j := i + 1; j < len(c.words); j++ {
			if d := Distance(c.words[i], c.words[j]); d < best {
				best = d
			}
		}
	}
	return best, nil
}
