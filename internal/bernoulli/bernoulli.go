package bernoulli

// Source is the part of *rand.Rand a Bernoulli draw needs.
type Source interface {
	Float64() float64
}

// Bernoulli implements a simple u<p decision. The degenerate cases p<=0 and
// p>=1 are decided without consuming randomness.
type Bernoulli struct {
	p   float64
	src Source
}

func New(p float64, src Source) *Bernoulli { return &Bernoulli{p: p, src: src} }

func (b *Bernoulli) P() float64 { return b.p }

// Trial reports whether this draw succeeded.
func (b *Bernoulli) Trial() bool {
	if b.p <= 0 {
		return false
	}
	if b.p >= 1 {
		return true
	}
	return b.src.Float64() < b.p
}

// Count returns the number of successes in n independent trials.
func (b *Bernoulli) Count(n int) int {
	c := 0
	for i := 0; i < n; i++ {
		if b.Trial() {
			c++
		}
	}
	return c
}
