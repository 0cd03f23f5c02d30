package hamming

import "math"

// Probabilities holds one value per Outcome.
type Probabilities struct {
	NoError             float64
	DetectedCorrected   float64
	Undetected          float64
	DetectedUncorrected float64
}

// Get returns the value for o, or 0 for an unknown outcome.
func (p Probabilities) Get(o Outcome) float64 {
	switch o {
	case NoError:
		return p.NoError
	case DetectedCorrected:
		return p.DetectedCorrected
	case Undetected:
		return p.Undetected
	case DetectedUncorrected:
		return p.DetectedUncorrected
	}
	return 0
}

func (p Probabilities) Sum() float64 {
	return p.NoError + p.DetectedCorrected + p.Undetected + p.DetectedUncorrected
}

// TotalError is the probability that the decoder hands back the wrong codeword.
func (p Probabilities) TotalError() float64 { return p.Undetected + p.DetectedUncorrected }

// PUndetected is the probability that the error pattern is itself a nonzero
// codeword: seven patterns of weight 3, seven of weight 4 and one of weight 7.
func PUndetected(p float64) (float64, error) {
	if err := checkProb(p); err != nil {
		return 0, err
	}
	q := 1 - p
	w3 := N * math.Pow(p, N-K) * math.Pow(q, K)
	w4 := N * math.Pow(p, K) * math.Pow(q, N-K)
	w7 := math.Pow(p, N)
	return w3 + w4 + w7, nil
}

// PDetectedCorrected is the probability of exactly one flipped bit.
func PDetectedCorrected(p float64) (float64, error) {
	if err := checkProb(p); err != nil {
		return 0, err
	}
	return N * p * math.Pow(1-p, N-1), nil
}

// PNoError is the probability that no bit flips.
func PNoError(p float64) (float64, error) {
	if err := checkProb(p); err != nil {
		return 0, err
	}
	return math.Pow(1-p, N), nil
}

// PDetectedUncorrected is the remaining probability mass once the other three
// outcomes are removed. Rounding can push the difference a hair below zero
// near p=0, so the result is clamped to [0,1].
func PDetectedUncorrected(p float64) (float64, error) {
	pdc, err := PDetectedCorrected(p)
	if err != nil {
		return 0, err
	}
	pu, _ := PUndetected(p)
	p0, _ := PNoError(p)
	return clamp01(1 - pdc - pu - p0), nil
}

// PTotalError is PUndetected + PDetectedUncorrected.
func PTotalError(p float64) (float64, error) {
	all, err := Analytic(p)
	if err != nil {
		return 0, err
	}
	return all.TotalError(), nil
}

// Analytic evaluates all four closed forms at p.
func Analytic(p float64) (Probabilities, error) {
	pdu, err := PDetectedUncorrected(p)
	if err != nil {
		return Probabilities{}, err
	}
	p0, _ := PNoError(p)
	pdc, _ := PDetectedCorrected(p)
	pu, _ := PUndetected(p)
	return Probabilities{
		NoError:             p0,
		DetectedCorrected:   pdc,
		Undetected:          pu,
		DetectedUncorrected: pdu,
	}, nil
}

// UndetectedFromWeights computes the undetected-error probability of any
// linear code from its weight distribution: sum over w>=1 of A_w p^w (1-p)^(N-w).
func UndetectedFromWeights(dist [N + 1]int, p float64) (float64, error) {
	if err := checkProb(p); err != nil {
		return 0, err
	}
	var sum float64
	for w := 1; w <= N; w++ {
		if dist[w] == 0 {
			continue
		}
		sum += float64(dist[w]) * math.Pow(p, float64(w)) * math.Pow(1-p, float64(N-w))
	}
	return sum, nil
}

func clamp01(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}
