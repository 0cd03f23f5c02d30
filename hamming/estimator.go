package hamming

import (
	"github.com/pkg/errors"
)

// Trial is one simulated transmission.
type Trial struct {
	P        float64
	Seq      int // position within the run, starting at 0
	Index    int // message index of Sent
	Sent     Word
	Received Word
	Decoded  Word
	Outcome  Outcome
}

// Observer receives every trial an Estimator runs. Observers shared between
// estimators on different goroutines must be safe for concurrent use.
type Observer interface {
	ObserveTrial(Trial)
}

// ObserverFunc adapts a plain function to Observer.
type ObserverFunc func(Trial)

func (f ObserverFunc) ObserveTrial(t Trial) { f(t) }

type EstimatorOption func(*Estimator)

// WithObserver adds o to the observers notified after each trial.
func WithObserver(o Observer) EstimatorOption {
	return func(e *Estimator) {
		if o != nil {
			e.observers = append(e.observers, o)
		}
	}
}

// Estimator measures outcome frequencies by sending codewords through a
// Channel. It cycles the message index 0..15 so every codeword is sent
// equally often; only the channel noise is random.
type Estimator struct {
	cb        *Codebook
	dec       *Decoder
	ch        *Channel
	observers []Observer
}

// NewEstimator fails with ErrPrecondition if cb has not been built.
func NewEstimator(cb *Codebook, src Source, opts ...EstimatorOption) (*Estimator, error) {
	dec, err := NewDecoder(cb)
	if err != nil {
		return nil, err
	}
	e := &Estimator{cb: cb, dec: dec, ch: NewChannel(src)}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// Tally counts outcomes over a run of trials.
type Tally struct {
	P      float64
	Trials int
	Counts [NumOutcomes]int
}

func (t Tally) Count(o Outcome) int {
	if !o.Valid() {
		return 0
	}
	return t.Counts[o]
}

// Frequency returns Count(o)/Trials.
func (t Tally) Frequency(o Outcome) float64 {
	if t.Trials == 0 {
		return 0
	}
	return float64(t.Count(o)) / float64(t.Trials)
}

func (t Tally) Frequencies() Probabilities {
	return Probabilities{
		NoError:             t.Frequency(NoError),
		DetectedCorrected:   t.Frequency(DetectedCorrected),
		Undetected:          t.Frequency(Undetected),
		DetectedUncorrected: t.Frequency(DetectedUncorrected),
	}
}

// Classify decides the outcome of receiving received when sent was transmitted.
func (e *Estimator) Classify(sent, received Word) Outcome {
	o, _ := e.classify(sent, received)
	return o
}

func (e *Estimator) classify(sent, received Word) (Outcome, Word) {
	decoded := e.dec.Decode(received)
	switch {
	case received == sent:
		return NoError, decoded
	case Distance(sent, received) == 1:
		return DetectedCorrected, decoded
	case e.cb.Contains(received):
		return Undetected, decoded
	case decoded != sent:
		return DetectedUncorrected, decoded
	}
	// unreachable for a perfect code: every word is within distance 1 of exactly one codeword
	return DetectedCorrected, decoded
}

// Run sends trials codewords through the channel at flip probability p and
// counts the outcomes. trials == 0 means DefaultTrials.
func (e *Estimator) Run(p float64, trials int) (Tally, error) {
	if trials == 0 {
		trials = DefaultTrials
	}
	if trials < 0 {
		return Tally{}, errors.Wrapf(ErrInvalidInput, "trial count %d", trials)
	}
	if err := checkProb(p); err != nil {
		return Tally{}, err
	}
	t := Tally{P: p, Trials: trials}
	idx := 0
	for seq := 0; seq < trials; seq++ {
		sent := e.cb.words[idx]
		received, err := e.ch.Transmit(p, sent)
		if err != nil {
			return Tally{}, err
		}
		outcome, decoded := e.classify(sent, received)
		t.Counts[outcome]++
		for _, o := range e.observers {
			o.ObserveTrial(Trial{
				P:        p,
				Seq:      seq,
				Index:    idx,
				Sent:     sent,
				Received: received,
				Decoded:  decoded,
				Outcome:  outcome,
			})
		}
		idx = (idx + 1) % NumCodewords
	}
	return t, nil
}

func (e *Estimator) estimate(p float64, trials int, o Outcome) (float64, error) {
	t, err := e.Run(p, trials)
	if err != nil {
		return 0, err
	}
	return t.Frequency(o), nil
}

// EstimateUndetected returns the fraction of trials whose error pattern
// turned the sent codeword into another codeword.
func (e *Estimator) EstimateUndetected(p float64, trials int) (float64, error) {
	return e.estimate(p, trials, Undetected)
}

// EstimateDetectedCorrected returns the fraction of trials with exactly one flipped bit.
func (e *Estimator) EstimateDetectedCorrected(p float64, trials int) (float64, error) {
	return e.estimate(p, trials, DetectedCorrected)
}

// EstimateDetectedUncorrected returns the fraction of trials that decoded
// to the wrong codeword from a non-codeword.
func (e *Estimator) EstimateDetectedUncorrected(p float64, trials int) (float64, error) {
	return e.estimate(p, trials, DetectedUncorrected)
}

func (e *Estimator) EstimateNoError(p float64, trials int) (float64, error) {
	return e.estimate(p, trials, NoError)
}

// EstimateTotalError returns the fraction of trials that ended on the wrong
// codeword, detected or not, from a single run.
func (e *Estimator) EstimateTotalError(p float64, trials int) (float64, error) {
	t, err := e.Run(p, trials)
	if err != nil {
		return 0, err
	}
	return t.Frequency(Undetected) + t.Frequency(DetectedUncorrected), nil
}
