package sweep

import (
	"context"
	"log"
	"math"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/observe-l/hamming74/hamming"
)

// DefaultProbs is the flip-probability grid 0.1, 0.2, ..., 0.5.
var DefaultProbs = []float64{0.1, 0.2, 0.3, 0.4, 0.5}

// Config selects the p grid and how each point is estimated.
type Config struct {
	Probs      []float64
	Trials     int
	Seed       int64
	Workers    int     // concurrent points; 0 runs them all at once
	Confidence float64 // level of the Wilson intervals, in (0,1)
	Observers  []hamming.Observer
}

func DefaultConfig() Config {
	return Config{
		Probs:      append([]float64(nil), DefaultProbs...),
		Trials:     hamming.DefaultTrials,
		Seed:       42,
		Confidence: 0.95,
	}
}

func (c Config) validate() error {
	if len(c.Probs) == 0 {
		return errors.Wrap(hamming.ErrInvalidInput, "empty probability list")
	}
	for _, p := range c.Probs {
		if math.IsNaN(p) || p < 0 || p > 1 {
			return errors.Wrapf(hamming.ErrInvalidInput, "flip probability %v outside [0,1]", p)
		}
	}
	if c.Trials < 0 {
		return errors.Wrapf(hamming.ErrInvalidInput, "trial count %d", c.Trials)
	}
	if c.Workers < 0 {
		return errors.Wrapf(hamming.ErrInvalidInput, "worker count %d", c.Workers)
	}
	if !(c.Confidence > 0 && c.Confidence < 1) {
		return errors.Wrapf(hamming.ErrInvalidInput, "confidence %v outside (0,1)", c.Confidence)
	}
	return nil
}

// Point is the comparison at one flip probability.
type Point struct {
	P         float64
	Seed      int64
	Analytic  hamming.Probabilities
	Empirical hamming.Probabilities
	Tally     hamming.Tally
}

// Result is a finished sweep. Points follow the order of Config.Probs.
type Result struct {
	RunID      string
	Started    time.Time
	Elapsed    time.Duration
	Trials     int
	Seed       int64
	Confidence float64
	Points     []Point
}

// Run evaluates the closed forms and a Monte-Carlo tally at every p in
// cfg.Probs. Point i draws from its own generator seeded cfg.Seed+i, so the
// result does not depend on cfg.Workers.
func Run(ctx context.Context, cb *hamming.Codebook, cfg Config) (*Result, error) {
	if err := cb.Ready(); err != nil {
		return nil, err
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	trials := cfg.Trials
	if trials == 0 {
		trials = hamming.DefaultTrials
	}
	opts := make([]hamming.EstimatorOption, 0, len(cfg.Observers))
	for _, o := range cfg.Observers {
		opts = append(opts, hamming.WithObserver(o))
	}

	res := &Result{
		RunID:      uuid.NewString(),
		Started:    time.Now(),
		Trials:     trials,
		Seed:       cfg.Seed,
		Confidence: cfg.Confidence,
		Points:     make([]Point, len(cfg.Probs)),
	}
	log.Printf("[sweep] run %s: %d points, %d trials each, seed %d", res.RunID, len(cfg.Probs), trials, cfg.Seed)

	g, ctx := errgroup.WithContext(ctx)
	if cfg.Workers > 0 {
		g.SetLimit(cfg.Workers)
	}
	for i, p := range cfg.Probs {
		i, p := i, p
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			seed := cfg.Seed + int64(i)
			est, err := hamming.NewEstimator(cb, rand.New(rand.NewSource(seed)), opts...)
			if err != nil {
				return err
			}
			start := time.Now()
			tally, err := est.Run(p, trials)
			if err != nil {
				return errors.Wrapf(err, "p=%v", p)
			}
			analytic, err := hamming.Analytic(p)
			if err != nil {
				return errors.Wrapf(err, "p=%v", p)
			}
			res.Points[i] = Point{
				P:         p,
				Seed:      seed,
				Analytic:  analytic,
				Empirical: tally.Frequencies(),
				Tally:     tally,
			}
			log.Printf("[sweep] p=%.4f done in %s", p, time.Since(start).Round(time.Millisecond))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	res.Elapsed = time.Since(res.Started)
	return res, nil
}
