package sweep

import (
	"context"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/observe-l/hamming74/hamming"
)

func TestRunMatchesClosedForms(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Workers = 2
	res, err := Run(context.Background(), hamming.NewCodebook(), cfg)
	require.NoError(t, err)
	require.Len(t, res.Points, len(DefaultProbs))
	assert.NotEmpty(t, res.RunID)
	assert.Equal(t, hamming.DefaultTrials, res.Trials)

	for i, pt := range res.Points {
		assert.Equal(t, DefaultProbs[i], pt.P)
		assert.Equal(t, cfg.Seed+int64(i), pt.Seed)
		assert.Equal(t, hamming.DefaultTrials, pt.Tally.Trials)
		for _, o := range hamming.Outcomes() {
			assert.InDelta(t, pt.Analytic.Get(o), pt.Empirical.Get(o), 0.025, "%s at p=%v", o, pt.P)
		}
	}
}

func TestRunIsReproducibleAcrossWorkerCounts(t *testing.T) {
	cb := hamming.NewCodebook()
	cfg := DefaultConfig()
	cfg.Trials = 2000

	cfg.Workers = 1
	serial, err := Run(context.Background(), cb, cfg)
	require.NoError(t, err)
	cfg.Workers = 0
	parallel, err := Run(context.Background(), cb, cfg)
	require.NoError(t, err)

	require.Len(t, parallel.Points, len(serial.Points))
	for i := range serial.Points {
		assert.Equal(t, serial.Points[i].Tally, parallel.Points[i].Tally)
	}
}

func TestRunNotifiesObservers(t *testing.T) {
	var seen atomic.Int64
	cfg := DefaultConfig()
	cfg.Trials = 160
	cfg.Observers = []hamming.Observer{hamming.ObserverFunc(func(hamming.Trial) { seen.Add(1) })}
	_, err := Run(context.Background(), hamming.NewCodebook(), cfg)
	require.NoError(t, err)
	assert.Equal(t, int64(160*len(cfg.Probs)), seen.Load())
}

func TestRunValidation(t *testing.T) {
	cb := hamming.NewCodebook()
	for name, mutate := range map[string]func(*Config){
		"empty probs":     func(c *Config) { c.Probs = nil },
		"p above one":     func(c *Config) { c.Probs = []float64{0.1, 1.2} },
		"negative trials": func(c *Config) { c.Trials = -5 },
		"negative worker": func(c *Config) { c.Workers = -1 },
		"confidence 1":    func(c *Config) { c.Confidence = 1 },
	} {
		t.Run(name, func(t *testing.T) {
			cfg := DefaultConfig()
			mutate(&cfg)
			_, err := Run(context.Background(), cb, cfg)
			assert.ErrorIs(t, err, hamming.ErrInvalidInput)
		})
	}

	_, err := Run(context.Background(), &hamming.Codebook{}, DefaultConfig())
	assert.ErrorIs(t, err, hamming.ErrPrecondition)
}

func TestRunCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Run(ctx, hamming.NewCodebook(), DefaultConfig())
	assert.ErrorIs(t, err, context.Canceled)
}
