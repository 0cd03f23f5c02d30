package metrics

import (
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/observe-l/hamming74/hamming"
)

func TestRecorderCountsOutcomes(t *testing.T) {
	reg := prometheus.NewRegistry()
	rec, err := NewRecorder(reg)
	require.NoError(t, err)

	est, err := hamming.NewEstimator(hamming.NewCodebook(), rand.New(rand.NewSource(1)), hamming.WithObserver(rec))
	require.NoError(t, err)
	tally, err := est.Run(0.2, 800)
	require.NoError(t, err)

	total := 0.0
	for _, o := range hamming.Outcomes() {
		got := testutil.ToFloat64(rec.Trials(o))
		assert.Equal(t, float64(tally.Count(o)), got, o.String())
		total += got
	}
	assert.Equal(t, 800.0, total)
	assert.Equal(t, 1, testutil.CollectAndCount(rec.bitErrors))
}

func TestRecorderDoubleRegister(t *testing.T) {
	reg := prometheus.NewRegistry()
	_, err := NewRecorder(reg)
	require.NoError(t, err)
	_, err = NewRecorder(reg)
	assert.Error(t, err)
}

func TestWriteTextfile(t *testing.T) {
	reg := prometheus.NewRegistry()
	rec, err := NewRecorder(reg)
	require.NoError(t, err)
	cb := hamming.NewCodebook()
	sent, _ := cb.Codeword(3)
	rec.ObserveTrial(hamming.Trial{P: 0.1, Sent: sent, Received: sent.Flip(0), Decoded: sent, Outcome: hamming.DetectedCorrected})

	path := filepath.Join(t.TempDir(), "hamming.prom")
	require.NoError(t, WriteTextfile(path, reg))
	b, err := os.ReadFile(path)
	require.NoError(t, err)
	text := string(b)
	assert.True(t, strings.Contains(text, `hamming_trials_total{outcome="detected_corrected"} 1`), text)
	assert.True(t, strings.Contains(text, `hamming_bit_errors_count{p="0.1"} 1`), text)
}
