package main

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/observe-l/hamming74/internal/config"
	"github.com/observe-l/hamming74/internal/tracewire"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd(config.Default())
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	cmd.SetArgs(append(args, "--quiet"))
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestTableCommand(t *testing.T) {
	out, err := execute(t, "table")
	require.NoError(t, err)
	assert.Contains(t, out, "1001100")
	assert.Contains(t, out, "1111111")
	assert.Contains(t, out, "weight distribution: [1 0 0 7 7 0 0 1]")
	assert.Contains(t, out, "minimum distance: 3")
}

func TestDecodeCommand(t *testing.T) {
	out, err := execute(t, "decode", "1001000")
	require.NoError(t, err)
	assert.Contains(t, out, "codeword: 1001100")
	assert.Contains(t, out, "message:  1001")
	assert.Contains(t, out, "distance: 1")
	assert.NotContains(t, out, "is a codeword")

	out, err = execute(t, "decode", "1011010")
	require.NoError(t, err)
	assert.Contains(t, out, "syndrome: 000")
	assert.Contains(t, out, "is a codeword")

	_, err = execute(t, "decode", "10x1000")
	assert.Error(t, err)
	_, err = execute(t, "decode")
	assert.Error(t, err)
}

func TestSeriesCommandWritesArtifacts(t *testing.T) {
	dir := t.TempDir()
	trace := filepath.Join(dir, "trace.bin")
	prom := filepath.Join(dir, "metrics.prom")
	out, err := execute(t, "undetected",
		"--probs", "0.1,0.2",
		"--trials", "1600",
		"--out", filepath.Join(dir, "reports", "hamming.md"),
		"--xlsx",
		"--trace", trace,
		"--metrics-file", prom,
	)
	require.NoError(t, err)
	assert.Contains(t, out, "undetected (1600 trials per point)")
	assert.Contains(t, out, "report: ")
	assert.Contains(t, out, "workbook: ")

	jsons, err := filepath.Glob(filepath.Join(dir, "reports", "hamming_*.json"))
	require.NoError(t, err)
	assert.Len(t, jsons, 1)

	fi, err := os.Stat(trace)
	require.NoError(t, err)
	assert.Equal(t, int64(2*1600*tracewire.RecordLen), fi.Size())

	b, err := os.ReadFile(prom)
	require.NoError(t, err)
	assert.Contains(t, string(b), `hamming_trials_total{outcome="undetected"}`)
}

func TestAllCommandPrintsEverySeries(t *testing.T) {
	out, err := execute(t, "all", "--probs", "0.3", "--trials", "320")
	require.NoError(t, err)
	for _, name := range []string{"no_error", "detected_corrected", "undetected", "detected_uncorrected", "total_error"} {
		assert.Contains(t, out, name+" (320 trials per point)")
	}
}

func TestSeriesCommandRejectsBadProbs(t *testing.T) {
	_, err := execute(t, "errors", "--probs", "0.1,1.5")
	assert.ErrorIs(t, err, config.ErrInvalidConfig)
}
