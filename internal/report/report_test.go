package report

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/observe-l/hamming74/hamming"
	"github.com/observe-l/hamming74/sweep"
)

func fixture(t *testing.T) *sweep.Result {
	t.Helper()
	res := &sweep.Result{
		RunID:      "run-1",
		Started:    time.Date(2025, 3, 4, 5, 6, 7, 0, time.UTC),
		Trials:     100,
		Seed:       7,
		Confidence: 0.95,
	}
	for _, p := range []float64{0.1, 0.2} {
		a, err := hamming.Analytic(p)
		require.NoError(t, err)
		tally := hamming.Tally{P: p, Trials: 100}
		for _, o := range hamming.Outcomes() {
			tally.Counts[o] = int(a.Get(o)*100 + 0.5)
		}
		res.Points = append(res.Points, sweep.Point{P: p, Analytic: a, Empirical: tally.Frequencies(), Tally: tally})
	}
	return res
}

func TestNewDocument(t *testing.T) {
	d, err := NewDocument(fixture(t))
	require.NoError(t, err)
	require.Len(t, d.Records, 2*(hamming.NumOutcomes+1))
	require.Len(t, d.Summary, hamming.NumOutcomes+1)

	first := d.Records[0]
	assert.Equal(t, "no_error", first.Series)
	assert.Equal(t, 0.1, first.P)
	assert.Equal(t, 100, first.Trials)
	assert.LessOrEqual(t, first.Lo, first.Empirical)
	assert.GreaterOrEqual(t, first.Hi, first.Empirical)

	last := d.Records[len(d.Records)-1]
	assert.Equal(t, sweep.TotalErrorName, last.Series)
	assert.Equal(t, 0.2, last.P)
	assert.Equal(t, sweep.TotalErrorName, d.Summary[len(d.Summary)-1].Name)
}

func TestJSONRoundtrip(t *testing.T) {
	d, err := NewDocument(fixture(t))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, d))
	assert.Contains(t, buf.String(), `"run_id":"run-1"`)
	assert.Contains(t, buf.String(), `"series":"undetected"`)

	got, err := DecodeJSON(buf.Bytes())
	require.NoError(t, err)
	assert.Equal(t, d.RunID, got.RunID)
	assert.True(t, d.Generated.Equal(got.Generated))
	assert.Equal(t, d.Trials, got.Trials)
	assert.Equal(t, d.Seed, got.Seed)
	assert.InDelta(t, d.Confidence, got.Confidence, 1e-12)

	require.Len(t, got.Records, len(d.Records))
	for i, want := range d.Records {
		r := got.Records[i]
		assert.Equal(t, want.Series, r.Series)
		assert.Equal(t, want.Count, r.Count)
		assert.Equal(t, want.Trials, r.Trials)
		assert.Equal(t, want.Within, r.Within)
		for _, pair := range [][2]float64{{want.P, r.P}, {want.Analytic, r.Analytic}, {want.Empirical, r.Empirical}, {want.Lo, r.Lo}, {want.Hi, r.Hi}} {
			assert.InDelta(t, pair[0], pair[1], 1e-12)
		}
	}
	require.Len(t, got.Summary, len(d.Summary))
	for i, want := range d.Summary {
		assert.Equal(t, want.Name, got.Summary[i].Name)
		assert.Equal(t, want.Covered, got.Summary[i].Covered)
		assert.InDelta(t, want.RMSE, got.Summary[i].RMSE, 1e-12)
	}
}

func TestDecodeJSONRejectsGarbage(t *testing.T) {
	_, err := DecodeJSON([]byte(`{"generated":"yesterday"}`))
	assert.Error(t, err)
}

func TestWriteMarkdown(t *testing.T) {
	d, err := NewDocument(fixture(t))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteMarkdown(&buf, d))
	md := buf.String()
	assert.True(t, strings.HasPrefix(md, "# Hamming (7,4) over BSC"))
	for _, want := range []string{"## undetected", "## total_error", "| | p=0.100 | p=0.200 |", "95% CI", "## Residuals"} {
		assert.Contains(t, md, want)
	}
}

func TestWrite(t *testing.T) {
	base := filepath.Join(t.TempDir(), "out", "hamming_report.md")
	paths, err := Write(base, fixture(t), true)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(filepath.Dir(base), "hamming_report_20250304_050607.json"), paths.JSON)
	assert.True(t, strings.HasSuffix(paths.Markdown, "_20250304_050607.md"))
	for _, p := range []string{paths.JSON, paths.Markdown, paths.XLSX} {
		_, err := os.Stat(p)
		require.NoError(t, err, p)
	}

	b, err := os.ReadFile(paths.JSON)
	require.NoError(t, err)
	d, err := DecodeJSON(b)
	require.NoError(t, err)
	assert.Equal(t, "run-1", d.RunID)

	f, err := excelize.OpenFile(paths.XLSX)
	require.NoError(t, err)
	defer f.Close()
	assert.Equal(t, []string{"sweep", "summary"}, f.GetSheetList())
	v, err := f.GetCellValue("sweep", "A2")
	require.NoError(t, err)
	assert.Equal(t, "no_error", v)
	v, err = f.GetCellValue("summary", "A6")
	require.NoError(t, err)
	assert.Equal(t, sweep.TotalErrorName, v)
}

func TestWriteWithoutWorkbook(t *testing.T) {
	paths, err := Write(filepath.Join(t.TempDir(), "r.md"), fixture(t), false)
	require.NoError(t, err)
	assert.Empty(t, paths.XLSX)
}
