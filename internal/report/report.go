package report

import (
	"bytes"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/francoispqt/gojay"
	"github.com/pkg/errors"

	"github.com/observe-l/hamming74/sweep"
)

// NewDocument flattens a sweep into report records, one per series and p.
func NewDocument(res *sweep.Result) (*Document, error) {
	sum, err := res.Summary()
	if err != nil {
		return nil, errors.Wrap(err, "summarize sweep")
	}
	d := &Document{
		RunID:      res.RunID,
		Generated:  res.Started,
		Trials:     res.Trials,
		Seed:       res.Seed,
		Confidence: res.Confidence,
	}
	for _, s := range res.AllSeries() {
		for i, p := range s.Probs {
			d.Records = append(d.Records, Record{
				Series:    s.Name,
				P:         p,
				Analytic:  s.Analytic[i],
				Empirical: s.Empirical[i],
				Count:     s.Counts[i],
				Trials:    s.Trials,
				Lo:        s.Intervals[i].Lo,
				Hi:        s.Intervals[i].Hi,
				Within:    s.Within(i),
			})
		}
	}
	for _, r := range sum {
		d.Summary = append(d.Summary, Residual(r))
	}
	return d, nil
}

func WriteJSON(w io.Writer, d *Document) error {
	enc := gojay.NewEncoder(w)
	defer enc.Release()
	return enc.EncodeObject(d)
}

// seriesNames returns the series in order of first appearance.
func (d *Document) seriesNames() []string {
	var names []string
	seen := map[string]bool{}
	for _, r := range d.Records {
		if !seen[r.Series] {
			seen[r.Series] = true
			names = append(names, r.Series)
		}
	}
	return names
}

func (d *Document) recordsOf(series string) []Record {
	var out []Record
	for _, r := range d.Records {
		if r.Series == series {
			out = append(out, r)
		}
	}
	return out
}

// WriteMarkdown renders one analytical-vs-empirical table per series plus
// the residual summary.
func WriteMarkdown(w io.Writer, d *Document) error {
	var b bytes.Buffer
	fmt.Fprintf(&b, "# Hamming (7,4) over BSC: Analytical vs. Empirical\n\n")
	fmt.Fprintf(&b, "Run: `%s`  \nGenerated: %s  \nTrials per point: %d, seed %d\n\n",
		d.RunID, d.Generated.Format(time.RFC3339), d.Trials, d.Seed)

	level := fmt.Sprintf("%.0f%% CI", d.Confidence*100)
	for _, name := range d.seriesNames() {
		recs := d.recordsOf(name)
		fmt.Fprintf(&b, "## %s\n\n", name)
		headers := make([]string, len(recs))
		for i, r := range recs {
			headers[i] = fmt.Sprintf("p=%.3f", r.P)
		}
		fmt.Fprintf(&b, "| | %s |\n", strings.Join(headers, " | "))
		div := make([]string, 0, 1+len(recs))
		div = append(div, "---")
		for range recs {
			div = append(div, "---:")
		}
		fmt.Fprintf(&b, "|%s|\n", strings.Join(div, "|"))
		row := func(label string, cell func(Record) string) {
			fmt.Fprintf(&b, "| %s ", label)
			for _, r := range recs {
				fmt.Fprintf(&b, "| %s ", cell(r))
			}
			fmt.Fprintf(&b, "|\n")
		}
		row("Analytical", func(r Record) string { return fmt.Sprintf("%.6f", r.Analytic) })
		row("Empirical", func(r Record) string { return fmt.Sprintf("%.6f", r.Empirical) })
		row(level, func(r Record) string { return fmt.Sprintf("[%.4f, %.4f]", r.Lo, r.Hi) })
		row("Within", func(r Record) string {
			if r.Within {
				return "yes"
			}
			return "no"
		})
		fmt.Fprintf(&b, "\n")
	}

	fmt.Fprintf(&b, "## Residuals (empirical - analytical)\n\n")
	fmt.Fprintf(&b, "| Series | Mean | StdDev | Max abs | RMSE | Within CI |\n")
	fmt.Fprintf(&b, "|---|---:|---:|---:|---:|---:|\n")
	for _, r := range d.Summary {
		fmt.Fprintf(&b, "| %s | %.6f | %.6f | %.6f | %.6f | %d/%d |\n",
			r.Name, r.Mean, r.StdDev, r.MaxAbs, r.RMSE, r.Covered, r.Points)
	}
	fmt.Fprintf(&b, "\n---\n\nNotes:\n\n- Channel: i.i.d. bit flips with probability p.\n- Messages cycle through all 16 codewords; only the channel is random.\n- Intervals are Wilson score intervals.\n")

	_, err := w.Write(b.Bytes())
	return err
}

// Paths lists the files written by Write.
type Paths struct {
	JSON     string
	Markdown string
	XLSX     string
}

// Write stores the JSON and Markdown reports (and the workbook if xlsx is
// set) next to base, suffixed with the run's timestamp.
func Write(base string, res *sweep.Result, xlsx bool) (Paths, error) {
	d, err := NewDocument(res)
	if err != nil {
		return Paths{}, err
	}
	if err := os.MkdirAll(filepath.Dir(base), 0o755); err != nil {
		return Paths{}, err
	}
	stem := strings.TrimSuffix(base, filepath.Ext(base)) + "_" + res.Started.Format("20060102_150405")
	paths := Paths{JSON: stem + ".json", Markdown: stem + ".md"}

	if err := writeFile(paths.JSON, func(w io.Writer) error { return WriteJSON(w, d) }); err != nil {
		return Paths{}, errors.Wrap(err, "write json")
	}
	if err := writeFile(paths.Markdown, func(w io.Writer) error { return WriteMarkdown(w, d) }); err != nil {
		return Paths{}, errors.Wrap(err, "write md")
	}
	if xlsx {
		paths.XLSX = stem + ".xlsx"
		if err := WriteXLSX(paths.XLSX, d); err != nil {
			return Paths{}, errors.Wrap(err, "write xlsx")
		}
	}
	log.Printf("[report] wrote %s", stem)
	return paths, nil
}

func writeFile(path string, fn func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := fn(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
