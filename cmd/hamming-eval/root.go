package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"text/tabwriter"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/observe-l/hamming74/hamming"
	"github.com/observe-l/hamming74/internal/config"
	"github.com/observe-l/hamming74/internal/metrics"
	"github.com/observe-l/hamming74/internal/report"
	"github.com/observe-l/hamming74/internal/tracewire"
	"github.com/observe-l/hamming74/sweep"
)

type options struct {
	probs       string
	trials      int
	seed        int64
	workers     int
	confidence  float64
	out         string
	xlsx        bool
	metricsFile string
	trace       string
	quiet       bool
}

func newRootCmd(cfg *config.Config) *cobra.Command {
	opts := &options{}
	root := &cobra.Command{
		Use:           "hamming-eval",
		Short:         "Hamming (7,4) over a binary symmetric channel: analytical vs. empirical",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			log.SetOutput(cmd.ErrOrStderr())
			if opts.quiet {
				log.SetOutput(io.Discard)
			}
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&opts.probs, "probs", joinProbs(cfg.Probs), "comma-separated flip probabilities")
	pf.IntVar(&opts.trials, "trials", cfg.Trials, "transmissions per probability")
	pf.Int64Var(&opts.seed, "seed", cfg.Seed, "random seed; point i uses seed+i")
	pf.IntVar(&opts.workers, "workers", cfg.Workers, "probabilities evaluated concurrently (0 = all)")
	pf.Float64Var(&opts.confidence, "confidence", cfg.Confidence, "confidence level of the intervals")
	pf.StringVar(&opts.out, "out", cfg.Out, "report base path, e.g. docs/reports/hamming.md (empty = stdout only)")
	pf.BoolVar(&opts.xlsx, "xlsx", false, "also write an .xlsx workbook next to the report")
	pf.StringVar(&opts.metricsFile, "metrics-file", "", "write Prometheus counters to this textfile")
	pf.StringVar(&opts.trace, "trace", "", "write a binary per-trial trace to this file")
	pf.BoolVarP(&opts.quiet, "quiet", "q", false, "suppress progress logging")

	root.AddCommand(
		newSeriesCmd(opts, "undetected", "Undetected error probability (received word is another codeword)",
			func(r *sweep.Result) []sweep.Series { return []sweep.Series{r.Series(hamming.Undetected)} }),
		newSeriesCmd(opts, "corrected", "Detected-and-corrected probability (exactly one bit flipped)",
			func(r *sweep.Result) []sweep.Series { return []sweep.Series{r.Series(hamming.DetectedCorrected)} }),
		newSeriesCmd(opts, "uncorrected", "Detected-but-miscorrected probability",
			func(r *sweep.Result) []sweep.Series { return []sweep.Series{r.Series(hamming.DetectedUncorrected)} }),
		newSeriesCmd(opts, "errors", "Total decoding error probability (undetected + miscorrected)",
			func(r *sweep.Result) []sweep.Series { return []sweep.Series{r.TotalError()} }),
		newSeriesCmd(opts, "all", "Every outcome plus the total error",
			func(r *sweep.Result) []sweep.Series { return r.AllSeries() }),
		newTableCmd(),
		newDecodeCmd(),
	)
	return root
}

func newSeriesCmd(opts *options, use, short string, pick func(*sweep.Result) []sweep.Series) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := runSweep(cmd, opts)
			if err != nil {
				return err
			}
			for _, s := range pick(res) {
				printSeries(cmd.OutOrStdout(), s)
			}
			if opts.out == "" {
				return nil
			}
			paths, err := report.Write(opts.out, res, opts.xlsx)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "report: %s, %s\n", paths.JSON, paths.Markdown)
			if paths.XLSX != "" {
				fmt.Fprintf(cmd.OutOrStdout(), "workbook: %s\n", paths.XLSX)
			}
			return nil
		},
	}
}

// runSweep builds the sweep config from the flags and attaches the metrics
// and trace observers when requested.
func runSweep(cmd *cobra.Command, opts *options) (*sweep.Result, error) {
	probs, err := config.ParseProbs(opts.probs)
	if err != nil {
		return nil, err
	}
	cfg := sweep.Config{
		Probs:      probs,
		Trials:     opts.trials,
		Seed:       opts.seed,
		Workers:    opts.workers,
		Confidence: opts.confidence,
	}

	var reg *prometheus.Registry
	if opts.metricsFile != "" {
		reg = prometheus.NewRegistry()
		rec, err := metrics.NewRecorder(reg)
		if err != nil {
			return nil, err
		}
		cfg.Observers = append(cfg.Observers, rec)
	}

	var tw *tracewire.Writer
	if opts.trace != "" {
		f, err := os.Create(opts.trace)
		if err != nil {
			return nil, errors.Wrap(err, "create trace")
		}
		defer f.Close()
		tw = tracewire.NewWriter(f)
		cfg.Observers = append(cfg.Observers, tw)
	}

	res, err := sweep.Run(cmd.Context(), hamming.NewCodebook(), cfg)
	if err != nil {
		return nil, err
	}
	log.Printf("[hamming-eval] run %s finished in %s", res.RunID, res.Elapsed)

	if tw != nil {
		if err := tw.Flush(); err != nil {
			return nil, errors.Wrap(err, "write trace")
		}
		log.Printf("[hamming-eval] wrote %d trace records to %s", tw.Count(), opts.trace)
	}
	if reg != nil {
		if err := metrics.WriteTextfile(opts.metricsFile, reg); err != nil {
			return nil, errors.Wrap(err, "write metrics")
		}
	}
	return res, nil
}

func printSeries(w io.Writer, s sweep.Series) {
	fmt.Fprintf(w, "%s (%d trials per point)\n", s.Name, s.Trials)
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "p\tanalytical\tempirical\tlo\thi\twithin\t")
	for i, p := range s.Probs {
		within := "no"
		if s.Within(i) {
			within = "yes"
		}
		fmt.Fprintf(tw, "%.3f\t%.6f\t%.6f\t%.4f\t%.4f\t%s\t\n",
			p, s.Analytic[i], s.Empirical[i], s.Intervals[i].Lo, s.Intervals[i].Hi, within)
	}
	tw.Flush()
	fmt.Fprintln(w)
}

func joinProbs(ps []float64) string {
	s := ""
	for i, p := range ps {
		if i > 0 {
			s += ","
		}
		s += fmt.Sprintf("%g", p)
	}
	return s
}
