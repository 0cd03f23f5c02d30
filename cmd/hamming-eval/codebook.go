package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/observe-l/hamming74/hamming"
)

func newTableCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "table",
		Short: "Print the codebook with weights and syndromes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cb := hamming.NewCodebook()
			w := cmd.OutOrStdout()
			tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "index\tmessage\tcodeword\tweight\tsyndrome")
			for i, cw := range cb.Words() {
				fmt.Fprintf(tw, "%d\t%s\t%s\t%d\t%s\n", i, cw.Message(), cw, hamming.Weight(cw), syndromeString(cw))
			}
			if err := tw.Flush(); err != nil {
				return err
			}

			dist, err := cb.WeightDistribution()
			if err != nil {
				return err
			}
			dmin, err := cb.MinimumDistance()
			if err != nil {
				return err
			}
			fmt.Fprintf(w, "\nweight distribution: %v\nminimum distance: %d\n", dist, dmin)
			return nil
		},
	}
}

func newDecodeCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "decode <word>",
		Short:   "Decode a 7-bit received word by minimum distance",
		Example: "  hamming-eval decode 1001000",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rx, err := hamming.ParseWord(args[0])
			if err != nil {
				return err
			}
			cb := hamming.NewCodebook()
			dec, err := hamming.NewDecoder(cb)
			if err != nil {
				return err
			}
			cw := dec.Decode(rx)
			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "received: %s\n", rx)
			fmt.Fprintf(w, "syndrome: %s\n", syndromeString(rx))
			fmt.Fprintf(w, "codeword: %s\n", cw)
			fmt.Fprintf(w, "message:  %s\n", cw.Message())
			fmt.Fprintf(w, "distance: %d\n", hamming.Distance(rx, cw))
			if cb.Contains(rx) {
				fmt.Fprintln(w, "received word is a codeword")
			}
			return nil
		},
	}
}

func syndromeString(w hamming.Word) string {
	s := hamming.Syndrome(w)
	return fmt.Sprintf("%d%d%d", s[0], s[1], s[2])
}
