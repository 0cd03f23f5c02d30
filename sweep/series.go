package sweep

import (
	"math"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/observe-l/hamming74/hamming"
)

// TotalErrorName names the series of Undetected + DetectedUncorrected.
const TotalErrorName = "total_error"

// Interval is a two-sided confidence interval for a frequency.
type Interval struct {
	Lo, Hi float64
}

// Contains reports whether x lies in the interval, allowing for rounding at the ends.
func (iv Interval) Contains(x float64) bool {
	const slack = 1e-12
	return x >= iv.Lo-slack && x <= iv.Hi+slack
}

// Wilson returns the Wilson score interval for successes out of n trials.
func Wilson(successes, n int, confidence float64) Interval {
	if n <= 0 {
		return Interval{0, 1}
	}
	z := distuv.UnitNormal.Quantile(1 - (1-confidence)/2)
	nf := float64(n)
	phat := float64(successes) / nf
	z2 := z * z
	denom := 1 + z2/nf
	center := (phat + z2/(2*nf)) / denom
	half := z * math.Sqrt(phat*(1-phat)/nf+z2/(4*nf*nf)) / denom
	return Interval{Lo: math.Max(0, center-half), Hi: math.Min(1, center+half)}
}

// Series is one compared quantity over the p grid: the two curves a plot
// needs, plus the raw counts behind the empirical curve.
type Series struct {
	Name      string
	Probs     []float64
	Analytic  []float64
	Empirical []float64
	Counts    []int
	Trials    int
	Intervals []Interval
}

// Within reports whether the analytical value at point i lies inside the
// empirical confidence interval.
func (s Series) Within(i int) bool { return s.Intervals[i].Contains(s.Analytic[i]) }

// Covered counts the points for which Within holds.
func (s Series) Covered() int {
	n := 0
	for i := range s.Probs {
		if s.Within(i) {
			n++
		}
	}
	return n
}

// Series returns the comparison for outcome o.
func (r *Result) Series(o hamming.Outcome) Series {
	return r.series(o.String(), func(pt Point) (float64, int) {
		return pt.Analytic.Get(o), pt.Tally.Count(o)
	})
}

// TotalError returns the comparison for any decoding failure.
func (r *Result) TotalError() Series {
	return r.series(TotalErrorName, func(pt Point) (float64, int) {
		return pt.Analytic.TotalError(), pt.Tally.Count(hamming.Undetected) + pt.Tally.Count(hamming.DetectedUncorrected)
	})
}

// AllSeries returns the four outcome series followed by the total error.
func (r *Result) AllSeries() []Series {
	out := make([]Series, 0, hamming.NumOutcomes+1)
	for _, o := range hamming.Outcomes() {
		out = append(out, r.Series(o))
	}
	return append(out, r.TotalError())
}

func (r *Result) series(name string, pick func(Point) (float64, int)) Series {
	s := Series{
		Name:      name,
		Trials:    r.Trials,
		Probs:     make([]float64, len(r.Points)),
		Analytic:  make([]float64, len(r.Points)),
		Empirical: make([]float64, len(r.Points)),
		Counts:    make([]int, len(r.Points)),
		Intervals: make([]Interval, len(r.Points)),
	}
	for i, pt := range r.Points {
		a, c := pick(pt)
		s.Probs[i] = pt.P
		s.Analytic[i] = a
		s.Counts[i] = c
		s.Empirical[i] = float64(c) / float64(pt.Tally.Trials)
		s.Intervals[i] = Wilson(c, pt.Tally.Trials, r.Confidence)
	}
	return s
}

// Residuals summarizes empirical minus analytical over a series.
type Residuals struct {
	Name    string
	Mean    float64
	StdDev  float64
	MaxAbs  float64
	RMSE    float64
	Covered int
	Points  int
}

// Summarize computes the residual statistics of s.
func Summarize(s Series) (Residuals, error) {
	diffs := make([]float64, len(s.Probs))
	abs := make([]float64, len(s.Probs))
	sq := make([]float64, len(s.Probs))
	for i := range s.Probs {
		d := s.Empirical[i] - s.Analytic[i]
		diffs[i], abs[i], sq[i] = d, math.Abs(d), d*d
	}
	mean, err := stats.Mean(diffs)
	if err != nil {
		return Residuals{}, err
	}
	sd, err := stats.StandardDeviation(diffs)
	if err != nil {
		return Residuals{}, err
	}
	maxAbs, err := stats.Max(abs)
	if err != nil {
		return Residuals{}, err
	}
	mse, err := stats.Mean(sq)
	if err != nil {
		return Residuals{}, err
	}
	return Residuals{
		Name:    s.Name,
		Mean:    mean,
		StdDev:  sd,
		MaxAbs:  maxAbs,
		RMSE:    math.Sqrt(mse),
		Covered: s.Covered(),
		Points:  len(s.Probs),
	}, nil
}

// Summary summarizes every series of AllSeries.
func (r *Result) Summary() ([]Residuals, error) {
	all := r.AllSeries()
	out := make([]Residuals, 0, len(all))
	for _, s := range all {
		res, err := Summarize(s)
		if err != nil {
			return nil, err
		}
		out = append(out, res)
	}
	return out, nil
}
