package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/observe-l/hamming74/hamming"
)

const namespace = "hamming"

// Recorder exports per-trial counters. It implements hamming.Observer and is
// safe to share between estimators running on different goroutines.
type Recorder struct {
	trials    *prometheus.CounterVec
	bitErrors *prometheus.HistogramVec
}

// NewRecorder creates the collectors and registers them with reg.
func NewRecorder(reg prometheus.Registerer) (*Recorder, error) {
	r := &Recorder{
		trials: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "trials_total",
			Help:      "Simulated transmissions by outcome.",
		}, []string{"outcome"}),
		bitErrors: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "bit_errors",
			Help:      "Bits flipped by the channel per transmission.",
			Buckets:   prometheus.LinearBuckets(0, 1, hamming.N+1),
		}, []string{"p"}),
	}
	for _, c := range []prometheus.Collector{r.trials, r.bitErrors} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	// expose every outcome even when a run never hits it
	for _, o := range hamming.Outcomes() {
		r.trials.WithLabelValues(o.String())
	}
	return r, nil
}

func (r *Recorder) ObserveTrial(t hamming.Trial) {
	r.trials.WithLabelValues(t.Outcome.String()).Inc()
	r.bitErrors.WithLabelValues(formatP(t.P)).Observe(float64(hamming.Distance(t.Sent, t.Received)))
}

// Trials returns the counter of outcome o.
func (r *Recorder) Trials(o hamming.Outcome) prometheus.Counter {
	return r.trials.WithLabelValues(o.String())
}

// WriteTextfile dumps everything g gathers in the text exposition format,
// for node_exporter's textfile collector or a later diff.
func WriteTextfile(path string, g prometheus.Gatherer) error {
	return prometheus.WriteToTextfile(path, g)
}

func formatP(p float64) string { return strconv.FormatFloat(p, 'g', -1, 64) }
