package report

import (
	"time"

	"github.com/francoispqt/gojay"

	"github.com/observe-l/hamming74/sweep"
)

// Record is one (series, p) comparison.
type Record struct {
	Series    string
	P         float64
	Analytic  float64
	Empirical float64
	Count     int
	Trials    int
	Lo        float64
	Hi        float64
	Within    bool
}

func (r *Record) MarshalJSONObject(enc *gojay.Encoder) {
	enc.StringKey("series", r.Series)
	enc.Float64Key("p", r.P)
	enc.Float64Key("analytic", r.Analytic)
	enc.Float64Key("empirical", r.Empirical)
	enc.IntKey("count", r.Count)
	enc.IntKey("trials", r.Trials)
	enc.Float64Key("ci_lo", r.Lo)
	enc.Float64Key("ci_hi", r.Hi)
	enc.BoolKey("within", r.Within)
}

func (r *Record) IsNil() bool { return r == nil }

func (r *Record) UnmarshalJSONObject(dec *gojay.Decoder, key string) error {
	switch key {
	case "series":
		return dec.String(&r.Series)
	case "p":
		return dec.Float64(&r.P)
	case "analytic":
		return dec.Float64(&r.Analytic)
	case "empirical":
		return dec.Float64(&r.Empirical)
	case "count":
		return dec.Int(&r.Count)
	case "trials":
		return dec.Int(&r.Trials)
	case "ci_lo":
		return dec.Float64(&r.Lo)
	case "ci_hi":
		return dec.Float64(&r.Hi)
	case "within":
		return dec.Bool(&r.Within)
	}
	return nil
}

func (r *Record) NKeys() int { return 9 }

type records []Record

func (rs records) MarshalJSONArray(enc *gojay.Encoder) {
	for i := range rs {
		enc.Object(&rs[i])
	}
}

func (rs records) IsNil() bool { return len(rs) == 0 }

func (rs *records) UnmarshalJSONArray(dec *gojay.Decoder) error {
	var r Record
	if err := dec.Object(&r); err != nil {
		return err
	}
	*rs = append(*rs, r)
	return nil
}

// Residual is the JSON form of sweep.Residuals.
type Residual sweep.Residuals

func (r *Residual) MarshalJSONObject(enc *gojay.Encoder) {
	enc.StringKey("series", r.Name)
	enc.Float64Key("mean", r.Mean)
	enc.Float64Key("stddev", r.StdDev)
	enc.Float64Key("max_abs", r.MaxAbs)
	enc.Float64Key("rmse", r.RMSE)
	enc.IntKey("covered", r.Covered)
	enc.IntKey("points", r.Points)
}

func (r *Residual) IsNil() bool { return r == nil }

func (r *Residual) UnmarshalJSONObject(dec *gojay.Decoder, key string) error {
	switch key {
	case "series":
		return dec.String(&r.Name)
	case "mean":
		return dec.Float64(&r.Mean)
	case "stddev":
		return dec.Float64(&r.StdDev)
	case "max_abs":
		return dec.Float64(&r.MaxAbs)
	case "rmse":
		return dec.Float64(&r.RMSE)
	case "covered":
		return dec.Int(&r.Covered)
	case "points":
		return dec.Int(&r.Points)
	}
	return nil
}

func (r *Residual) NKeys() int { return 7 }

type residuals []Residual

func (rs residuals) MarshalJSONArray(enc *gojay.Encoder) {
	for i := range rs {
		enc.Object(&rs[i])
	}
}

func (rs residuals) IsNil() bool { return len(rs) == 0 }

func (rs *residuals) UnmarshalJSONArray(dec *gojay.Decoder) error {
	var r Residual
	if err := dec.Object(&r); err != nil {
		return err
	}
	*rs = append(*rs, r)
	return nil
}

// Document is the JSON report of one sweep.
type Document struct {
	RunID      string
	Generated  time.Time
	Trials     int
	Seed       int64
	Confidence float64
	Records    []Record
	Summary    []Residual
}

func (d *Document) MarshalJSONObject(enc *gojay.Encoder) {
	enc.StringKey("run_id", d.RunID)
	enc.StringKey("generated", d.Generated.Format(time.RFC3339))
	enc.IntKey("trials", d.Trials)
	enc.Int64Key("seed", d.Seed)
	enc.Float64Key("confidence", d.Confidence)
	enc.ArrayKey("records", records(d.Records))
	enc.ArrayKey("summary", residuals(d.Summary))
}

func (d *Document) IsNil() bool { return d == nil }

func (d *Document) UnmarshalJSONObject(dec *gojay.Decoder, key string) error {
	switch key {
	case "run_id":
		return dec.String(&d.RunID)
	case "generated":
		var s string
		if err := dec.String(&s); err != nil {
			return err
		}
		t, err := time.Parse(time.RFC3339, s)
		if err != nil {
			return err
		}
		d.Generated = t
		return nil
	case "trials":
		return dec.Int(&d.Trials)
	case "seed":
		return dec.Int64(&d.Seed)
	case "confidence":
		return dec.Float64(&d.Confidence)
	case "records":
		rs := records(d.Records)
		if err := dec.Array(&rs); err != nil {
			return err
		}
		d.Records = rs
		return nil
	case "summary":
		rs := residuals(d.Summary)
		if err := dec.Array(&rs); err != nil {
			return err
		}
		d.Summary = rs
		return nil
	}
	return nil
}

func (d *Document) NKeys() int { return 7 }

// DecodeJSON parses a report written by WriteJSON.
func DecodeJSON(b []byte) (*Document, error) {
	d := &Document{}
	if err := gojay.UnmarshalJSONObject(b, d); err != nil {
		return nil, err
	}
	return d, nil
}
