package balance

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// DefaultSMDThreshold is the conventional |SMD| bound for a balanced covariate.
const DefaultSMDThreshold = 0.1

// Field names used in Record.Undefined and in Report.Err messages.
const (
	FieldMeanTreatedMatched  = "mean_treated_matched"
	FieldStdTreatedMatched   = "std_treated_matched"
	FieldMeanControlMatched  = "mean_control_matched"
	FieldStdControlMatched   = "std_control_matched"
	FieldSMDBefore           = "smd_before"
	FieldSMDAfter            = "smd_after"
	FieldVarianceRatioBefore = "variance_ratio_before"
	FieldVarianceRatioAfter  = "variance_ratio_after"
	FieldKSBefore            = "ks_before"
	FieldKSAfter             = "ks_after"
)

// Record is the balance summary of one covariate.
type Record struct {
	Covariate           string
	MeanTreatedMatched  float64
	StdTreatedMatched   float64
	MeanControlMatched  float64
	StdControlMatched   float64
	SMDBefore           float64
	SMDAfter            float64
	VarianceRatioBefore float64
	VarianceRatioAfter  float64
	KSBefore            float64
	KSAfter             float64

	// Undefined lists the fields holding the Undefined sentinel.
	Undefined []string
}

func newRecord(s SMD, v VarianceRatio, k KS) Record {
	r := Record{
		Covariate:           s.Covariate,
		MeanTreatedMatched:  s.MeanTreatedMatched,
		StdTreatedMatched:   s.StdTreatedMatched,
		MeanControlMatched:  s.MeanControlMatched,
		StdControlMatched:   s.StdControlMatched,
		SMDBefore:           s.Before,
		SMDAfter:            s.After,
		VarianceRatioBefore: v.Before,
		VarianceRatioAfter:  v.After,
		KSBefore:            k.Before,
		KSAfter:             k.After,
	}
	for _, f := range []struct {
		name string
		v    float64
	}{
		{FieldMeanTreatedMatched, r.MeanTreatedMatched},
		{FieldStdTreatedMatched, r.StdTreatedMatched},
		{FieldMeanControlMatched, r.MeanControlMatched},
		{FieldStdControlMatched, r.StdControlMatched},
		{FieldSMDBefore, r.SMDBefore},
		{FieldSMDAfter, r.SMDAfter},
		{FieldVarianceRatioBefore, r.VarianceRatioBefore},
		{FieldVarianceRatioAfter, r.VarianceRatioAfter},
		{FieldKSBefore, r.KSBefore},
		{FieldKSAfter, r.KSAfter},
	} {
		if IsUndefined(f.v) {
			r.Undefined = append(r.Undefined, f.name)
		}
	}

	return r
}

func (r Record) clone() Record {
	r.Undefined = append([]string(nil), r.Undefined...)

	return r
}

// Report is the immutable balance summary, one Record per covariate in the
// order requested.
type Report struct {
	records []Record
}

// Len returns the number of records.
func (r *Report) Len() int { return len(r.records) }

// Records returns a copy of every record.
func (r *Report) Records() []Record {
	out := make([]Record, len(r.records))
	for i, rec := range r.records {
		out[i] = rec.clone()
	}

	return out
}

// Covariate returns the record of one covariate.
func (r *Report) Covariate(name string) (Record, bool) {
	for _, rec := range r.records {
		if rec.Covariate == name {
			return rec.clone(), true
		}
	}

	return Record{}, false
}

// Err joins one ErrUndefinedStatistic wrap per undefined field, or returns nil.
func (r *Report) Err() error {
	var errs []error
	for _, rec := range r.records {
		for _, f := range rec.Undefined {
			errs = append(errs, fmt.Errorf("%s.%s: %w", rec.Covariate, f, ErrUndefinedStatistic))
		}
	}

	return errors.Join(errs...)
}

// MaxAbsSMDAfter returns the largest defined |SMD after|, or Undefined when
// no covariate has one.
func (r *Report) MaxAbsSMDAfter() float64 {
	best := Undefined
	for _, rec := range r.records {
		if IsUndefined(rec.SMDAfter) {
			continue
		}
		if a := math.Abs(rec.SMDAfter); IsUndefined(best) || a > best {
			best = a
		}
	}

	return best
}

// Balanced reports whether every covariate has a defined SMD after matching
// with absolute value below threshold.
func (r *Report) Balanced(threshold float64) bool {
	for _, rec := range r.records {
		if IsUndefined(rec.SMDAfter) || math.Abs(rec.SMDAfter) >= threshold {
			return false
		}
	}

	return len(r.records) > 0
}

// String renders the report as an aligned text table; Undefined prints as "undef".
func (r *Report) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%-12s %10s %10s %10s %10s %10s %10s\n",
		"covariate", "smd_before", "smd_after", "vr_before", "vr_after", "ks_before", "ks_after")
	for _, rec := range r.records {
		fmt.Fprintf(&b, "%-12s %10s %10s %10s %10s %10s %10s\n", rec.Covariate,
			cell(rec.SMDBefore), cell(rec.SMDAfter),
			cell(rec.VarianceRatioBefore), cell(rec.VarianceRatioAfter),
			cell(rec.KSBefore), cell(rec.KSAfter))
	}

	return b.String()
}

func cell(v float64) string {
	if IsUndefined(v) {
		return "undef"
	}

	return fmt.Sprintf("%.4f", v)
}
