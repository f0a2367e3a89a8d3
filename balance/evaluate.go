package balance

import (
	"fmt"

	"github.com/katalvlaran/causalmatch/covariate"
	"github.com/katalvlaran/causalmatch/matching"
)

// SMD is the standardized mean difference of one covariate together with
// the matched-group moments it is derived from.
type SMD struct {
	Covariate          string
	MeanTreatedMatched float64
	StdTreatedMatched  float64
	MeanControlMatched float64
	StdControlMatched  float64
	Before             float64
	After              float64
}

// VarianceRatio is var(treated)/var(control) for one covariate.
type VarianceRatio struct {
	Covariate string
	Before    float64
	After     float64
}

// KS is the two-sample Kolmogorov–Smirnov statistic for one covariate.
type KS struct {
	Covariate string
	Before    float64
	After     float64
}

// samples bundles the vectors every statistic reads for one covariate.
type samples struct {
	all, treated, control []float64 // full dataset
	mTreated, mControl    []float64 // matched, control averaged per pair
	flat                  []float64 // matched, every control value
}

func load(ds *covariate.Dataset, mg *MatchedGroups, name string) (samples, error) {
	var s samples
	var err error
	if s.all, err = ds.ColumnAll(name); err != nil {
		return s, err
	}
	if s.treated, err = ds.Column(covariate.Treated, name); err != nil {
		return s, err
	}
	if s.control, err = ds.Column(covariate.Control, name); err != nil {
		return s, err
	}
	if s.mTreated, err = mg.Treated(name); err != nil {
		return s, err
	}
	if s.mControl, err = mg.Control(name); err != nil {
		return s, err
	}
	if s.flat, err = mg.Flattened(name); err != nil {
		return s, err
	}

	return s, nil
}

func smdOf(name string, s samples) SMD {
	sd := std(s.all)

	return SMD{
		Covariate:          name,
		MeanTreatedMatched: mean(s.mTreated),
		StdTreatedMatched:  std(s.mTreated),
		MeanControlMatched: mean(s.mControl),
		StdControlMatched:  std(s.mControl),
		Before:             ratio(mean(s.treated)-mean(s.control), sd),
		After:              ratio(mean(s.mTreated)-mean(s.mControl), sd),
	}
}

func varianceRatioOf(name string, s samples) VarianceRatio {
	return VarianceRatio{
		Covariate: name,
		Before:    ratio(variance(s.treated), variance(s.control)),
		After:     ratio(variance(s.mTreated), variance(s.mControl)),
	}
}

func ksOf(name string, s samples) KS {
	return KS{Covariate: name, Before: ks(s.treated, s.control), After: ks(s.mTreated, s.flat)}
}

// each extracts the matched groups once and calls fn per covariate.
func each(op string, ds *covariate.Dataset, res *matching.Result, covariates []string, fn func(string, samples)) error {
	mg, err := ExtractMatchedGroups(ds, res, covariates)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	var s samples
	for _, name := range covariates {
		if s, err = load(ds, mg, name); err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
		fn(name, s)
	}

	return nil
}

// ComputeBalanceStats returns one SMD per covariate, in covariate order.
//
//	before = (mean(T) − mean(C)) / std(all)
//	after  = (mean(T matched) − mean(C matched, averaged)) / std(all)
//
// std(all) is the full, unmatched sample std over both groups, so before and
// after share one scale.
func ComputeBalanceStats(ds *covariate.Dataset, res *matching.Result, covariates []string) ([]SMD, error) {
	out := make([]SMD, 0, len(covariates))
	err := each("ComputeBalanceStats", ds, res, covariates, func(name string, s samples) {
		out = append(out, smdOf(name, s))
	})
	if err != nil {
		return nil, err
	}

	return out, nil
}

// ComputeVarianceRatios returns var(T)/var(C) per covariate on the full
// groups (before) and the matched groups (after).
func ComputeVarianceRatios(ds *covariate.Dataset, res *matching.Result, covariates []string) ([]VarianceRatio, error) {
	out := make([]VarianceRatio, 0, len(covariates))
	err := each("ComputeVarianceRatios", ds, res, covariates, func(name string, s samples) {
		out = append(out, varianceRatioOf(name, s))
	})
	if err != nil {
		return nil, err
	}

	return out, nil
}

// ComputeKSTest returns the KS statistic per covariate. After matching the
// treated values are compared against every individual matched control value.
func ComputeKSTest(ds *covariate.Dataset, res *matching.Result, covariates []string) ([]KS, error) {
	out := make([]KS, 0, len(covariates))
	err := each("ComputeKSTest", ds, res, covariates, func(name string, s samples) {
		out = append(out, ksOf(name, s))
	})
	if err != nil {
		return nil, err
	}

	return out, nil
}

// Evaluate computes every statistic in a single extraction and returns the
// combined Report.
//
// Errors: ErrNilDataset, ErrNilResult, covariate.ErrInvalidSchema,
// covariate.ErrUnknownUnit, ErrGroupMismatch. Undefined statistics are not
// errors here; see Report.Err.
func Evaluate(ds *covariate.Dataset, res *matching.Result, covariates []string) (*Report, error) {
	rep := &Report{records: make([]Record, 0, len(covariates))}
	err := each("Evaluate", ds, res, covariates, func(name string, s samples) {
		rep.records = append(rep.records, newRecord(smdOf(name, s), varianceRatioOf(name, s), ksOf(name, s)))
	})
	if err != nil {
		return nil, err
	}

	return rep, nil
}
