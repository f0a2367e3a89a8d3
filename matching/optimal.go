package matching

import (
	"fmt"

	"github.com/katalvlaran/causalmatch/covariate"
	"github.com/katalvlaran/causalmatch/distance"
)

// Optimal matches the treated units of ds to its controls on the named
// covariates. See OptimalFromTable for the algorithm.
//
// Errors: ErrNilDataset, ErrBadK, ErrReplacementUnsupported,
// covariate.ErrInvalidSchema and distance errors.
func Optimal(ds *covariate.Dataset, covariates []string, opts ...Option) (*Result, error) {
	o, err := optimalOptions(opts...)
	if err != nil {
		return nil, err
	}
	if ds == nil {
		return nil, fmt.Errorf("%s: %w", opOptimal, ErrNilDataset)
	}
	t, err := distance.FromDataset(ds, covariates, o.Metric, o.DistanceOptions...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opOptimal, err)
	}

	return optimal(t, o)
}

// OptimalFromTable matches over a precomputed table.
//
// k=1: exact minimum-total-distance assignment of min(rows, cols) pairs.
// When treated outnumber controls the table is solved transposed and the
// treated rows left without a column are reported as unmatched.
//
// k>1: every treated row independently takes its k nearest controls (all of
// them when fewer exist), ties by control id; controls may repeat.
//
// An empty table yields an empty Result.
func OptimalFromTable(t *distance.Table, opts ...Option) (*Result, error) {
	o, err := optimalOptions(opts...)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, fmt.Errorf("%s: %w", opOptimal, ErrNilTable)
	}

	return optimal(t, o)
}

func optimalOptions(opts ...Option) (Options, error) {
	o, err := gatherOptions(opts...)
	if err != nil {
		return o, fmt.Errorf("%s: %w", opOptimal, err)
	}
	if o.WithReplacement {
		return o, fmt.Errorf("%s: %w", opOptimal, ErrReplacementUnsupported)
	}

	return o, nil
}

func optimal(t *distance.Table, o Options) (*Result, error) {
	res := &Result{method: MethodOptimal, metric: t.Metric(), k: o.K}
	if t.Empty() {
		res.unmatched = t.TreatedIDs()

		return res, nil
	}

	cost := make([][]float64, t.Rows())
	var i, j int
	var err error
	for i = 0; i < t.Rows(); i++ {
		if cost[i], err = t.Row(i); err != nil {
			return nil, fmt.Errorf("%s: %w", opOptimal, err)
		}
	}

	if o.K > 1 {
		all := make([]int, t.Cols())
		for j = range all {
			all[j] = j
		}
		for i = 0; i < t.Rows(); i++ {
			res.pairs = append(res.pairs, pairOf(t, i, nearest(t, cost[i], all, o.K)))
		}

		return res, nil
	}

	// rowCol[i] is the column assigned to treated row i, or -1.
	rowCol := make([]int, t.Rows())
	if t.Rows() <= t.Cols() {
		copy(rowCol, hungarian(cost, t.Rows(), t.Cols()))
	} else {
		for i = range rowCol {
			rowCol[i] = -1
		}
		tr := make([][]float64, t.Cols())
		for j = 0; j < t.Cols(); j++ {
			tr[j] = make([]float64, t.Rows())
			for i = 0; i < t.Rows(); i++ {
				tr[j][i] = cost[i][j]
			}
		}
		for j, i = range hungarian(tr, t.Cols(), t.Rows()) {
			rowCol[i] = j
		}
	}

	for i = 0; i < t.Rows(); i++ {
		if rowCol[i] < 0 {
			res.unmatched = append(res.unmatched, t.TreatedID(i))
			continue
		}
		res.pairs = append(res.pairs, pairOf(t, i, []candidate{{col: rowCol[i], dist: cost[i][rowCol[i]]}}))
	}
	if len(res.unmatched) > 0 {
		o.Logger.Debug("optimal matching left treated units unassigned",
			"treated", t.Rows(),
			"control", t.Cols(),
			"unmatched", len(res.unmatched),
		)
	}

	return res, nil
}
