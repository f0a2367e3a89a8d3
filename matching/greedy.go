package matching

import (
	"fmt"

	"github.com/katalvlaran/causalmatch/covariate"
	"github.com/katalvlaran/causalmatch/distance"
)

const (
	opGreedy  = "Greedy"
	opOptimal = "Optimal"
)

// Greedy matches the treated units of ds to its controls on the named
// covariates. See GreedyFromTable for the algorithm.
//
// Errors: ErrNilDataset, ErrBadK, covariate.ErrInvalidSchema, distance errors,
// and ErrInsufficientControls under WithStrictExhaustion.
func Greedy(ds *covariate.Dataset, covariates []string, opts ...Option) (*Result, error) {
	o, err := gatherOptions(opts...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opGreedy, err)
	}
	if ds == nil {
		return nil, fmt.Errorf("%s: %w", opGreedy, ErrNilDataset)
	}
	t, err := distance.FromDataset(ds, covariates, o.Metric, o.DistanceOptions...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opGreedy, err)
	}

	return greedy(t, o)
}

// GreedyFromTable runs greedy nearest-neighbour matching over a precomputed
// table. Metric options are ignored; the table's metric is reported.
//
// Stage 1: visit treated rows in order.
// Stage 2: stop if fewer than k controls remain available.
// Stage 3: take the k nearest available controls, ties by control id.
// Stage 4: without replacement, retire the chosen controls.
func GreedyFromTable(t *distance.Table, opts ...Option) (*Result, error) {
	o, err := gatherOptions(opts...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opGreedy, err)
	}
	if t == nil {
		return nil, fmt.Errorf("%s: %w", opGreedy, ErrNilTable)
	}

	return greedy(t, o)
}

func greedy(t *distance.Table, o Options) (*Result, error) {
	res := &Result{
		method:          MethodGreedy,
		metric:          t.Metric(),
		k:               o.K,
		withReplacement: o.WithReplacement,
	}
	if t.Rows() == 0 {
		return res, nil
	}

	// available holds eligible control columns in column order.
	available := make([]int, t.Cols())
	for j := range available {
		available[j] = j
	}

	var i int
	for i = 0; i < t.Rows(); i++ {
		if len(available) < o.K {
			break
		}
		row, err := t.Row(i)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", opGreedy, err)
		}
		chosen := nearest(t, row, available, o.K)
		res.pairs = append(res.pairs, pairOf(t, i, chosen))
		if !o.WithReplacement {
			available = retire(available, chosen)
		}
	}
	for ; i < t.Rows(); i++ {
		res.unmatched = append(res.unmatched, t.TreatedID(i))
	}

	if len(res.unmatched) > 0 {
		o.Logger.Debug("greedy matching exhausted controls",
			"k", o.K,
			"matched", len(res.pairs),
			"unmatched", len(res.unmatched),
			"first_unmatched", string(res.unmatched[0]),
		)
		if o.StrictExhaustion {
			return res, fmt.Errorf("%s: %d treated units unmatched: %w",
				opGreedy, len(res.unmatched), ErrInsufficientControls)
		}
	}

	return res, nil
}

// retire removes the chosen columns from available, preserving order.
func retire(available []int, chosen []candidate) []int {
	out := available[:0]
	for _, j := range available {
		if !picked(chosen, j) {
			out = append(out, j)
		}
	}

	return out
}

func picked(chosen []candidate, col int) bool {
	for _, c := range chosen {
		if c.col == col {
			return true
		}
	}

	return false
}
