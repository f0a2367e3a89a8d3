package distance

import (
	"errors"
	"fmt"
	"log/slog"
	"math"

	"github.com/katalvlaran/causalmatch/covariate"
	"github.com/katalvlaran/causalmatch/matrix"
)

const (
	opCompute     = "Compute"
	opFromDataset = "FromDataset"
)

// Compute returns the treated×control distance matrix under metric.
//
// Implementation:
//   - Stage 1: validate operands (non-nil, equal widths) and warn on the size guard.
//   - Stage 2: Mahalanobis only, estimate Σ on the reference sample and invert it.
//   - Stage 3: fill the matrix row by row in fixed i→j order.
//
// Errors: matrix.ErrNilMatrix, ErrShape, ErrUnknownMetric, ErrSingularCovariance.
// Complexity: Time O(t·c·p) Euclidean, O(t·c·p² + (t+c)·p² + p³) Mahalanobis;
// Space O(t·c).
func Compute(treated, control matrix.Matrix, metric Metric, opts ...Option) (*matrix.Dense, error) {
	if err := matrix.ValidateNotNil(treated); err != nil {
		return nil, fmt.Errorf("%s: %w", opCompute, err)
	}
	if err := matrix.ValidateNotNil(control); err != nil {
		return nil, fmt.Errorf("%s: %w", opCompute, err)
	}
	if treated.Cols() != control.Cols() {
		return nil, fmt.Errorf("%s: treated has %d covariates, control %d: %w",
			opCompute, treated.Cols(), control.Cols(), ErrShape)
	}
	o := gatherOptions(opts...)

	tRows, err := rowsOf(treated)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opCompute, err)
	}
	cRows, err := rowsOf(control)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opCompute, err)
	}
	guardSize(o, len(tRows), len(cRows))

	var dist func(a, b []float64) (float64, error)
	switch metric {
	case Euclidean:
		dist = euclidean
	case Mahalanobis:
		vi, err := inverseCovariance(tRows, cRows, o)
		if err != nil {
			return nil, fmt.Errorf("%s(%s): %w", opCompute, metric, err)
		}
		dist = mahalanobis(vi)
	default:
		return nil, fmt.Errorf("%s: %v: %w", opCompute, metric, ErrUnknownMetric)
	}

	out, err := matrix.NewDense(len(tRows), len(cRows))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opCompute, err)
	}
	var i, j int
	var d float64
	for i = 0; i < len(tRows); i++ {
		for j = 0; j < len(cRows); j++ {
			if d, err = dist(tRows[i], cRows[j]); err != nil {
				return nil, fmt.Errorf("%s: %w", opCompute, err)
			}
			if err = out.Set(i, j, d); err != nil {
				return nil, fmt.Errorf("%s: %w", opCompute, err)
			}
		}
	}

	return out, nil
}

// FromDataset extracts the named covariates of both groups and builds a Table.
//
// Errors: ErrNilDataset, covariate.ErrInvalidSchema plus everything Compute returns.
func FromDataset(ds *covariate.Dataset, covariates []string, metric Metric, opts ...Option) (*Table, error) {
	if ds == nil {
		return nil, fmt.Errorf("%s: %w", opFromDataset, ErrNilDataset)
	}
	tm, tIDs, err := ds.Vectors(covariate.Treated, covariates)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opFromDataset, err)
	}
	cm, cIDs, err := ds.Vectors(covariate.Control, covariates)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opFromDataset, err)
	}
	d, err := Compute(tm, cm, metric, opts...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opFromDataset, err)
	}

	return &Table{metric: metric, treated: tIDs, control: cIDs, d: d}, nil
}

// rowsOf copies every row of m into a slice of vectors.
func rowsOf(m matrix.Matrix) ([][]float64, error) {
	out := make([][]float64, m.Rows())
	var i, j int
	var err error
	for i = 0; i < m.Rows(); i++ {
		row := make([]float64, m.Cols())
		for j = 0; j < m.Cols(); j++ {
			if row[j], err = m.At(i, j); err != nil {
				return nil, err
			}
		}
		out[i] = row
	}

	return out, nil
}

// guardSize logs a warning when the table exceeds the configured cell budget.
func guardSize(o Options, rows, cols int) {
	if o.MaxCells == 0 {
		return
	}
	cells := rows * cols
	if cells <= o.MaxCells {
		return
	}
	o.Logger.Warn("distance table exceeds size guard",
		slog.Int("treated", rows),
		slog.Int("control", cols),
		slog.Int("cells", cells),
		slog.Int("max_cells", o.MaxCells),
		slog.Int("approx_bytes", cells*8),
	)
}

// inverseCovariance estimates Σ on the configured reference rows and inverts it.
// Both the "too few rows" and the "not invertible" outcomes surface as
// ErrSingularCovariance, wrapping the underlying matrix error.
func inverseCovariance(tRows, cRows [][]float64, o Options) (matrix.Matrix, error) {
	var ref [][]float64
	switch o.Reference {
	case Pooled:
		ref = make([][]float64, 0, len(tRows)+len(cRows))
		ref = append(ref, tRows...)
		ref = append(ref, cRows...)
	case ControlOnly:
		ref = cRows
	default:
		return nil, fmt.Errorf("%v: %w", o.Reference, ErrUnknownReference)
	}
	if len(ref) < 2 {
		return nil, fmt.Errorf("%s reference has %d rows: %w", o.Reference, len(ref), ErrSingularCovariance)
	}

	X, err := matrix.NewDenseFromRows(ref)
	if err != nil {
		return nil, err
	}
	cov, _, err := matrix.Covariance(X)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSingularCovariance, err)
	}
	inv, err := matrix.Inverse(cov, matrix.WithPivotTolerance(o.PivotTol))
	if err != nil {
		if errors.Is(err, matrix.ErrSingular) {
			return nil, fmt.Errorf("%w: %w", ErrSingularCovariance, err)
		}
		return nil, err
	}

	return inv, nil
}

// euclidean returns ‖a − b‖₂.
func euclidean(a, b []float64) (float64, error) {
	var sum, d float64
	for k := range a {
		d = a[k] - b[k]
		sum += d * d
	}

	return math.Sqrt(sum), nil
}

// mahalanobis returns sqrt((a−b)ᵀ·VI·(a−b)) over a fixed inverse covariance.
// Rounding can push the quadratic form slightly below zero; it is clamped.
func mahalanobis(vi matrix.Matrix) func(a, b []float64) (float64, error) {
	diff := make([]float64, vi.Cols())

	return func(a, b []float64) (float64, error) {
		for k := range diff {
			diff[k] = a[k] - b[k]
		}
		q, err := matrix.QuadForm(vi, diff)
		if err != nil {
			return 0, err
		}
		if q < 0 {
			q = 0
		}

		return math.Sqrt(q), nil
	}
}
