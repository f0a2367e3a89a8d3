package distance

import (
	"fmt"

	"github.com/katalvlaran/causalmatch/covariate"
	"github.com/katalvlaran/causalmatch/matrix"
)

// Table is an immutable treated×control distance matrix keyed by unit ids.
// Row i belongs to TreatedIDs()[i], column j to ControlIDs()[j]. When either
// side is empty the table has no backing matrix and every accessor reports
// zero rows or columns.
type Table struct {
	metric  Metric
	treated []covariate.UnitID
	control []covariate.UnitID
	d       *matrix.Dense
}

// NewTable wraps a precomputed distance matrix. d may be nil only when one
// of the id lists is empty; otherwise its shape must be len(treated)×len(control)
// and every entry must be finite and non-negative.
//
// Errors: ErrShape.
func NewTable(metric Metric, treated, control []covariate.UnitID, d matrix.Matrix) (*Table, error) {
	t := &Table{
		metric:  metric,
		treated: append([]covariate.UnitID(nil), treated...),
		control: append([]covariate.UnitID(nil), control...),
	}
	if len(treated) == 0 || len(control) == 0 {
		return t, nil
	}
	if d == nil || d.Rows() != len(treated) || d.Cols() != len(control) {
		return nil, fmt.Errorf("NewTable: ids %d×%d: %w", len(treated), len(control), ErrShape)
	}
	dense, err := matrix.NewDense(len(treated), len(control))
	if err != nil {
		return nil, fmt.Errorf("NewTable: %w", err)
	}
	var i, j int
	var v float64
	for i = 0; i < len(treated); i++ {
		for j = 0; j < len(control); j++ {
			if v, err = d.At(i, j); err != nil {
				return nil, fmt.Errorf("NewTable: %w", err)
			}
			if v < 0 {
				return nil, fmt.Errorf("NewTable: negative distance at (%d,%d): %w", i, j, ErrShape)
			}
			if err = dense.Set(i, j, v); err != nil {
				return nil, fmt.Errorf("NewTable: %w", err)
			}
		}
	}
	t.d = dense

	return t, nil
}

// Metric returns the metric that produced the table.
func (t *Table) Metric() Metric { return t.metric }

// Rows returns the number of treated units.
func (t *Table) Rows() int { return len(t.treated) }

// Cols returns the number of control units.
func (t *Table) Cols() int { return len(t.control) }

// Empty reports whether either side has no units.
func (t *Table) Empty() bool { return t.d == nil }

// TreatedIDs returns a copy of the row ids.
func (t *Table) TreatedIDs() []covariate.UnitID {
	return append([]covariate.UnitID(nil), t.treated...)
}

// ControlIDs returns a copy of the column ids.
func (t *Table) ControlIDs() []covariate.UnitID {
	return append([]covariate.UnitID(nil), t.control...)
}

// TreatedID returns the id of row i.
func (t *Table) TreatedID(i int) covariate.UnitID { return t.treated[i] }

// ControlID returns the id of column j.
func (t *Table) ControlID(j int) covariate.UnitID { return t.control[j] }

// At returns the distance between treated row i and control column j.
func (t *Table) At(i, j int) (float64, error) {
	if t.d == nil {
		return 0, fmt.Errorf("At(%d,%d): %w", i, j, matrix.ErrOutOfRange)
	}

	return t.d.At(i, j)
}

// Row returns a copy of the distances from treated row i to every control.
func (t *Table) Row(i int) ([]float64, error) {
	if t.d == nil {
		return nil, fmt.Errorf("Row(%d): %w", i, matrix.ErrOutOfRange)
	}

	return t.d.Row(i)
}

// Matrix returns a deep copy of the backing matrix, or nil for an empty table.
func (t *Table) Matrix() matrix.Matrix {
	if t.d == nil {
		return nil
	}

	return t.d.Clone()
}
