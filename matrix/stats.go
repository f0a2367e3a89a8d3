// SPDX-License-Identifier: MIT
// Package: matrix
//
// Purpose:
//   - Column statistics over observation-by-feature matrices (rows = units).
//   - CenterColumns(X) -> (Xc, means); Covariance(X) -> (Cov, means), divisor r-1.

package matrix

// CenterColumns subtracts the per-column mean from every element.
//
// Returns:
//   - Matrix: centered copy (r×c).
//   - []float64: column means (len=c).
//
// Errors: ErrNilMatrix, wrapped At errors for non-Dense inputs.
// Complexity: Time O(r*c), Space O(r*c).
func CenterColumns(X Matrix) (Matrix, []float64, error) {
	xc, means, err := centerColumns(X)
	if err != nil {
		return nil, nil, err
	}

	return xc, means, nil
}

func centerColumns(X Matrix) (*Dense, []float64, error) {
	if err := ValidateNotNil(X); err != nil {
		return nil, nil, matrixErrorf(opCenter, err)
	}
	xd, err := asDense(X)
	if err != nil {
		return nil, nil, matrixErrorf(opCenter, err)
	}

	r, c := xd.r, xd.c
	means := make([]float64, c)
	var i, j int
	for i = 0; i < r; i++ {
		row := xd.rowView(i)
		for j = 0; j < c; j++ {
			means[j] += row[j]
		}
	}
	invR := 1.0 / float64(r)
	for j = 0; j < c; j++ {
		means[j] *= invR
	}

	out := xd.Clone().(*Dense)
	for i = 0; i < r; i++ {
		row := out.rowView(i)
		for j = 0; j < c; j++ {
			row[j] -= means[j]
		}
	}

	return out, means, nil
}

// Covariance computes the sample covariance of the columns of X:
// Cov = (Xcᵀ·Xc)/(r-1), where Xc is X with column means removed.
//
// Returns:
//   - Matrix: symmetric c×c covariance; the diagonal holds sample variances.
//   - []float64: column means used for centering.
//
// Errors: ErrNilMatrix, ErrDimensionMismatch (r < 2).
// Complexity: Time O(r*c²), Space O(c²).
func Covariance(X Matrix) (Matrix, []float64, error) {
	if err := ValidateNotNil(X); err != nil {
		return nil, nil, matrixErrorf(opCov, err)
	}
	if X.Rows() < 2 {
		return nil, nil, matrixErrorf(opCov, ErrDimensionMismatch)
	}
	xc, means, err := centerColumns(X)
	if err != nil {
		return nil, nil, matrixErrorf(opCov, err)
	}
	xct, err := Transpose(xc)
	if err != nil {
		return nil, nil, matrixErrorf(opCov, err)
	}
	g, err := Mul(xct, xc)
	if err != nil {
		return nil, nil, matrixErrorf(opCov, err)
	}
	cov, err := Scale(g, 1.0/float64(xc.r-1))
	if err != nil {
		return nil, nil, matrixErrorf(opCov, err)
	}

	return cov, means, nil
}
