// SPDX-License-Identifier: MIT
// Package matrix - linear-algebra kernels.
//
// Purpose:
//   - Mul/Transpose/Scale/MatVec: allocate fresh Dense results; inputs stay read-only.
//   - LU/Inverse: deterministic Doolittle factorization without pivoting, guarded by
//     a relative pivot tolerance so near-singular covariance matrices fail loudly.
//
// Determinism:
//   - Every kernel first materializes its operands as *Dense (asDense) and then
//     runs one flat-slice loop nest in fixed i→k→j order.

package matrix

import (
	"fmt"
	"math"
)

// zeroSum is the initial accumulator for substitutions and dot products.
const zeroSum = 0.0

// asDense returns m itself when it is *Dense, otherwise a Dense copy read via At.
// Complexity: O(1) for *Dense, O(r*c) otherwise.
func asDense(m Matrix) (*Dense, error) {
	if d, ok := m.(*Dense); ok {
		return d, nil
	}
	r, c := m.Rows(), m.Cols()
	out, err := NewDense(r, c)
	if err != nil {
		return nil, err
	}
	var i, j int
	var v float64
	for i = 0; i < r; i++ {
		for j = 0; j < c; j++ {
			if v, err = m.At(i, j); err != nil {
				return nil, fmt.Errorf("At(%d,%d): %w", i, j, err)
			}
			out.data[i*c+j] = v
		}
	}

	return out, nil
}

// Mul computes the matrix product a×b.
//
// Errors: ErrNilMatrix, ErrDimensionMismatch (a.Cols != b.Rows).
// Complexity: Time O(r*n*c), Space O(r*c).
func Mul(a, b Matrix) (Matrix, error) {
	if err := ValidateNotNil(a); err != nil {
		return nil, matrixErrorf(opMul, err)
	}
	if err := ValidateNotNil(b); err != nil {
		return nil, matrixErrorf(opMul, err)
	}
	if err := ValidateMulCompatible(a, b); err != nil {
		return nil, matrixErrorf(opMul, err)
	}
	ad, err := asDense(a)
	if err != nil {
		return nil, matrixErrorf(opMul, err)
	}
	bd, err := asDense(b)
	if err != nil {
		return nil, matrixErrorf(opMul, err)
	}

	r, n, c := ad.r, ad.c, bd.c
	out, err := NewDense(r, c)
	if err != nil {
		return nil, matrixErrorf(opMul, err)
	}
	// i→k→j keeps both b and out row-contiguous in the inner loop.
	var i, k, j int
	var aik float64
	for i = 0; i < r; i++ {
		rowOut := out.data[i*c : (i+1)*c]
		for k = 0; k < n; k++ {
			aik = ad.data[i*n+k]
			if aik == 0 {
				continue
			}
			rowB := bd.data[k*c : (k+1)*c]
			for j = 0; j < c; j++ {
				rowOut[j] += aik * rowB[j]
			}
		}
	}

	return out, nil
}

// Transpose returns mᵀ as a new Dense.
// Complexity: O(r*c).
func Transpose(m Matrix) (Matrix, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf(opTranspose, err)
	}
	md, err := asDense(m)
	if err != nil {
		return nil, matrixErrorf(opTranspose, err)
	}
	out, err := NewDense(md.c, md.r)
	if err != nil {
		return nil, matrixErrorf(opTranspose, err)
	}
	var i, j int
	for i = 0; i < md.r; i++ {
		for j = 0; j < md.c; j++ {
			out.data[j*md.r+i] = md.data[i*md.c+j]
		}
	}

	return out, nil
}

// Scale returns alpha*m as a new Dense.
// Complexity: O(r*c).
func Scale(m Matrix, alpha float64) (Matrix, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf(opScale, err)
	}
	md, err := asDense(m)
	if err != nil {
		return nil, matrixErrorf(opScale, err)
	}
	out, err := NewDense(md.r, md.c)
	if err != nil {
		return nil, matrixErrorf(opScale, err)
	}
	for k, v := range md.data {
		out.data[k] = alpha * v
	}

	return out, nil
}

// MatVec computes y = m·x.
//
// Errors: ErrNilMatrix (m or x nil), ErrDimensionMismatch (len(x) != Cols).
// Complexity: O(r*c).
func MatVec(m Matrix, x []float64) ([]float64, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf(opMatVec, err)
	}
	if err := ValidateVecLen(x, m.Cols()); err != nil {
		return nil, matrixErrorf(opMatVec, err)
	}
	md, err := asDense(m)
	if err != nil {
		return nil, matrixErrorf(opMatVec, err)
	}

	return matVecDense(md, x), nil
}

// matVecDense is the unchecked kernel behind MatVec and QuadForm.
func matVecDense(md *Dense, x []float64) []float64 {
	y := make([]float64, md.r)
	var i, j int
	var sum float64
	for i = 0; i < md.r; i++ {
		sum = zeroSum
		row := md.data[i*md.c : (i+1)*md.c]
		for j = 0; j < md.c; j++ {
			sum += row[j] * x[j]
		}
		y[i] = sum
	}

	return y
}

// QuadForm evaluates xᵀ·m·x for a square m.
//
// Errors: ErrNilMatrix, ErrDimensionMismatch (non-square or len(x) != n).
// Complexity: O(n²).
func QuadForm(m Matrix, x []float64) (float64, error) {
	if err := ValidateNotNil(m); err != nil {
		return 0, matrixErrorf(opMatVec, err)
	}
	if err := ValidateSquare(m); err != nil {
		return 0, matrixErrorf(opMatVec, err)
	}
	if err := ValidateVecLen(x, m.Cols()); err != nil {
		return 0, matrixErrorf(opMatVec, err)
	}
	md, err := asDense(m)
	if err != nil {
		return 0, matrixErrorf(opMatVec, err)
	}
	y := matVecDense(md, x)
	sum := zeroSum
	for i := range x {
		sum += x[i] * y[i]
	}

	return sum, nil
}

// LU computes the Doolittle factorization A = L*U with unit diagonal on L.
// No pivoting is performed; pivot i is treated as zero when
// |U[i,i]| <= tol * |A[i,i]|, or tol * max_j |A[i,j]| when A[i,i] is zero
// (see WithPivotTolerance). The test is per row, so rescaling a row and its
// column (a change of units) never changes the verdict.
//
// Returns:
//   - L (unit lower triangular), U (upper triangular), both fresh Dense.
//
// Errors: ErrNilMatrix, ErrDimensionMismatch (non-square), ErrSingular.
// Complexity: Time O(n³), Space O(n²).
//
// Notes:
//   - Symmetric positive-definite inputs (non-degenerate covariance matrices)
//     always have non-zero leading minors, so the missing pivoting is harmless there.
func LU(m Matrix, opts ...Option) (Matrix, Matrix, error) {
	l, u, err := luDense(m, gatherOptions(opts...))
	if err != nil {
		return nil, nil, err
	}

	return l, u, nil
}

func luDense(m Matrix, o Options) (*Dense, *Dense, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, nil, matrixErrorf(opLU, err)
	}
	if err := ValidateSquare(m); err != nil {
		return nil, nil, matrixErrorf(opLU, err)
	}
	a, err := asDense(m)
	if err != nil {
		return nil, nil, matrixErrorf(opLU, err)
	}

	n := a.r
	L, err := NewDense(n, n)
	if err != nil {
		return nil, nil, matrixErrorf(opLU, err)
	}
	U, err := NewDense(n, n)
	if err != nil {
		return nil, nil, matrixErrorf(opLU, err)
	}

	var i, j, k int
	for i = 0; i < n; i++ {
		L.data[i*n+i] = 1.0
	}

	var sum, pivot float64
	for i = 0; i < n; i++ {
		// Row i of U.
		for j = i; j < n; j++ {
			sum = zeroSum
			for k = 0; k < i; k++ {
				sum += L.data[i*n+k] * U.data[k*n+j]
			}
			U.data[i*n+j] = a.data[i*n+j] - sum
		}

		pivot = U.data[i*n+i]
		if math.Abs(pivot) <= o.pivotTol*pivotScale(a, i) {
			return nil, nil, matrixErrorf(opLU, fmt.Errorf("pivot %d: %w", i, ErrSingular))
		}

		// Column i of L.
		for j = i + 1; j < n; j++ {
			sum = zeroSum
			for k = 0; k < i; k++ {
				sum += L.data[j*n+k] * U.data[k*n+i]
			}
			L.data[j*n+i] = (a.data[j*n+i] - sum) / pivot
		}
	}

	return L, U, nil
}

// pivotScale is the magnitude pivot i is compared against: |A[i,i]|, or the
// largest magnitude in row i when the diagonal entry is zero.
func pivotScale(a *Dense, i int) float64 {
	n := a.c
	if d := math.Abs(a.data[i*n+i]); d > 0 {
		return d
	}
	var m float64
	for j := 0; j < n; j++ {
		m = math.Max(m, math.Abs(a.data[i*n+j]))
	}

	return m
}

// Inverse computes A⁻¹ via LU and one forward/backward solve per basis column.
//
// Errors: ErrNilMatrix, ErrDimensionMismatch, ErrSingular.
// Complexity: Time O(n³), Space O(n²).
func Inverse(m Matrix, opts ...Option) (Matrix, error) {
	L, U, err := luDense(m, gatherOptions(opts...))
	if err != nil {
		return nil, matrixErrorf(opInverse, err)
	}

	n := L.r
	inv, err := NewDense(n, n)
	if err != nil {
		return nil, matrixErrorf(opInverse, err)
	}

	var (
		col, i, k int
		sum       float64
		y         = make([]float64, n)
		x         = make([]float64, n)
	)
	for col = 0; col < n; col++ {
		// Forward: L*y = e_col
		for i = 0; i < n; i++ {
			sum = zeroSum
			for k = 0; k < i; k++ {
				sum += L.data[i*n+k] * y[k]
			}
			if i == col {
				y[i] = 1.0 - sum
			} else {
				y[i] = -sum
			}
		}
		// Backward: U*x = y (pivots already checked by LU)
		for i = n - 1; i >= 0; i-- {
			sum = zeroSum
			for k = i + 1; k < n; k++ {
				sum += U.data[i*n+k] * x[k]
			}
			x[i] = (y[i] - sum) / U.data[i*n+i]
		}
		for i = 0; i < n; i++ {
			inv.data[i*n+col] = x[i]
		}
	}

	return inv, nil
}
