// SPDX-License-Identifier: MIT

package matrix_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/causalmatch/matrix"
)

func TestMul_FastAndFallbackAgree(t *testing.T) {
	t.Parallel()

	a := mustDense(t, 2, 3, 1, 2, 3, 4, 5, 6)
	b := mustDense(t, 3, 2, 7, 8, 9, 10, 11, 12)
	want := mustDense(t, 2, 2, 58, 64, 139, 154)

	fast, err := matrix.Mul(a, b)
	require.NoError(t, err)
	requireClose(t, want, fast, 0)

	slow, err := matrix.Mul(hide{a}, hide{b})
	require.NoError(t, err)
	requireClose(t, want, slow, 0)

	_, err = matrix.Mul(a, a)
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch)
	_, err = matrix.Mul(nil, a)
	require.ErrorIs(t, err, matrix.ErrNilMatrix)
}

func TestTransposeScale(t *testing.T) {
	t.Parallel()

	a := mustDense(t, 2, 3, 1, 2, 3, 4, 5, 6)
	at, err := matrix.Transpose(a)
	require.NoError(t, err)
	requireClose(t, mustDense(t, 3, 2, 1, 4, 2, 5, 3, 6), at, 0)

	s, err := matrix.Scale(a, -2)
	require.NoError(t, err)
	requireClose(t, mustDense(t, 2, 3, -2, -4, -6, -8, -10, -12), s, 0)
}

func TestMatVecAndQuadForm(t *testing.T) {
	t.Parallel()

	m := mustDense(t, 2, 2, 2, 1, 1, 3)
	y, err := matrix.MatVec(m, []float64{1, 2})
	require.NoError(t, err)
	assert.Equal(t, []float64{4, 7}, y)

	q, err := matrix.QuadForm(m, []float64{1, 2})
	require.NoError(t, err)
	assert.Equal(t, 18.0, q) // [1 2]·[4 7]

	_, err = matrix.MatVec(m, []float64{1})
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch)
	_, err = matrix.MatVec(m, nil)
	require.ErrorIs(t, err, matrix.ErrNilMatrix)
	_, err = matrix.QuadForm(mustDense(t, 1, 2, 1, 2), []float64{1, 2})
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch)
}

func TestLU_Reconstructs(t *testing.T) {
	t.Parallel()

	a := mustDense(t, 3, 3, 4, 3, 2, 6, 3, 1, 2, 5, 7)
	L, U, err := matrix.LU(a)
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		assert.Equal(t, 1.0, mustAt(t, L, i, i), "unit diagonal")
		for j := i + 1; j < 3; j++ {
			assert.Equal(t, 0.0, mustAt(t, L, i, j), "L upper part")
			assert.Equal(t, 0.0, mustAt(t, U, j, i), "U lower part")
		}
	}
	prod, err := matrix.Mul(L, U)
	require.NoError(t, err)
	requireClose(t, a, prod, 1e-12)
}

func TestInverse_IdentityProduct(t *testing.T) {
	t.Parallel()

	a := mustDense(t, 3, 3, 4, 1, 0, 1, 3, 1, 0, 1, 2)
	inv, err := matrix.Inverse(a)
	require.NoError(t, err)

	prod, err := matrix.Mul(a, inv)
	require.NoError(t, err)
	requireClose(t, mustDense(t, 3, 3, 1, 0, 0, 0, 1, 0, 0, 0, 1), prod, 1e-12)

	slow, err := matrix.Inverse(hide{a})
	require.NoError(t, err)
	requireClose(t, inv, slow, 0)
}

func TestInverse_Singular(t *testing.T) {
	t.Parallel()

	// second row is twice the first
	_, err := matrix.Inverse(mustDense(t, 2, 2, 1, 2, 2, 4))
	require.ErrorIs(t, err, matrix.ErrSingular)

	// zero leading pivot without pivoting
	_, err = matrix.Inverse(mustDense(t, 2, 2, 0, 1, 1, 0))
	require.ErrorIs(t, err, matrix.ErrSingular)

	// nearly collinear: caught by the default tolerance, accepted with tol=0
	near := mustDense(t, 2, 2, 1, 1, 1, 1+1e-14)
	_, err = matrix.Inverse(near)
	require.ErrorIs(t, err, matrix.ErrSingular)
	_, err = matrix.Inverse(near, matrix.WithPivotTolerance(0))
	require.NoError(t, err)

	_, err = matrix.Inverse(mustDense(t, 2, 3, 1, 2, 3, 4, 5, 6))
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch)
}

func TestInverse_MixedScaleDiagonal(t *testing.T) {
	t.Parallel()

	// variances 4e12 and 0.25 with correlation 0.5
	a := mustDense(t, 2, 2, 4e12, 5e5, 5e5, 0.25)
	inv, err := matrix.Inverse(a)
	require.NoError(t, err)
	det := 4e12*0.25 - 5e5*5e5
	want := []float64{0.25 / det, -5e5 / det, -5e5 / det, 4e12 / det}
	for k, w := range want {
		assert.InEpsilon(t, w, mustAt(t, inv, k/2, k%2), 1e-9, "entry %d", k)
	}

	// a zero-variance row stays singular at any scale
	_, err = matrix.Inverse(mustDense(t, 2, 2, 4e12, 0, 0, 0))
	require.ErrorIs(t, err, matrix.ErrSingular)
}

func TestWithPivotTolerance_PanicsOnNegative(t *testing.T) {
	t.Parallel()

	assert.Panics(t, func() { matrix.WithPivotTolerance(-1) })
}
