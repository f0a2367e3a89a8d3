// SPDX-License-Identifier: MIT

package matrix_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/causalmatch/matrix"
)

// hide wraps a Matrix to mask its concrete type, forcing the generic path.
type hide struct{ matrix.Matrix }

// mustDense builds a row-major matrix or aborts the test.
func mustDense(t *testing.T, r, c int, data ...float64) *matrix.Dense {
	t.Helper()
	m, err := matrix.NewDenseFrom(r, c, data)
	require.NoError(t, err)

	return m
}

// mustAt reads (i,j) or aborts the test.
func mustAt(t *testing.T, m matrix.Matrix, i, j int) float64 {
	t.Helper()
	v, err := m.At(i, j)
	require.NoError(t, err)

	return v
}

// requireClose compares two matrices element-wise within tol.
func requireClose(t *testing.T, want, got matrix.Matrix, tol float64) {
	t.Helper()
	require.Equal(t, want.Rows(), got.Rows(), "rows")
	require.Equal(t, want.Cols(), got.Cols(), "cols")
	for i := 0; i < want.Rows(); i++ {
		for j := 0; j < want.Cols(); j++ {
			require.InDelta(t, mustAt(t, want, i, j), mustAt(t, got, i, j), tol, "(%d,%d)", i, j)
		}
	}
}
