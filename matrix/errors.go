// SPDX-License-Identifier: MIT
// Package matrix: sentinel error set.
// Every algorithm returns one of these sentinels, optionally wrapped with an
// operation tag via matrixErrorf; callers match them with errors.Is.

package matrix

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidDimensions indicates that requested matrix dimensions are non-positive.
	ErrInvalidDimensions = errors.New("matrix: dimensions must be > 0")

	// ErrOutOfRange indicates that a row or column index is outside valid bounds.
	ErrOutOfRange = errors.New("matrix: index out of range")

	// ErrDimensionMismatch indicates incompatible operand shapes, e.g. Mul with
	// a.Cols != b.Rows, a non-square input to LU, or too few rows for a covariance.
	ErrDimensionMismatch = errors.New("matrix: dimension mismatch")

	// ErrNilMatrix indicates that a nil Matrix (or nil vector) was passed.
	ErrNilMatrix = errors.New("matrix: nil matrix")

	// ErrNaNInf signals a NaN or ±Inf value where finite values are required.
	ErrNaNInf = errors.New("matrix: NaN or Inf encountered")

	// ErrSingular is returned when LU meets a pivot within tolerance of zero.
	ErrSingular = errors.New("matrix: singular matrix")
)

// Operation tags for uniform error wrapping.
const (
	opMul       = "Mul"
	opTranspose = "Transpose"
	opScale     = "Scale"
	opMatVec    = "MatVec"
	opLU        = "LU"
	opInverse   = "Inverse"
	opCenter    = "CenterColumns"
	opCov       = "Covariance"
)

// matrixErrorf wraps err with an operation tag, preserving it for errors.Is.
// Only call with a non-nil err.
func matrixErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}
