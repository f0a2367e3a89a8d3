// SPDX-License-Identifier: MIT

// Package matrix provides the dense numeric substrate used by causalmatch:
// covariate tables, treated×control distance tables and the small amount of
// linear algebra needed to whiten covariates (sample covariance, LU, inverse).
//
// Storage:
//
//   - Dense is a row-major float64 buffer (offset = i*cols + j).
//   - Public accessors (At/Set) return sentinel errors instead of panicking.
//   - Set rejects NaN/±Inf unless the matrix was built with the policy disabled.
//
// Kernels:
//
//	Mul, Transpose, Scale, MatVec  allocate fresh results, never mutate inputs.
//	LU                             Doolittle factorization, no pivoting.
//	Inverse                        LU + triangular solves, pivot tolerance guard.
//	CenterColumns, Covariance      column statistics with divisor r-1.
//
// Determinism:
//
//	Every loop runs in a fixed i→j→k order; there is no map iteration and no
//	randomness, so identical inputs produce bit-identical outputs.
//
// Errors (sentinel, match with errors.Is):
//
//	ErrInvalidDimensions, ErrOutOfRange, ErrDimensionMismatch, ErrNilMatrix,
//	ErrNaNInf, ErrSingular.
package matrix
