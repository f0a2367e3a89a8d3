// SPDX-License-Identifier: MIT

// Package matrix: numeric policy defaults and functional options for the
// factorization kernels (LU, Inverse).

package matrix

import "math"

const (
	// DefaultValidateNaNInf toggles finite-value validation in Dense.Set.
	DefaultValidateNaNInf = true

	// DefaultPivotTolerance is the relative tolerance below which an LU pivot
	// counts as zero: |U[i,i]| <= tol * |A[i,i]|.
	DefaultPivotTolerance = 1e-12
)

const panicPivotToleranceInvalid = "matrix: WithPivotTolerance: tol must be finite and non-negative"

// Options stores the effective configuration of LU/Inverse.
type Options struct {
	pivotTol float64
}

// Option mutates Options. Constructors panic only on nonsensical values.
type Option func(*Options)

// WithPivotTolerance sets the relative singularity tolerance used by LU/Inverse.
// tol=0 restores the exact zero-pivot check.
func WithPivotTolerance(tol float64) Option {
	if tol < 0 || math.IsNaN(tol) || math.IsInf(tol, 0) {
		panic(panicPivotToleranceInvalid)
	}

	return func(o *Options) { o.pivotTol = tol }
}

// gatherOptions applies setters on top of the documented defaults.
func gatherOptions(user ...Option) Options {
	o := Options{pivotTol: DefaultPivotTolerance}
	for _, set := range user {
		set(&o)
	}

	return o
}
