package distance

import "errors"

// Sentinel errors returned by the distance engine.
var (
	// ErrSingularCovariance indicates that the Mahalanobis reference covariance
	// cannot be inverted (collinear or constant covariates, or fewer than two
	// reference rows).
	ErrSingularCovariance = errors.New("distance: covariance matrix is singular")

	// ErrUnknownMetric indicates a Metric value or name that is not supported.
	ErrUnknownMetric = errors.New("distance: unknown metric")

	// ErrUnknownReference indicates a Reference value or name that is not supported.
	ErrUnknownReference = errors.New("distance: unknown covariance reference")

	// ErrNilDataset indicates a nil dataset passed to FromDataset.
	ErrNilDataset = errors.New("distance: dataset is nil")

	// ErrShape indicates treated and control vectors of different widths, or id
	// lists that do not line up with a matrix.
	ErrShape = errors.New("distance: shape mismatch")
)
