package distance

import (
	"fmt"
	"log/slog"
	"strings"
)

// Metric selects the dissimilarity between two covariate vectors.
type Metric int

const (
	// Euclidean is the L2 norm of the vector difference.
	Euclidean Metric = iota
	// Mahalanobis is the L2 distance after whitening by the inverse covariance.
	Mahalanobis
)

// String implements fmt.Stringer.
func (m Metric) String() string {
	switch m {
	case Euclidean:
		return "euclidean"
	case Mahalanobis:
		return "mahalanobis"
	default:
		return fmt.Sprintf("metric(%d)", int(m))
	}
}

// ParseMetric maps a case-insensitive name to a Metric.
func ParseMetric(s string) (Metric, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "euclidean":
		return Euclidean, nil
	case "mahalanobis":
		return Mahalanobis, nil
	default:
		return 0, fmt.Errorf("%q: %w", s, ErrUnknownMetric)
	}
}

// Reference selects which rows estimate the Mahalanobis covariance.
type Reference int

const (
	// Pooled stacks treated and control rows.
	Pooled Reference = iota
	// ControlOnly uses the control rows alone.
	ControlOnly
)

// String implements fmt.Stringer.
func (r Reference) String() string {
	switch r {
	case Pooled:
		return "pooled"
	case ControlOnly:
		return "control"
	default:
		return fmt.Sprintf("reference(%d)", int(r))
	}
}

// ParseReference maps "pooled" or "control" to a Reference.
func ParseReference(s string) (Reference, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "pooled":
		return Pooled, nil
	case "control":
		return ControlOnly, nil
	default:
		return 0, fmt.Errorf("%q: %w", s, ErrUnknownReference)
	}
}

// DefaultMaxCells is the table size above which Compute logs a warning.
// 25M cells is 200 MB of float64.
const DefaultMaxCells = 25_000_000

// DefaultPivotTolerance is the relative singularity tolerance used when
// inverting the Mahalanobis covariance.
const DefaultPivotTolerance = 1e-12

const (
	panicMaxCellsInvalid  = "distance: WithMaxCells: limit must be >= 0"
	panicPivotTolInvalid  = "distance: WithPivotTolerance: tol must be >= 0"
	panicReferenceInvalid = "distance: WithReference: unknown reference"
)

// Options configures Compute and FromDataset.
//
//   - Reference: covariance sample for Mahalanobis (default Pooled).
//   - MaxCells : warn when treated×control exceeds it; 0 disables the guard.
//   - PivotTol : relative LU pivot tolerance for the covariance inverse.
//   - Logger   : destination of the size warning (default slog.Default()).
type Options struct {
	Reference Reference
	MaxCells  int
	PivotTol  float64
	Logger    *slog.Logger
}

// Option is a functional option for the distance engine.
type Option func(*Options)

// DefaultOptions returns the documented defaults.
func DefaultOptions() Options {
	return Options{
		Reference: Pooled,
		MaxCells:  DefaultMaxCells,
		PivotTol:  DefaultPivotTolerance,
	}
}

// WithReference selects the covariance reference sample for Mahalanobis.
func WithReference(r Reference) Option {
	if r != Pooled && r != ControlOnly {
		panic(panicReferenceInvalid)
	}

	return func(o *Options) { o.Reference = r }
}

// WithMaxCells sets the size-guard threshold; 0 disables the warning.
func WithMaxCells(n int) Option {
	if n < 0 {
		panic(panicMaxCellsInvalid)
	}

	return func(o *Options) { o.MaxCells = n }
}

// WithPivotTolerance overrides the relative pivot tolerance used when
// inverting the covariance matrix.
func WithPivotTolerance(tol float64) Option {
	if !(tol >= 0) {
		panic(panicPivotTolInvalid)
	}

	return func(o *Options) { o.PivotTol = tol }
}

// WithLogger routes diagnostics to l. A nil logger keeps slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(o *Options) { o.Logger = l }
}

func gatherOptions(user ...Option) Options {
	o := DefaultOptions()
	for _, set := range user {
		set(&o)
	}
	if o.Logger == nil {
		o.Logger = slog.Default()
	}

	return o
}
