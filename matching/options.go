package matching

import (
	"fmt"
	"log/slog"

	"github.com/katalvlaran/causalmatch/distance"
)

// DefaultK is the number of controls matched to each treated unit.
const DefaultK = 1

// Options configures Greedy and Optimal.
//
//   - K               : controls per treated unit (>= 1).
//   - WithReplacement : Greedy only: controls stay available after use.
//   - Metric          : distance metric used when matching from a Dataset.
//   - StrictExhaustion: Greedy only: report exhaustion as ErrInsufficientControls.
//   - DistanceOptions : forwarded to distance.FromDataset.
//   - Logger          : debug diagnostics (default slog.Default()).
type Options struct {
	K                int
	WithReplacement  bool
	Metric           distance.Metric
	StrictExhaustion bool
	DistanceOptions  []distance.Option
	Logger           *slog.Logger
}

// Option is a functional option for the matchers.
type Option func(*Options)

// DefaultOptions returns k=1, no replacement, Euclidean distance.
func DefaultOptions() Options {
	return Options{K: DefaultK, Metric: distance.Euclidean}
}

// WithK sets the number of controls per treated unit. Values below 1 are
// rejected by the matchers with ErrBadK.
func WithK(k int) Option {
	return func(o *Options) { o.K = k }
}

// WithReplacement lets Greedy reuse controls across treated units.
func WithReplacement() Option {
	return func(o *Options) { o.WithReplacement = true }
}

// WithMetric selects the distance metric for Dataset entry points.
func WithMetric(m distance.Metric) Option {
	return func(o *Options) { o.Metric = m }
}

// WithStrictExhaustion makes Greedy return ErrInsufficientControls alongside
// the partial result when it runs out of controls.
func WithStrictExhaustion() Option {
	return func(o *Options) { o.StrictExhaustion = true }
}

// WithDistanceOptions forwards options to the distance engine.
func WithDistanceOptions(opts ...distance.Option) Option {
	return func(o *Options) { o.DistanceOptions = append(o.DistanceOptions, opts...) }
}

// WithLogger routes diagnostics to l.
func WithLogger(l *slog.Logger) Option {
	return func(o *Options) { o.Logger = l }
}

func gatherOptions(user ...Option) (Options, error) {
	o := DefaultOptions()
	for _, set := range user {
		set(&o)
	}
	if o.Logger == nil {
		o.Logger = slog.Default()
	}
	if o.K < 1 {
		return o, fmt.Errorf("k=%d: %w", o.K, ErrBadK)
	}

	return o, nil
}
