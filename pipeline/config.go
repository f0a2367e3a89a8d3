package pipeline

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/causalmatch/distance"
	"github.com/katalvlaran/causalmatch/matching"
)

// Config describes one matching run.
type Config struct {
	// Name labels the run in logs; optional.
	Name string `yaml:"name,omitempty" json:"name,omitempty"`

	Method    string `yaml:"method" json:"method" validate:"required,oneof=greedy optimal"`
	Metric    string `yaml:"metric" json:"metric" validate:"required,oneof=euclidean mahalanobis"`
	Reference string `yaml:"reference" json:"reference" validate:"required,oneof=pooled control"`
	K         int    `yaml:"k" json:"k" validate:"gte=1"`

	WithReplacement  bool `yaml:"with_replacement" json:"with_replacement"`
	StrictExhaustion bool `yaml:"strict_exhaustion" json:"strict_exhaustion"`

	// Covariates are matched on and, unless BalanceCovariates is set, evaluated.
	Covariates        []string `yaml:"covariates" json:"covariates" validate:"required,min=1,unique,dive,required"`
	BalanceCovariates []string `yaml:"balance_covariates,omitempty" json:"balance_covariates,omitempty" validate:"omitempty,unique,dive,required"`

	// MaxDistanceCells is the distance-table size above which a warning is
	// logged; 0 disables the guard.
	MaxDistanceCells int `yaml:"max_distance_cells" json:"max_distance_cells" validate:"gte=0"`
}

var configValidate *validator.Validate

func init() {
	configValidate = validator.New()
	configValidate.RegisterStructValidation(validateReplacement, Config{})
}

// validateReplacement rejects replacement for optimal matching.
func validateReplacement(sl validator.StructLevel) {
	c := sl.Current().Interface().(Config)
	if c.WithReplacement && c.Method == "optimal" {
		sl.ReportError(c.WithReplacement, "WithReplacement", "with_replacement", "greedy_only", "")
	}
}

// DefaultConfig returns greedy 1:1 Euclidean matching with the pooled
// Mahalanobis reference and the default size guard. Covariates must still
// be set.
func DefaultConfig() Config {
	return Config{
		Method:           matching.MethodGreedy.String(),
		Metric:           distance.Euclidean.String(),
		Reference:        distance.Pooled.String(),
		K:                matching.DefaultK,
		MaxDistanceCells: distance.DefaultMaxCells,
	}
}

// ParseConfig decodes YAML over DefaultConfig and validates the result.
// Unknown keys are rejected.
//
// Errors: ErrInvalidConfig.
func ParseConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("ParseConfig: %w: %w", ErrInvalidConfig, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("ParseConfig: %w", err)
	}

	return cfg, nil
}

// Validate checks field constraints and cross-field rules.
//
// Errors: ErrInvalidConfig wrapping validator.ValidationErrors.
func (c Config) Validate() error {
	if err := configValidate.Struct(c); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	return nil
}

// balanceCovariates returns the covariates to evaluate.
func (c Config) balanceCovariates() []string {
	if len(c.BalanceCovariates) > 0 {
		return c.BalanceCovariates
	}

	return c.Covariates
}

// matchingOptions translates a validated Config into matcher options.
func (c Config) matchingOptions(log *slog.Logger) (matching.Method, []matching.Option, error) {
	method, err := matching.ParseMethod(c.Method)
	if err != nil {
		return 0, nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	metric, err := distance.ParseMetric(c.Metric)
	if err != nil {
		return 0, nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	ref, err := distance.ParseReference(c.Reference)
	if err != nil {
		return 0, nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	opts := []matching.Option{
		matching.WithK(c.K),
		matching.WithMetric(metric),
		matching.WithLogger(log),
		matching.WithDistanceOptions(
			distance.WithReference(ref),
			distance.WithMaxCells(c.MaxDistanceCells),
			distance.WithLogger(log),
		),
	}
	if c.WithReplacement {
		opts = append(opts, matching.WithReplacement())
	}
	if c.StrictExhaustion {
		opts = append(opts, matching.WithStrictExhaustion())
	}

	return method, opts, nil
}
