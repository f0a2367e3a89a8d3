package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/causalmatch/balance"
	"github.com/katalvlaran/causalmatch/covariate"
	"github.com/katalvlaran/causalmatch/matching"
)

// Outcome is the result of one run.
type Outcome struct {
	Config Config
	Result *matching.Result
	Report *balance.Report
}

// Runner executes Configs. It holds no per-run state and is safe for
// concurrent use.
type Runner struct {
	logger  *slog.Logger
	metrics *Metrics
}

// RunnerOption configures a Runner.
type RunnerOption func(*Runner)

// WithLogger sets the run logger (default slog.Default()).
func WithLogger(l *slog.Logger) RunnerOption {
	return func(r *Runner) { r.logger = l }
}

// WithMetrics attaches Prometheus metrics.
func WithMetrics(m *Metrics) RunnerOption {
	return func(r *Runner) { r.metrics = m }
}

// NewRunner builds a Runner.
func NewRunner(opts ...RunnerOption) *Runner {
	r := &Runner{}
	for _, set := range opts {
		set(r)
	}
	if r.logger == nil {
		r.logger = slog.Default()
	}

	return r
}

// Run validates cfg, matches ds and evaluates balance.
//
// Stage 1: honor ctx and validate cfg.
// Stage 2: match with the configured method.
// Stage 3: evaluate balance on the matched groups.
// Stage 4: log and record metrics.
//
// Under strict_exhaustion a greedy run that runs out of controls returns the
// complete Outcome together with an error wrapping
// matching.ErrInsufficientControls.
//
// Errors: ctx.Err(), ErrNilDataset, ErrInvalidConfig, and anything the
// matcher or evaluator returns.
func (r *Runner) Run(ctx context.Context, ds *covariate.Dataset, cfg Config) (*Outcome, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if ds == nil {
		return nil, fmt.Errorf("Run: %w", ErrNilDataset)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("Run: %w", err)
	}
	method, opts, err := cfg.matchingOptions(r.logger)
	if err != nil {
		return nil, fmt.Errorf("Run: %w", err)
	}

	log := r.logger.With("run", cfg.Name, "method", cfg.Method, "metric", cfg.Metric, "k", cfg.K)
	log.Info("matching run started", "covariates", len(cfg.Covariates), "units", ds.Len())
	start := time.Now()

	var res *matching.Result
	switch method {
	case matching.MethodOptimal:
		res, err = matching.Optimal(ds, cfg.Covariates, opts...)
	default:
		res, err = matching.Greedy(ds, cfg.Covariates, opts...)
	}
	if res == nil {
		r.metrics.observe(cfg.Method, statusError, time.Since(start), 0)
		log.Error("matching run failed", "error", err)

		return nil, fmt.Errorf("Run: %w", err)
	}
	matchErr := err

	rep, err := balance.Evaluate(ds, res, cfg.balanceCovariates())
	if err != nil {
		r.metrics.observe(cfg.Method, statusError, time.Since(start), 0)
		log.Error("balance evaluation failed", "error", err)

		return nil, fmt.Errorf("Run: %w", err)
	}

	elapsed := time.Since(start)
	status := statusOK
	if !res.Complete() {
		status = statusExhausted
	}
	r.metrics.observe(cfg.Method, status, elapsed, len(res.Unmatched()))
	log.Info("matching run finished",
		"pairs", res.Len(),
		"unmatched", len(res.Unmatched()),
		"total_distance", res.TotalDistance(),
		"max_abs_smd_after", rep.MaxAbsSMDAfter(),
		"duration", elapsed,
	)
	if uerr := rep.Err(); uerr != nil {
		log.Warn("balance report has undefined statistics", "error", uerr)
	}

	out := &Outcome{Config: cfg, Result: res, Report: rep}
	if matchErr != nil {
		return out, fmt.Errorf("Run: %w", matchErr)
	}

	return out, nil
}

// Compare runs every cfg against ds concurrently. Outcomes keep the order of
// cfgs. The first failing run cancels the runs that have not started yet;
// its error is returned together with whatever outcomes completed.
func (r *Runner) Compare(ctx context.Context, ds *covariate.Dataset, cfgs ...Config) ([]*Outcome, error) {
	outs := make([]*Outcome, len(cfgs))
	g, gCtx := errgroup.WithContext(ctx)
	for i, cfg := range cfgs {
		i, cfg := i, cfg
		g.Go(func() error {
			o, err := r.Run(gCtx, ds, cfg)
			outs[i] = o
			if err != nil {
				return fmt.Errorf("Compare: config %d (%s): %w", i, cfg.Name, err)
			}

			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return outs, err
	}

	return outs, nil
}

// Best returns the outcome with the smallest max |SMD after| among outcomes
// whose result matched every treated unit, or nil when none qualifies.
func Best(outs []*Outcome) *Outcome {
	var best *Outcome
	bestSMD := 0.0
	for _, o := range outs {
		if o == nil || !o.Result.Complete() {
			continue
		}
		smd := o.Report.MaxAbsSMDAfter()
		if balance.IsUndefined(smd) {
			continue
		}
		if best == nil || smd < bestSMD {
			best, bestSMD = o, smd
		}
	}

	return best
}

// IsPartial reports whether err only signals greedy exhaustion, in which case
// the accompanying Outcome is usable.
func IsPartial(err error) bool {
	return errors.Is(err, matching.ErrInsufficientControls)
}
