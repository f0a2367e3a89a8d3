// Package pipeline runs a complete matching study: it validates a Config,
// matches, evaluates balance and records the run.
//
// A Config is plain data that decodes from YAML:
//
//	method: optimal
//	metric: mahalanobis
//	reference: pooled
//	k: 1
//	covariates: [age, educ, re74]
//
// Runner.Run executes one Config; Runner.Compare executes several against
// the same Dataset concurrently and returns the outcomes in input order.
// Every run is independent; the Dataset is read-only and shared safely.
//
// Runs are logged with log/slog and, when a Metrics is attached, counted in
// Prometheus.
package pipeline
