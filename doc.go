// Package causalmatch is an in-memory toolkit for covariate matching in
// observational studies: pair treated units with similar controls, then
// measure how much covariate imbalance the matching removed.
//
// What is in the box?
//
//	covariate/  Unit, Dataset and schema validation keyed by stable unit ids
//	matrix/     small dense matrix core: products, LU, inverse, covariance
//	distance/   treated×control distance tables (Euclidean, Mahalanobis)
//	matching/   greedy nearest-neighbour and optimal (Kuhn–Munkres) matching
//	balance/    SMD, variance ratios and Kolmogorov–Smirnov before/after
//	pipeline/   YAML configs, concurrent runs, slog logging, Prometheus metrics
//
// Data flow:
//
//	Dataset ─▶ distance.Table ─▶ matching.Result ─▶ balance.Report
//
// Every stage is a pure function over immutable inputs: identical data and
// options always produce identical results, and independent calls may run
// concurrently.
//
// Quick example:
//
//	ds, _ := covariate.FromRecords(records, covariate.TableSpec{
//		GroupField: "treat",
//		Covariates: []string{"age", "educ", "re74"},
//	})
//	res, _ := matching.Optimal(ds, []string{"age", "educ", "re74"},
//		matching.WithMetric(distance.Mahalanobis))
//	rep, _ := balance.Evaluate(ds, res, []string{"age", "educ", "re74"})
//	fmt.Print(rep)
//
// See examples/lalonde for a complete run.
package causalmatch
