// Package balance measures covariate balance between treated and control
// units before and after matching.
//
// For every requested covariate a Record reports:
//
//	mean / std of the matched treated units
//	mean / std of the matched controls, averaged per pair
//	SMD before and after, scaled by the full-sample std of the covariate
//	variance ratio var(treated)/var(control), before and after
//	two-sample Kolmogorov–Smirnov statistic, before and after
//
// "After" statistics use two extractions of the matched controls.
// SMD and variance ratio use the per-pair average of a pair's controls.
// KS compares raw distributions and uses every individual matched control
// value (MatchedGroups.Flattened). With k=1 both coincide.
//
// All standard deviations and variances are sample estimates (n−1).
// A statistic with a zero denominator or fewer than two observations is
// Undefined (NaN). It is listed in Record.Undefined and reported by
// Report.Err, and the remaining fields and covariates are unaffected.
//
// Moments and the KS statistic come from gonum.org/v1/gonum/stat.
package balance
