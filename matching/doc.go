// Package matching pairs treated units with control units over a distance
// table.
//
// Greedy:
//
//	Treated units are visited in dataset order. Each takes the k nearest
//	controls still available (ties broken by ascending control id); without
//	replacement the chosen controls are then retired. When fewer than k
//	controls remain, processing stops and the current unit and every later
//	one are reported as unmatched. That early stop is a documented partial
//	result, not an error, unless WithStrictExhaustion is set.
//
// Optimal:
//
//	k=1 solves the minimum-total-distance one-to-one assignment exactly with
//	the Kuhn–Munkres (Hungarian) algorithm over min(treated, control) pairs.
//	k>1 gives every treated unit its k globally nearest controls independently,
//	so a control may appear in several pairs. That asymmetry with Greedy is
//	intentional.
//
// Results are immutable and deterministic: identical input, metric, k and
// replacement policy always produce an identical Result.
//
// Complexity:
//
//	Greedy         O(t·c·log c) after the O(t·c) distance table.
//	Optimal, k=1   O(n²·m) with n=min(t,c), m=max(t,c).
//	Optimal, k>1   O(t·c·log c).
package matching
