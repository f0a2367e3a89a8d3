// Package distance computes treated×control dissimilarity tables.
//
// Metrics:
//
//   - Euclidean:   ‖t − c‖₂.
//   - Mahalanobis: sqrt((t − c)ᵀ Σ⁻¹ (t − c)), Σ the sample covariance of a
//     reference sample. The reference is Pooled (treated ∪ control rows) by
//     default; WithReference(Control) restricts it to the control group.
//     A non-invertible Σ fails with ErrSingularCovariance.
//
// Memory:
//
//	A Table holds treated_count × control_count float64 cells. Tables larger
//	than the size guard (WithMaxCells, DefaultMaxCells) are still built, but a
//	warning is logged through the configured slog.Logger.
//
// Every function here is pure: no shared state, deterministic for identical
// inputs, safe to call concurrently.
package distance
