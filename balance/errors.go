package balance

import "errors"

// Sentinel errors returned by the evaluator.
var (
	// ErrUndefinedStatistic marks a statistic that could not be computed
	// (zero denominator or too few observations). Report.Err wraps it.
	ErrUndefinedStatistic = errors.New("balance: undefined statistic")

	// ErrNilResult indicates a nil matching result.
	ErrNilResult = errors.New("balance: matching result is nil")

	// ErrNilDataset indicates a nil dataset.
	ErrNilDataset = errors.New("balance: dataset is nil")

	// ErrGroupMismatch indicates a matched unit whose dataset group contradicts
	// its role in the pair.
	ErrGroupMismatch = errors.New("balance: matched unit belongs to the wrong group")
)
