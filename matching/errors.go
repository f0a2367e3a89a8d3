package matching

import "errors"

// Sentinel errors returned by the matchers.
var (
	// ErrBadK indicates k < 1.
	ErrBadK = errors.New("matching: k must be >= 1")

	// ErrInsufficientControls reports greedy exhaustion. It is only returned
	// under WithStrictExhaustion, together with the partial Result.
	ErrInsufficientControls = errors.New("matching: not enough controls available")

	// ErrReplacementUnsupported indicates WithReplacement passed to Optimal.
	ErrReplacementUnsupported = errors.New("matching: optimal matching does not support replacement")

	// ErrUnknownMethod indicates an unrecognised method name.
	ErrUnknownMethod = errors.New("matching: unknown method")

	// ErrNilTable indicates a nil distance table.
	ErrNilTable = errors.New("matching: distance table is nil")

	// ErrNilDataset indicates a nil dataset.
	ErrNilDataset = errors.New("matching: dataset is nil")
)
