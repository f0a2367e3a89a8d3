package pipeline

import "errors"

var (
	// ErrInvalidConfig indicates a Config that failed decoding or validation.
	ErrInvalidConfig = errors.New("pipeline: invalid config")

	// ErrNilDataset indicates a nil dataset.
	ErrNilDataset = errors.New("pipeline: dataset is nil")
)
