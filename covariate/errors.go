package covariate

import "errors"

// Sentinel errors returned by dataset construction and extraction.
var (
	// ErrInvalidSchema indicates a missing group indicator, an unknown or
	// duplicated covariate name, or an empty covariate list.
	ErrInvalidSchema = errors.New("covariate: invalid schema")

	// ErrInvalidGroup indicates a group-indicator value outside {0,1}.
	// It wraps ErrInvalidSchema.
	ErrInvalidGroup = wrapSchema("group indicator must be 0 or 1")

	// ErrEmptyGroup indicates that the treated or the control group has no units.
	// It wraps ErrInvalidSchema.
	ErrEmptyGroup = wrapSchema("each group needs at least one unit")

	// ErrDuplicateID indicates two units sharing the same identifier.
	ErrDuplicateID = errors.New("covariate: duplicate unit id")

	// ErrEmptyID indicates a unit without an identifier.
	ErrEmptyID = errors.New("covariate: empty unit id")

	// ErrVectorLength indicates a unit whose vector length differs from the schema length.
	ErrVectorLength = errors.New("covariate: vector length does not match schema")

	// ErrMissingValue indicates a NaN or ±Inf covariate value.
	ErrMissingValue = errors.New("covariate: missing or non-finite value")

	// ErrUnknownUnit indicates a lookup of an id not present in the dataset.
	ErrUnknownUnit = errors.New("covariate: unknown unit id")
)

// schemaError is a leaf error that also matches ErrInvalidSchema.
type schemaError struct{ msg string }

func (e *schemaError) Error() string        { return "covariate: " + e.msg }
func (e *schemaError) Is(target error) bool { return target == ErrInvalidSchema }

func wrapSchema(msg string) error { return &schemaError{msg: msg} }
