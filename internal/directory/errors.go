package directory

import "errors"

var (
	// ErrTypeMismatch is returned when a setter receives a value of the wrong type or shape.
	ErrTypeMismatch = errors.New("directory: value has the wrong type")

	// ErrInvalidOperation is returned when a mutation is not allowed for the entry's kind or state.
	ErrInvalidOperation = errors.New("directory: invalid operation")

	// ErrValueTooLarge is returned when a name or size exceeds what the record can hold.
	ErrValueTooLarge = errors.New("directory: value too large")

	// ErrNotFound is returned when a path does not resolve to an entry.
	ErrNotFound = errors.New("directory: entry not found")
)
