package types

import "errors"

// Buffer addressing errors
var (
	// ErrOutOfRange indicates a line or column outside the valid bounds.
	ErrOutOfRange = errors.New("position out of range")

	// ErrLengthExceeded indicates a delete or replace length running past the end of the line.
	ErrLengthExceeded = errors.New("length exceeds end of line")
)

// Element tree errors
var (
	// ErrNotFound indicates that a referenced element ID does not exist.
	ErrNotFound = errors.New("element not found")

	// ErrDuplicateID indicates that an edit would create two elements with the same ID.
	ErrDuplicateID = errors.New("duplicate element id")

	// ErrInvalidOperation indicates a structural edit forbidden on the root or with invalid names.
	ErrInvalidOperation = errors.New("invalid operation")

	// ErrMalformedInput indicates that the buffer could not be decoded into an element tree.
	ErrMalformedInput = errors.New("malformed input")
)
