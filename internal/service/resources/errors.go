package resources

import "errors"

var (
	// ErrResourceNotFound is returned when the resource does not exist
	// or is soft-deleted.
	ErrResourceNotFound = errors.New("resource not found")

	// ErrDuplicateCode is returned when the code is already used by a
	// non-deleted resource.
	ErrDuplicateCode = errors.New("resource code already in use")

	// ErrInvalidInput is returned on malformed catalog input.
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal is returned on internal service failures.
	ErrInternal = errors.New("resources service: internal error")
)
