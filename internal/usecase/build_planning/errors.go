package build_planning

import "errors"

var (
	// ErrResourceNotFound is returned when the resource does not exist.
	ErrResourceNotFound = errors.New("resource not found")

	// ErrValidation is returned on malformed input.
	ErrValidation = errors.New("validation error")

	// ErrInternal is returned on internal use case failures.
	ErrInternal = errors.New("build_planning: internal error")
)
