package resource

import "errors"

var (
	// ErrResourceNotFound is returned when the resource does not exist.
	ErrResourceNotFound = errors.New("resource.repository: resource not found")

	// ErrDuplicateCode is returned when the code is already used by a
	// non-deleted resource (unique partial index violation).
	ErrDuplicateCode = errors.New("resource.repository: code already in use")

	// ErrBuildQuery is returned when the SQL query cannot be built.
	ErrBuildQuery = errors.New("resource.repository: failed to build query")

	// ErrExecQuery is returned when the SQL query fails to execute.
	ErrExecQuery = errors.New("resource.repository: failed to execute query")

	// ErrScanRow is returned when a result row cannot be scanned.
	ErrScanRow = errors.New("resource.repository: failed to scan row")
)
