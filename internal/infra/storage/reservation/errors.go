package reservation

import "errors"

var (
	// ErrReservationNotFound is returned when the reservation does not
	// exist.
	ErrReservationNotFound = errors.New("reservation.repository: reservation not found")

	// ErrWindowTaken is returned when the insert hits the exclusion
	// constraint guarding overlapping active reservations. The caller
	// translates it into the same conflict failure as the pre-check.
	ErrWindowTaken = errors.New("reservation.repository: time window already taken")

	// ErrStaleStatus is returned when a guarded status update matched
	// no row because a concurrent writer changed the status first.
	ErrStaleStatus = errors.New("reservation.repository: status changed concurrently")

	// ErrBuildQuery is returned when the SQL query cannot be built.
	ErrBuildQuery = errors.New("reservation.repository: failed to build query")

	// ErrExecQuery is returned when the SQL query fails to execute.
	ErrExecQuery = errors.New("reservation.repository: failed to execute query")

	// ErrScanRow is returned when a result row cannot be scanned.
	ErrScanRow = errors.New("reservation.repository: failed to scan row")
)
