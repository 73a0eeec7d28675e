package reservations

import "errors"

var (
	// ErrReservationNotFound is returned when the reservation does not
	// exist.
	ErrReservationNotFound = errors.New("reservation not found")

	// ErrForbidden is returned when the caller lacks the validator
	// role or is not the original requester.
	ErrForbidden = errors.New("operation not allowed for this user")

	// ErrInvalidTransition is returned on an illegal workflow move.
	ErrInvalidTransition = errors.New("invalid reservation status transition")

	// ErrInvalidInput is returned on malformed input.
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal is returned on internal service failures.
	ErrInternal = errors.New("reservations service: internal error")
)
