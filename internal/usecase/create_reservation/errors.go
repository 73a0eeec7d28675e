package create_reservation

import (
	"errors"
	"fmt"

	"github.com/batiparc/BTP-ReservationService/internal/domain"
)

var (
	// ErrResourceNotFound is returned when the target resource does not
	// exist.
	ErrResourceNotFound = errors.New("resource not found")

	// ErrResourceNotBookable is returned when the target resource is
	// deactivated or soft-deleted.
	ErrResourceNotBookable = errors.New("resource is not bookable")

	// ErrValidation is returned on malformed input.
	ErrValidation = errors.New("validation error")

	// ErrInternal is returned on internal use case failures.
	ErrInternal = errors.New("create_reservation: internal error")
)

// ConflictError reports that the requested window overlaps active
// reservations, and carries them so the caller can show who holds the
// slot. Matched with errors.As.
type ConflictError struct {
	Conflicts []*domain.Reservation
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("time window already taken by %d active reservation(s)", len(e.Conflicts))
}
