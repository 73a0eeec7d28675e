package domain

import "time"

// ReservationStatus is the state of the validation workflow.
type ReservationStatus string

const (
	StatusPending   ReservationStatus = "pending"
	StatusApproved  ReservationStatus = "approved"
	StatusRefused   ReservationStatus = "refused"
	StatusCancelled ReservationStatus = "cancelled"
)

// ActiveStatuses are the statuses that occupy the resource's time:
// only these participate in conflict detection.
var ActiveStatuses = []ReservationStatus{
	StatusPending,
	StatusApproved,
}

// allowedTransitions is the single source of truth for legal workflow
// moves. REFUSED and CANCELLED are terminal.
var allowedTransitions = map[ReservationStatus][]ReservationStatus{
	StatusPending:   {StatusApproved, StatusRefused, StatusCancelled},
	StatusApproved:  {StatusCancelled},
	StatusRefused:   {},
	StatusCancelled: {},
}

// CanTransition reports whether from -> to is a legal workflow move.
func CanTransition(from, to ReservationStatus) bool {
	for _, allowed := range allowedTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// InitialStatus computes the status of a freshly created reservation
// from the target resource's validation policy.
func InitialStatus(validationRequired bool) ReservationStatus {
	if validationRequired {
		return StatusPending
	}
	return StatusApproved
}

// ValidStatus reports whether s is a known reservation status.
func ValidStatus(s ReservationStatus) bool {
	_, ok := allowedTransitions[s]
	return ok
}

// Reservation books a resource for a date and time window on behalf of
// a construction site. Reservations are immutable except for workflow
// transitions and are never physically removed.
type Reservation struct {
	ID          int64
	ResourceID  int64
	SiteID      int64 // a reservation is always tied to a site
	RequesterID int64

	Date   time.Time // calendar date, time part zero
	Window TimeWindow

	Status ReservationStatus

	// RefusalMotive is set when a validator refuses. Persisted as
	// motif_refus.
	RefusalMotive *string

	// Comment is free text from the requester. Persisted as
	// commentaire.
	Comment *string

	ValidatorID *int64
	ValidatedAt *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt *time.Time
	DeletedBy *int64
}

// IsActive reports whether the reservation occupies its time window
// (PENDING or APPROVED, not tombstoned).
func (r *Reservation) IsActive() bool {
	if r.DeletedAt != nil {
		return false
	}
	return r.Status == StatusPending || r.Status == StatusApproved
}

// CanBeCancelled reports whether the requester may still cancel.
func (r *Reservation) CanBeCancelled() bool {
	return CanTransition(r.Status, StatusCancelled)
}

// ReservationFilter narrows reservation listings.
type ReservationFilter struct {
	ResourceID  *int64
	RequesterID *int64
	StartDate   *time.Time
	EndDate     *time.Time
	Status      *ReservationStatus

	// IncludeInactive adds refused and cancelled reservations.
	IncludeInactive bool
}
