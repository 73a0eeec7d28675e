package events

import (
	"time"

	"github.com/google/uuid"
)

// Event is a domain event emitted after a successful state change.
// Delivery is at-least-once; consumers dedupe on EventID.
type Event interface {
	EventID() string
	EventName() string
	OccurredAt() time.Time
}

// base carries the fields shared by every reservation event.
type base struct {
	ID            string
	At            time.Time
	ReservationID int64
	ResourceID    int64
	SiteID        int64
	RequesterID   int64
}

func newBase(reservationID, resourceID, siteID, requesterID int64, at time.Time) base {
	return base{
		ID:            uuid.NewString(),
		At:            at,
		ReservationID: reservationID,
		ResourceID:    resourceID,
		SiteID:        siteID,
		RequesterID:   requesterID,
	}
}

func (b base) EventID() string       { return b.ID }
func (b base) OccurredAt() time.Time { return b.At }

// ReservationCreated is emitted after a reservation is persisted.
type ReservationCreated struct {
	base
	Status string
}

func (ReservationCreated) EventName() string { return "reservation.created" }

// ReservationApproved is emitted after a validator approves.
type ReservationApproved struct {
	base
	ValidatorID int64
}

func (ReservationApproved) EventName() string { return "reservation.approved" }

// ReservationRefused is emitted after a validator refuses.
type ReservationRefused struct {
	base
	ValidatorID   int64
	RefusalMotive *string
}

func (ReservationRefused) EventName() string { return "reservation.refused" }

// ReservationCancelled is emitted after the requester cancels.
type ReservationCancelled struct {
	base
}

func (ReservationCancelled) EventName() string { return "reservation.cancelled" }

// NewReservationCreated builds the creation event.
func NewReservationCreated(reservationID, resourceID, siteID, requesterID int64, status string, at time.Time) ReservationCreated {
	return ReservationCreated{
		base:   newBase(reservationID, resourceID, siteID, requesterID, at),
		Status: status,
	}
}

// NewReservationApproved builds the approval event.
func NewReservationApproved(reservationID, resourceID, siteID, requesterID, validatorID int64, at time.Time) ReservationApproved {
	return ReservationApproved{
		base:        newBase(reservationID, resourceID, siteID, requesterID, at),
		ValidatorID: validatorID,
	}
}

// NewReservationRefused builds the refusal event.
func NewReservationRefused(reservationID, resourceID, siteID, requesterID, validatorID int64, motive *string, at time.Time) ReservationRefused {
	return ReservationRefused{
		base:          newBase(reservationID, resourceID, siteID, requesterID, at),
		ValidatorID:   validatorID,
		RefusalMotive: motive,
	}
}

// NewReservationCancelled builds the cancellation event.
func NewReservationCancelled(reservationID, resourceID, siteID, requesterID int64, at time.Time) ReservationCancelled {
	return ReservationCancelled{
		base: newBase(reservationID, resourceID, siteID, requesterID, at),
	}
}
