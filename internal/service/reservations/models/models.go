package models

import (
	"time"

	"github.com/batiparc/BTP-ReservationService/internal/domain"
)

// Request models

// ApproveRequest approves a pending reservation.
type ApproveRequest struct {
	ValidatorID int64  `json:"validatorId"`
	Role        string `json:"role"`
}

// RefuseRequest refuses a pending reservation.
type RefuseRequest struct {
	ValidatorID int64   `json:"validatorId"`
	Role        string  `json:"role"`
	Motive      *string `json:"motive,omitempty"`
}

// CancelRequest cancels a reservation on behalf of its requester.
type CancelRequest struct {
	RequesterID int64 `json:"requesterId"`
}

// ListByRequesterRequest lists the reservations of one requester.
type ListByRequesterRequest struct {
	RequesterID int64   `json:"requesterId"`
	Status      *string `json:"status,omitempty"`
}

// Response models

// ReservationResponse is the reservation DTO.
type ReservationResponse struct {
	ID          int64  `json:"id"`
	ResourceID  int64  `json:"resourceId"`
	SiteID      int64  `json:"siteId"`
	RequesterID int64  `json:"requesterId"`
	Date        string `json:"date"`        // "2026-03-02"
	WindowStart string `json:"windowStart"` // "08:00"
	WindowEnd   string `json:"windowEnd"`   // "12:00"
	Status      string `json:"status"`

	RefusalMotive *string `json:"refusalMotive,omitempty"`
	Comment       *string `json:"comment,omitempty"`

	ValidatorID *int64  `json:"validatorId,omitempty"`
	ValidatedAt *string `json:"validatedAt,omitempty"` // RFC 3339

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ReservationListResponse is the listing DTO.
type ReservationListResponse struct {
	Reservations []ReservationResponse `json:"reservations"`
}

// FromDomainReservation converts a domain reservation into the DTO.
func FromDomainReservation(r *domain.Reservation) *ReservationResponse {
	if r == nil {
		return nil
	}

	resp := &ReservationResponse{
		ID:            r.ID,
		ResourceID:    r.ResourceID,
		SiteID:        r.SiteID,
		RequesterID:   r.RequesterID,
		Date:          r.Date.Format(domain.DateFormat),
		WindowStart:   r.Window.Start.String(),
		WindowEnd:     r.Window.End.String(),
		Status:        string(r.Status),
		RefusalMotive: r.RefusalMotive,
		Comment:       r.Comment,
		ValidatorID:   r.ValidatorID,
		CreatedAt:     r.CreatedAt,
		UpdatedAt:     r.UpdatedAt,
	}

	if r.ValidatedAt != nil {
		validated := r.ValidatedAt.Format(time.RFC3339)
		resp.ValidatedAt = &validated
	}

	return resp
}

// FromDomainReservationList converts a domain reservation list into
// the DTO.
func FromDomainReservationList(reservations []*domain.Reservation) *ReservationListResponse {
	resp := &ReservationListResponse{
		Reservations: make([]ReservationResponse, 0, len(reservations)),
	}
	for _, r := range reservations {
		if dto := FromDomainReservation(r); dto != nil {
			resp.Reservations = append(resp.Reservations, *dto)
		}
	}
	return resp
}

// ToDomainStatus converts a status string with validation.
func ToDomainStatus(status string) (domain.ReservationStatus, bool) {
	s := domain.ReservationStatus(status)
	if !domain.ValidStatus(s) {
		return "", false
	}
	return s, true
}
