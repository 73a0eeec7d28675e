package create_reservation

import (
	"time"

	"github.com/batiparc/BTP-ReservationService/internal/domain"
	createReservation "github.com/batiparc/BTP-ReservationService/internal/usecase/create_reservation"
)

// CreateReservationRequest HTTP request model
type CreateReservationRequest struct {
	ResourceID  int64   `json:"resourceId"`
	SiteID      int64   `json:"siteId"`
	Date        string  `json:"date"`        // "2026-03-02"
	WindowStart string  `json:"windowStart"` // "08:00"
	WindowEnd   string  `json:"windowEnd"`   // "12:00"
	Comment     *string `json:"comment,omitempty"`
}

// ConflictEntry is one reservation already holding the window.
type ConflictEntry struct {
	ID          int64  `json:"id"`
	WindowStart string `json:"windowStart"`
	WindowEnd   string `json:"windowEnd"`
	Status      string `json:"status"`
	SiteID      int64  `json:"siteId"`
}

// ConflictResponse is the 409 body listing the blocking reservations.
type ConflictResponse struct {
	Error     string          `json:"error"`
	Conflicts []ConflictEntry `json:"conflicts"`
}

// ToUseCaseRequest parses the date and builds the use case request.
func (r *CreateReservationRequest) ToUseCaseRequest(requesterID int64) (*createReservation.Request, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, err
	}

	return &createReservation.Request{
		ResourceID:  r.ResourceID,
		SiteID:      r.SiteID,
		RequesterID: requesterID,
		Date:        date,
		WindowStart: r.WindowStart,
		WindowEnd:   r.WindowEnd,
		Comment:     r.Comment,
	}, nil
}

// ToConflictResponse converts a conflict error into the 409 body.
func ToConflictResponse(message string, conflicts []*domain.Reservation) *ConflictResponse {
	resp := &ConflictResponse{
		Error:     message,
		Conflicts: make([]ConflictEntry, 0, len(conflicts)),
	}
	for _, c := range conflicts {
		resp.Conflicts = append(resp.Conflicts, ConflictEntry{
			ID:          c.ID,
			WindowStart: c.Window.Start.String(),
			WindowEnd:   c.Window.End.String(),
			Status:      string(c.Status),
			SiteID:      c.SiteID,
		})
	}
	return resp
}
