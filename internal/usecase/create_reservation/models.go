package create_reservation

import (
	"time"

	"github.com/batiparc/BTP-ReservationService/internal/domain"
)

// Request carries a reservation request for one resource, date and
// time window.
type Request struct {
	ResourceID  int64
	SiteID      int64
	RequesterID int64
	Date        time.Time
	WindowStart string
	WindowEnd   string
	Comment     *string
}

// Response is the created reservation.
type Response struct {
	ID          int64     `json:"id"`
	ResourceID  int64     `json:"resourceId"`
	SiteID      int64     `json:"siteId"`
	RequesterID int64     `json:"requesterId"`
	Date        string    `json:"date"`
	WindowStart string    `json:"windowStart"`
	WindowEnd   string    `json:"windowEnd"`
	Status      string    `json:"status"`
	Comment     *string   `json:"comment,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func toResponse(r *domain.Reservation) *Response {
	return &Response{
		ID:          r.ID,
		ResourceID:  r.ResourceID,
		SiteID:      r.SiteID,
		RequesterID: r.RequesterID,
		Date:        r.Date.Format(domain.DateFormat),
		WindowStart: r.Window.Start.String(),
		WindowEnd:   r.Window.End.String(),
		Status:      string(r.Status),
		Comment:     r.Comment,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}
