package reservations

import (
	"context"
	"time"

	"github.com/batiparc/BTP-ReservationService/internal/domain"
	"github.com/batiparc/BTP-ReservationService/internal/events"
)

// ReservationRepository is the storage surface needed by the workflow
// service.
type ReservationRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Reservation, error)
	ListByResourceAndDateRange(ctx context.Context, resourceID int64, from, to time.Time, includeInactive bool) ([]*domain.Reservation, error)
	ListByRequester(ctx context.Context, requesterID int64, status *domain.ReservationStatus) ([]*domain.Reservation, error)
	ListPending(ctx context.Context) ([]*domain.Reservation, error)
	UpdateStatusGuarded(ctx context.Context, id int64, expected, next domain.ReservationStatus, validatorID *int64, motive *string) error
	SoftDelete(ctx context.Context, id int64, actorID int64) error
}

// EventPublisher delivers workflow events, fire-and-forget.
type EventPublisher interface {
	Publish(event events.Event)
}

// Logger is the logging surface needed by the workflow service.
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
