package create_reservation

import (
	"context"
	"time"

	"github.com/batiparc/BTP-ReservationService/internal/domain"
	"github.com/batiparc/BTP-ReservationService/internal/events"
)

// ResourceRepository is the catalog surface needed to validate the
// target resource.
type ResourceRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Resource, error)
}

// ReservationRepository is the storage surface for conflict detection
// and persistence.
type ReservationRepository interface {
	Create(ctx context.Context, reservation *domain.Reservation) (*domain.Reservation, error)
	FindConflicts(ctx context.Context, resourceID int64, date time.Time, window domain.TimeWindow, excludeID int64) ([]*domain.Reservation, error)
}

// TransactionManager runs the conflict check and the insert as one
// serializable unit.
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// EventPublisher delivers workflow events, fire-and-forget.
type EventPublisher interface {
	Publish(event events.Event)
}

// TimeProvider abstracts the clock for testing.
type TimeProvider interface {
	Now() time.Time
}

// Logger is the logging surface needed by the use case.
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider is the production clock.
type RealTimeProvider struct{}

func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
