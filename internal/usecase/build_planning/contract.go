package build_planning

import (
	"context"
	"time"

	"github.com/batiparc/BTP-ReservationService/internal/domain"
)

// ResourceRepository is the catalog surface needed for the planning
// header.
type ResourceRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Resource, error)
}

// ReservationRepository is the storage surface for the planning range.
type ReservationRepository interface {
	ListByResourceAndDateRange(ctx context.Context, resourceID int64, from, to time.Time, includeInactive bool) ([]*domain.Reservation, error)
}

// IdentityServiceClient resolves requester display names.
type IdentityServiceClient interface {
	DisplayNameOrUnknown(ctx context.Context, userID int64) string
}

// SiteServiceClient resolves site names.
type SiteServiceClient interface {
	NameOrUnknown(ctx context.Context, siteID int64) string
}

// Logger is the logging surface needed by the use case.
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
