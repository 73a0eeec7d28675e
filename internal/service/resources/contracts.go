package resources

import (
	"context"

	"github.com/batiparc/BTP-ReservationService/internal/domain"
)

// ResourceRepository is the storage surface needed by the catalog.
type ResourceRepository interface {
	Create(ctx context.Context, res *domain.Resource) (*domain.Resource, error)
	GetByID(ctx context.Context, id int64) (*domain.Resource, error)
	GetByCode(ctx context.Context, code string) (*domain.Resource, error)
	Update(ctx context.Context, id int64, upd domain.ResourceUpdate) error
	SoftDelete(ctx context.Context, id int64, actorID int64) error
	List(ctx context.Context, filter domain.ResourceFilter) ([]*domain.Resource, error)
}

// Logger is the logging surface needed by the catalog service.
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
