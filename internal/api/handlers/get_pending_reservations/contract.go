package get_pending_reservations

import (
	"context"

	"github.com/batiparc/BTP-ReservationService/internal/service/reservations/models"
)

type ReservationService interface {
	ListPendingForValidator(ctx context.Context, role string) (*models.ReservationListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
