package get_user_reservations

import (
	"context"

	"github.com/batiparc/BTP-ReservationService/internal/service/reservations/models"
)

type ReservationService interface {
	ListByRequester(ctx context.Context, req *models.ListByRequesterRequest) (*models.ReservationListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
