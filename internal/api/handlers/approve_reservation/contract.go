package approve_reservation

import (
	"context"

	"github.com/batiparc/BTP-ReservationService/internal/service/reservations/models"
)

type ReservationService interface {
	Approve(ctx context.Context, id int64, req *models.ApproveRequest) (*models.ReservationResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
