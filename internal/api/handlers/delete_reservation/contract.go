package delete_reservation

import "context"

type ReservationService interface {
	SoftDelete(ctx context.Context, id int64, actorID int64, role string) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
