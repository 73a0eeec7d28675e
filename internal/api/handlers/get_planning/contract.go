package get_planning

import (
	"context"

	buildPlanning "github.com/batiparc/BTP-ReservationService/internal/usecase/build_planning"
)

type BuildPlanningUseCase interface {
	Execute(ctx context.Context, req *buildPlanning.Request) (*buildPlanning.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
