package decide_request

import (
	"context"

	decideRequest "github.com/m04kA/SMC-ParkingService/internal/usecase/decide_request"
)

type DecideRequestUseCase interface {
	Execute(ctx context.Context, req *decideRequest.Request) (*decideRequest.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
