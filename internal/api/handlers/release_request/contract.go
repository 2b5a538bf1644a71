package release_request

import (
	"context"

	releaseRequest "github.com/m04kA/SMC-ParkingService/internal/usecase/release_request"
)

type ReleaseRequestUseCase interface {
	Execute(ctx context.Context, req *releaseRequest.Request) (*releaseRequest.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
