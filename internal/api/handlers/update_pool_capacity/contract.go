package update_pool_capacity

import (
	"context"

	updatePoolCapacity "github.com/m04kA/SMC-ParkingService/internal/usecase/update_pool_capacity"
)

type UpdatePoolCapacityUseCase interface {
	Execute(ctx context.Context, req *updatePoolCapacity.Request) (*updatePoolCapacity.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
