package requests

import (
	"context"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

// RequestRepository интерфейс Request Ledger (чтение)
type RequestRepository interface {
	List(ctx context.Context, filter domain.RequestFilter) ([]domain.ParkingRequest, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
