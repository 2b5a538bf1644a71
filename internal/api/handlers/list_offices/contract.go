package list_offices

import (
	"context"

	"github.com/m04kA/SMC-ParkingService/internal/service/offices/models"
)

type OfficeService interface {
	List(ctx context.Context) ([]models.OfficeResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
