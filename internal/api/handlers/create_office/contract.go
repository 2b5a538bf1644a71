package create_office

import (
	"context"

	"github.com/m04kA/SMC-ParkingService/internal/service/offices/models"
)

type OfficeService interface {
	Create(ctx context.Context, req *models.CreateOfficeRequest) (*models.OfficeResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
