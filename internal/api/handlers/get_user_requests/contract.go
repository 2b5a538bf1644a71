package get_user_requests

import (
	"context"

	"github.com/m04kA/SMC-ParkingService/internal/service/requests/models"
)

type RequestService interface {
	ListByEmployee(ctx context.Context, employeeID string) ([]models.ParkingRequestResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
