package send_otp

import (
	"context"

	"github.com/m04kA/SMC-ParkingService/internal/service/otp/models"
)

type OTPService interface {
	Send(ctx context.Context, req *models.SendRequest) (*models.SendResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
