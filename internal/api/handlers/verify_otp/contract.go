package verify_otp

import (
	"context"

	"github.com/m04kA/SMC-ParkingService/internal/service/otp/models"
)

type OTPService interface {
	Verify(ctx context.Context, req *models.VerifyRequest) (*models.VerifyResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
