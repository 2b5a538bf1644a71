package get_dashboard

import (
	"context"
	"time"

	"github.com/m04kA/SMC-ParkingService/internal/service/dashboard/models"
)

type DashboardService interface {
	Get(ctx context.Context, date *time.Time) (*models.DashboardResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
