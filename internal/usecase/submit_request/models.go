package submit_request

import (
	"time"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

// Request модель запроса на подачу заявки
type Request struct {
	EmployeeID    string    `json:"emp_id" validate:"required,max=64"`
	Name          string    `json:"name" validate:"required,max=200"`
	Email         string    `json:"email" validate:"required,email"`
	Phone         *string   `json:"phone" validate:"omitempty,max=32"`
	Team          *string   `json:"team" validate:"omitempty,max=100"`
	OfficeID      string    `json:"office_id" validate:"max=64"` // пусто - офис по умолчанию
	VehicleType   string    `json:"vehicle_type" validate:"required,oneof=car bike"`
	VehicleNumber *string   `json:"vehicle_number" validate:"omitempty,max=32"`
	DurationType  string    `json:"duration_type" validate:"required,oneof=single_day full_day"`
	Shift         *string   `json:"shift" validate:"omitempty,oneof=morning evening night"`
	ParkingDate   time.Time `json:"parking_date" validate:"required"`
	Description   *string   `json:"description" validate:"omitempty,max=500"`
}

// Response результат подачи: approved со слотом, waitlist или pending
type Response struct {
	Request *domain.ParkingRequest
}
