package decide_request

import "github.com/m04kA/SMC-ParkingService/internal/domain"

// Request решение администратора по заявке
type Request struct {
	RequestID       string  `json:"request_id" validate:"required,max=64"`
	Status          string  `json:"status" validate:"required,oneof=approved rejected"`
	RejectionReason *string `json:"rejection_reason" validate:"omitempty,max=500"`
	DecidedBy       string  `json:"-"` // email администратора из токена
}

// Response заявка после решения
type Response struct {
	Request *domain.ParkingRequest
}
