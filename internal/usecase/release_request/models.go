package release_request

import "github.com/m04kA/SMC-ParkingService/internal/domain"

// Request отмена одобренной заявки
type Request struct {
	RequestID  string `json:"request_id" validate:"required,max=64"`
	ReleasedBy string `json:"-"`
}

// Response отменённая заявка и заявки, получившие освободившиеся места
type Response struct {
	Request  *domain.ParkingRequest
	Promoted []domain.ParkingRequest
}
