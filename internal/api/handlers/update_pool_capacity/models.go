package update_pool_capacity

import (
	"time"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	"github.com/m04kA/SMC-ParkingService/internal/service/requests/models"
	updatePoolCapacity "github.com/m04kA/SMC-ParkingService/internal/usecase/update_pool_capacity"
)

// UpdateCapacityRequest HTTP request model
type UpdateCapacityRequest struct {
	OfficeID    string `json:"office_id"`
	VehicleType string `json:"vehicle_type"`
	Shift       string `json:"shift"`
	ParkingDate string `json:"parking_date"`
	Capacity    *int   `json:"capacity"`
}

// UpdateCapacityResponse HTTP response model
type UpdateCapacityResponse struct {
	OfficeID         string                          `json:"office_id"`
	VehicleType      string                          `json:"vehicle_type"`
	Shift            string                          `json:"shift"`
	ParkingDate      string                          `json:"parking_date"`
	Capacity         int                             `json:"capacity"`
	PreviousCapacity int                             `json:"previous_capacity"`
	Occupied         int                             `json:"occupied"`
	Available        int                             `json:"available"`
	Promoted         []models.ParkingRequestResponse `json:"promoted"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *UpdateCapacityRequest) ToUseCaseRequest() (*updatePoolCapacity.Request, error) {
	var parkingDate time.Time
	if r.ParkingDate != "" {
		d, err := time.Parse(domain.DateFormat, r.ParkingDate)
		if err != nil {
			return nil, err
		}
		parkingDate = d
	}

	capacity := -1
	if r.Capacity != nil {
		capacity = *r.Capacity
	}

	return &updatePoolCapacity.Request{
		OfficeID:    r.OfficeID,
		VehicleType: r.VehicleType,
		Shift:       r.Shift,
		ParkingDate: parkingDate,
		Capacity:    capacity,
	}, nil
}

func FromUseCaseResponse(resp *updatePoolCapacity.Response) *UpdateCapacityResponse {
	p := resp.Pool
	return &UpdateCapacityResponse{
		OfficeID:         p.Key.OfficeID,
		VehicleType:      string(p.Key.VehicleType),
		Shift:            string(p.Key.Shift),
		ParkingDate:      p.Key.Date.Format(domain.DateFormat),
		Capacity:         p.Capacity,
		PreviousCapacity: resp.PreviousCapacity,
		Occupied:         p.Occupied,
		Available:        p.Available(),
		Promoted:         models.FromDomainList(resp.Promoted),
	}
}
