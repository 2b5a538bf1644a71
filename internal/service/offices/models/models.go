package models

import (
	"time"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

// CreateOfficeRequest запрос на создание офиса. Ёмкости - на одну смену.
type CreateOfficeRequest struct {
	Name           string `json:"name" validate:"required,max=200"`
	Location       string `json:"location" validate:"required,max=200"`
	TotalCarSlots  int    `json:"total_car_slots" validate:"gte=0,lte=10000"`
	TotalBikeSlots int    `json:"total_bike_slots" validate:"gte=0,lte=10000"`
}

// AvailabilityRequest запрос свободных мест офиса на дату
type AvailabilityRequest struct {
	OfficeID    string
	Date        time.Time
	VehicleType *string // nil - оба типа
}

// OfficeResponse офис в ответах API
type OfficeResponse struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Location       string    `json:"location"`
	TotalCarSlots  int       `json:"total_car_slots"`
	TotalBikeSlots int       `json:"total_bike_slots"`
	CreatedAt      time.Time `json:"created_at"`
}

// PoolAvailability занятость одного пула
type PoolAvailability struct {
	VehicleType string `json:"vehicle_type"`
	Shift       string `json:"shift"`
	Capacity    int    `json:"capacity"`
	Occupied    int    `json:"occupied"`
	Available   int    `json:"available"`
}

// AvailabilityResponse занятость пулов офиса по сменам
type AvailabilityResponse struct {
	OfficeID   string             `json:"office_id"`
	OfficeName string             `json:"office_name"`
	Date       string             `json:"date"`
	Pools      []PoolAvailability `json:"pools"`
}

// FromDomainOffice конвертирует domain модель в DTO
func FromDomainOffice(o *domain.Office) *OfficeResponse {
	if o == nil {
		return nil
	}
	return &OfficeResponse{
		ID:             o.ID,
		Name:           o.Name,
		Location:       o.Location,
		TotalCarSlots:  o.CarCapacity,
		TotalBikeSlots: o.BikeCapacity,
		CreatedAt:      o.CreatedAt,
	}
}

// FromDomainPool конвертирует состояние пула в DTO
func FromDomainPool(p *domain.SlotPool) PoolAvailability {
	return PoolAvailability{
		VehicleType: string(p.Key.VehicleType),
		Shift:       string(p.Key.Shift),
		Capacity:    p.Capacity,
		Occupied:    p.Occupied,
		Available:   p.Available(),
	}
}
