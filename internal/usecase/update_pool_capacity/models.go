package update_pool_capacity

import (
	"time"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

// Request новая ёмкость одного пула
type Request struct {
	OfficeID    string    `json:"office_id" validate:"required,max=64"`
	VehicleType string    `json:"vehicle_type" validate:"required,oneof=car bike"`
	Shift       string    `json:"shift" validate:"required,oneof=morning evening night"`
	ParkingDate time.Time `json:"parking_date" validate:"required"`
	Capacity    int       `json:"capacity" validate:"gte=0,lte=10000"`
}

// Response пул после изменения
type Response struct {
	Pool             *domain.SlotPool
	PreviousCapacity int
	Promoted         []domain.ParkingRequest
}

func (r *Request) key() domain.PoolKey {
	return domain.PoolKey{
		OfficeID:    r.OfficeID,
		VehicleType: domain.VehicleType(r.VehicleType),
		Shift:       domain.Shift(r.Shift),
		Date:        domain.NormalizeDate(r.ParkingDate),
	}
}
