package domain

import "time"

// Office represents a parking location. Capacities are per shift.
type Office struct {
	ID           string
	Name         string
	Location     string
	CarCapacity  int
	BikeCapacity int
	CreatedAt    time.Time
}

// CapacityFor ёмкость пула по умолчанию для типа транспорта
func (o *Office) CapacityFor(vt VehicleType) int {
	if vt == VehicleBike {
		return o.BikeCapacity
	}
	return o.CarCapacity
}
