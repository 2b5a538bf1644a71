package domain

// VehicleType тип транспорта, у каждого свой пул мест
type VehicleType string

const (
	VehicleCar  VehicleType = "car"
	VehicleBike VehicleType = "bike"
)

var AllVehicleTypes = []VehicleType{VehicleCar, VehicleBike}

func (v VehicleType) IsValid() bool {
	return v == VehicleCar || v == VehicleBike
}

// SlotPrefix префикс номера места: C-12, B-3
func (v VehicleType) SlotPrefix() string {
	if v == VehicleBike {
		return "B"
	}
	return "C"
}

// Shift смена, на которую бронируется место
type Shift string

const (
	ShiftMorning Shift = "morning"
	ShiftEvening Shift = "evening"
	ShiftNight   Shift = "night"
)

// AllShifts порядок резервирования для заявки на полный день
var AllShifts = []Shift{ShiftMorning, ShiftEvening, ShiftNight}

func (s Shift) IsValid() bool {
	return s == ShiftMorning || s == ShiftEvening || s == ShiftNight
}

// DurationType одна смена или полный день
type DurationType string

const (
	DurationSingleDay DurationType = "single_day"
	DurationFullDay   DurationType = "full_day"
)

func (d DurationType) IsValid() bool {
	return d == DurationSingleDay || d == DurationFullDay
}
