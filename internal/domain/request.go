package domain

import "time"

// Requester opaque employee data attached to a request
type Requester struct {
	EmployeeID string
	Name       string
	Email      string
	Phone      *string
	Team       *string
}

// ParkingRequest represents an employee's request for a parking slot
type ParkingRequest struct {
	ID            string
	Requester     Requester
	OfficeID      string
	VehicleType   VehicleType
	VehicleNumber *string
	DurationType  DurationType
	Shift         *Shift // nil для full_day
	ParkingDate   time.Time
	Description   *string
	Status        RequestStatus

	SlotNumber      *int    // только для approved
	RejectionReason *string // только для rejected
	DecidedBy       *string

	CreatedAt time.Time
	DecidedAt *time.Time
	UpdatedAt time.Time

	// Denormalized data for listings
	OfficeName string
}

// IsFullDay returns true if the request covers every shift of the day
func (r *ParkingRequest) IsFullDay() bool {
	return r.DurationType == DurationFullDay
}

// PoolKeys ключи пулов, которые занимает заявка. Для полного дня - все смены по порядку.
func (r *ParkingRequest) PoolKeys() []PoolKey {
	date := NormalizeDate(r.ParkingDate)
	if r.IsFullDay() || r.Shift == nil {
		keys := make([]PoolKey, 0, len(AllShifts))
		for _, sh := range AllShifts {
			keys = append(keys, PoolKey{OfficeID: r.OfficeID, VehicleType: r.VehicleType, Shift: sh, Date: date})
		}
		return keys
	}
	return []PoolKey{{OfficeID: r.OfficeID, VehicleType: r.VehicleType, Shift: *r.Shift, Date: date}}
}

// Covers returns true if the request consumes a unit of the given pool
func (r *ParkingRequest) Covers(key PoolKey) bool {
	for _, k := range r.PoolKeys() {
		if k == key {
			return true
		}
	}
	return false
}

// SlotLabel C-n / B-n для одобренной заявки, пустая строка иначе
func (r *ParkingRequest) SlotLabel() string {
	if r.SlotNumber == nil {
		return ""
	}
	return SlotLabel(r.VehicleType, *r.SlotNumber)
}

// Decision изменение статуса, которое пишет Approval Workflow
type Decision struct {
	RequestID       string
	Status          RequestStatus
	SlotNumber      *int
	RejectionReason *string
	DecidedBy       *string
	DecidedAt       time.Time
}

// RequestFilter фильтр для списков заявок
type RequestFilter struct {
	EmployeeID *string        // заявки сотрудника
	Status     *RequestStatus // фильтр по статусу (опционально)
	OfficeID   *string
	Limit      int // 0 = без ограничения
}
