package models

import (
	"time"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

// ParkingRequestResponse заявка в ответах API
type ParkingRequestResponse struct {
	ID            string  `json:"id"`
	EmployeeID    string  `json:"emp_id"`
	Name          string  `json:"name"`
	Email         string  `json:"email"`
	Phone         *string `json:"phone,omitempty"`
	Team          *string `json:"team,omitempty"`
	OfficeID      string  `json:"office_id"`
	OfficeName    string  `json:"office_name"`
	VehicleType   string  `json:"vehicle_type"`
	VehicleNumber *string `json:"vehicle_number,omitempty"`
	DurationType  string  `json:"duration_type"`
	Shift         *string `json:"shift,omitempty"`
	ParkingDate   string  `json:"parking_date"` // "2026-06-02"
	Description   *string `json:"description,omitempty"`
	Status        string  `json:"status"`

	SlotNumber      *int    `json:"slot_number,omitempty"`
	SlotLabel       string  `json:"slot_label,omitempty"` // "C-3"
	RejectionReason *string `json:"rejection_reason,omitempty"`
	ApprovedBy      *string `json:"approved_by,omitempty"`

	CreatedAt time.Time  `json:"created_at"`
	DecidedAt *time.Time `json:"decided_at,omitempty"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// FromDomain конвертирует domain модель в DTO
func FromDomain(r *domain.ParkingRequest) *ParkingRequestResponse {
	if r == nil {
		return nil
	}

	resp := &ParkingRequestResponse{
		ID:              r.ID,
		EmployeeID:      r.Requester.EmployeeID,
		Name:            r.Requester.Name,
		Email:           r.Requester.Email,
		Phone:           r.Requester.Phone,
		Team:            r.Requester.Team,
		OfficeID:        r.OfficeID,
		OfficeName:      r.OfficeName,
		VehicleType:     string(r.VehicleType),
		VehicleNumber:   r.VehicleNumber,
		DurationType:    string(r.DurationType),
		ParkingDate:     r.ParkingDate.Format(domain.DateFormat),
		Description:     r.Description,
		Status:          string(r.Status),
		SlotNumber:      r.SlotNumber,
		SlotLabel:       r.SlotLabel(),
		RejectionReason: r.RejectionReason,
		ApprovedBy:      r.DecidedBy,
		CreatedAt:       r.CreatedAt,
		DecidedAt:       r.DecidedAt,
		UpdatedAt:       r.UpdatedAt,
	}

	if r.Shift != nil {
		shift := string(*r.Shift)
		resp.Shift = &shift
	}

	return resp
}

// FromDomainList конвертирует список заявок. Пустой список сериализуется как [], а не null.
func FromDomainList(list []domain.ParkingRequest) []ParkingRequestResponse {
	result := make([]ParkingRequestResponse, 0, len(list))
	for i := range list {
		result = append(result, *FromDomain(&list[i]))
	}
	return result
}
