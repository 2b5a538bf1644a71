package submit_request

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	"github.com/m04kA/SMC-ParkingService/internal/service/requests/models"
	submitRequest "github.com/m04kA/SMC-ParkingService/internal/usecase/submit_request"
)

// SubmitRequest HTTP request model
type SubmitRequest struct {
	EmployeeID    string  `json:"emp_id"`
	Name          string  `json:"name"`
	Email         string  `json:"email"`
	Phone         *string `json:"phone,omitempty"`
	Team          *string `json:"team,omitempty"`
	OfficeID      string  `json:"office_id,omitempty"`
	VehicleType   string  `json:"vehicle_type"`
	VehicleNumber *string `json:"vehicle_number,omitempty"`
	DurationType  string  `json:"duration_type,omitempty"` // по умолчанию single_day
	Shift         *string `json:"shift,omitempty"`
	ParkingDate   string  `json:"parking_date"` // "2026-06-02"
	Description   *string `json:"description,omitempty"`
}

// SubmitResponse HTTP response model
type SubmitResponse struct {
	ID         string                         `json:"id"`
	Status     string                         `json:"status"`
	SlotNumber *int                           `json:"slot_number,omitempty"`
	SlotLabel  string                         `json:"slot_label,omitempty"`
	Message    string                         `json:"message"`
	Request    *models.ParkingRequestResponse `json:"request"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *SubmitRequest) ToUseCaseRequest() (*submitRequest.Request, error) {
	var parkingDate time.Time
	if r.ParkingDate != "" {
		d, err := time.Parse(domain.DateFormat, r.ParkingDate)
		if err != nil {
			return nil, err
		}
		parkingDate = d
	}

	durationType := r.DurationType
	if durationType == "" {
		durationType = string(domain.DurationSingleDay)
	}

	return &submitRequest.Request{
		EmployeeID:    r.EmployeeID,
		Name:          r.Name,
		Email:         r.Email,
		Phone:         r.Phone,
		Team:          r.Team,
		OfficeID:      r.OfficeID,
		VehicleType:   r.VehicleType,
		VehicleNumber: r.VehicleNumber,
		DurationType:  durationType,
		Shift:         r.Shift,
		ParkingDate:   parkingDate,
		Description:   r.Description,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *submitRequest.Response) *SubmitResponse {
	pr := resp.Request
	out := &SubmitResponse{
		ID:         pr.ID,
		Status:     string(pr.Status),
		SlotNumber: pr.SlotNumber,
		SlotLabel:  pr.SlotLabel(),
		Request:    models.FromDomain(pr),
	}

	switch pr.Status {
	case domain.StatusApproved:
		out.Message = fmt.Sprintf("Parking slot %s allocated", out.SlotLabel)
	case domain.StatusWaitlist:
		out.Message = "No slots available, request added to waitlist"
	default:
		out.Message = "Request submitted for admin approval"
	}
	return out
}
