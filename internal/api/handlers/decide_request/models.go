package decide_request

import (
	"fmt"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	"github.com/m04kA/SMC-ParkingService/internal/service/requests/models"
)

// DecideRequest HTTP request model
type DecideRequest struct {
	RequestID       string  `json:"request_id"`
	Status          string  `json:"status"`
	RejectionReason *string `json:"rejection_reason,omitempty"`
}

// DecideResponse HTTP response model
type DecideResponse struct {
	Message string                         `json:"message"`
	Request *models.ParkingRequestResponse `json:"request"`
}

func NewDecideResponse(pr *domain.ParkingRequest) *DecideResponse {
	msg := fmt.Sprintf("Request %s successfully", pr.Status)
	if pr.Status == domain.StatusApproved {
		msg = fmt.Sprintf("Request approved successfully, slot %s assigned", pr.SlotLabel())
	}
	return &DecideResponse{
		Message: msg,
		Request: models.FromDomain(pr),
	}
}
