package release_request

import (
	"github.com/m04kA/SMC-ParkingService/internal/service/requests/models"
	releaseRequest "github.com/m04kA/SMC-ParkingService/internal/usecase/release_request"
)

// ReleaseRequest HTTP request model
type ReleaseRequest struct {
	RequestID string `json:"request_id"`
}

// ReleaseResponse отменённая заявка и заявки, перешедшие из листа ожидания
type ReleaseResponse struct {
	Message  string                          `json:"message"`
	Request  *models.ParkingRequestResponse  `json:"request"`
	Promoted []models.ParkingRequestResponse `json:"promoted"`
}

func FromUseCaseResponse(resp *releaseRequest.Response) *ReleaseResponse {
	return &ReleaseResponse{
		Message:  "Slot released successfully",
		Request:  models.FromDomain(resp.Request),
		Promoted: models.FromDomainList(resp.Promoted),
	}
}
