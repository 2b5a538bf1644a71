package get_user_requests

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ParkingService/internal/api/handlers"
	"github.com/m04kA/SMC-ParkingService/internal/service/requests"
)

const (
	msgInvalidEmployeeID = "некорректный ID сотрудника"
)

type Handler struct {
	service RequestService
	logger  Logger
}

func NewHandler(service RequestService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/parking-requests/user/{empId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	empID := mux.Vars(r)["empId"]

	result, err := h.service.ListByEmployee(r.Context(), empID)
	if err != nil {
		if errors.Is(err, requests.ErrInvalidInput) {
			h.logger.Warn("GET /parking-requests/user/{empId} - Invalid employee ID: %q", empID)
			handlers.RespondValidation(w, err, msgInvalidEmployeeID)
			return
		}
		h.logger.Error("GET /parking-requests/user/{empId} - Failed to get requests: emp_id=%s, error=%v", empID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /parking-requests/user/{empId} - Requests retrieved: emp_id=%s, count=%d", empID, len(result))
	handlers.RespondJSON(w, http.StatusOK, result)
}
