package list_requests

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-ParkingService/internal/api/handlers"
	"github.com/m04kA/SMC-ParkingService/internal/service/requests"
)

const (
	msgInvalidStatus = "некорректный статус заявки"
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

// Handle GET /api/parking-requests?status=pending
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	status := r.URL.Query().Get("status")

	result, err := h.service.ListByStatus(r.Context(), status)
	if err != nil {
		if errors.Is(err, requests.ErrInvalidInput) {
			h.logger.Warn("GET /parking-requests - Invalid status: %q", status)
			handlers.RespondValidation(w, err, msgInvalidStatus)
			return
		}
		h.logger.Error("GET /parking-requests - Failed to list requests: status=%q, error=%v", status, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /parking-requests - Requests retrieved: status=%q, count=%d", status, len(result))
	handlers.RespondJSON(w, http.StatusOK, result)
}
