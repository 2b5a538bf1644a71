package list_offices

import (
	"net/http"

	"github.com/m04kA/SMC-ParkingService/internal/api/handlers"
)

type Handler struct {
	service OfficeService
	logger  Logger
}

func NewHandler(service OfficeService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/offices
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.List(r.Context())
	if err != nil {
		h.logger.Error("GET /offices - Failed to list offices: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /offices - Offices retrieved: count=%d", len(result))
	handlers.RespondJSON(w, http.StatusOK, result)
}
