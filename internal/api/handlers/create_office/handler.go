package create_office

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-ParkingService/internal/api/handlers"
	"github.com/m04kA/SMC-ParkingService/internal/service/offices"
	"github.com/m04kA/SMC-ParkingService/internal/service/offices/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidInput       = "некорректные данные офиса"
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

// Handle POST /api/offices
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req models.CreateOfficeRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /offices - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Create(r.Context(), &req)
	if err != nil {
		if errors.Is(err, offices.ErrInvalidInput) {
			h.logger.Warn("POST /offices - Validation failed: %v", err)
			handlers.RespondValidation(w, err, msgInvalidInput)
			return
		}
		h.logger.Error("POST /offices - Failed to create office: name=%q, error=%v", req.Name, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("POST /offices - Office created: id=%s, name=%q", result.ID, result.Name)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
