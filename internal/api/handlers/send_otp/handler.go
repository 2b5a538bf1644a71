package send_otp

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-ParkingService/internal/api/handlers"
	"github.com/m04kA/SMC-ParkingService/internal/service/otp"
	"github.com/m04kA/SMC-ParkingService/internal/service/otp/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidEmail       = "некорректный email"
)

type Handler struct {
	service OTPService
	logger  Logger
}

func NewHandler(service OTPService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/send-otp
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req models.SendRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /send-otp - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Send(r.Context(), &req)
	if err != nil {
		if errors.Is(err, otp.ErrInvalidInput) {
			h.logger.Warn("POST /send-otp - Validation failed: %v", err)
			handlers.RespondValidation(w, err, msgInvalidEmail)
			return
		}
		h.logger.Error("POST /send-otp - Failed to send OTP: email=%s, error=%v", req.Email, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("POST /send-otp - OTP sent: email=%s", req.Email)
	handlers.RespondJSON(w, http.StatusOK, result)
}
