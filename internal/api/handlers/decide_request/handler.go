package decide_request

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-ParkingService/internal/api/handlers"
	"github.com/m04kA/SMC-ParkingService/internal/api/middleware"
	decideRequest "github.com/m04kA/SMC-ParkingService/internal/usecase/decide_request"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidInput       = "некорректные данные решения"
	msgRequestNotFound    = "заявка не найдена"
	msgAlreadyDecided     = "по заявке уже принято решение"
	msgNoSlots            = "свободных мест нет, заявка осталась без изменений"
)

type Handler struct {
	useCase DecideRequestUseCase
	logger  Logger
}

func NewHandler(useCase DecideRequestUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/admin/approve-request
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	admin, ok := middleware.GetAdmin(r.Context())
	if !ok {
		h.logger.Warn("POST /admin/approve-request - Admin not found in context")
		handlers.RespondUnauthorized(w, "")
		return
	}

	var req DecideRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /admin/approve-request - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &decideRequest.Request{
		RequestID:       req.RequestID,
		Status:          req.Status,
		RejectionReason: req.RejectionReason,
		DecidedBy:       admin.Email,
	})
	if err != nil {
		switch {
		case errors.Is(err, decideRequest.ErrInvalidInput):
			h.logger.Warn("POST /admin/approve-request - Validation failed: request_id=%s, error=%v", req.RequestID, err)
			handlers.RespondValidation(w, err, msgInvalidInput)

		case errors.Is(err, decideRequest.ErrRequestNotFound):
			h.logger.Warn("POST /admin/approve-request - Request not found: request_id=%s", req.RequestID)
			handlers.RespondNotFound(w, msgRequestNotFound)

		case errors.Is(err, decideRequest.ErrInvalidTransition):
			h.logger.Warn("POST /admin/approve-request - Invalid transition: request_id=%s, status=%s", req.RequestID, req.Status)
			handlers.RespondConflict(w, msgAlreadyDecided)

		case errors.Is(err, decideRequest.ErrExhausted):
			h.logger.Warn("POST /admin/approve-request - Pool exhausted: request_id=%s", req.RequestID)
			handlers.RespondConflict(w, msgNoSlots)

		default:
			h.logger.Error("POST /admin/approve-request - Failed to decide: request_id=%s, error=%v", req.RequestID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /admin/approve-request - Request decided: request_id=%s, status=%s, by=%s",
		result.Request.ID, result.Request.Status, admin.Email)
	handlers.RespondJSON(w, http.StatusOK, NewDecideResponse(result.Request))
}
