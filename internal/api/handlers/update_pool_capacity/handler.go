package update_pool_capacity

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-ParkingService/internal/api/handlers"
	updatePoolCapacity "github.com/m04kA/SMC-ParkingService/internal/usecase/update_pool_capacity"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDate        = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidInput       = "некорректные параметры пула"
	msgBelowOccupied      = "ёмкость не может быть меньше числа занятых мест"
	msgOfficeNotFound     = "офис не найден"
)

type Handler struct {
	useCase UpdatePoolCapacityUseCase
	logger  Logger
}

func NewHandler(useCase UpdatePoolCapacityUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/admin/pools/capacity
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req UpdateCapacityRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /admin/pools/capacity - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest()
	if err != nil {
		h.logger.Warn("POST /admin/pools/capacity - Invalid parking_date %q: %v", req.ParkingDate, err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, updatePoolCapacity.ErrBelowOccupied):
			h.logger.Warn("POST /admin/pools/capacity - Capacity below occupied: office_id=%s, capacity=%d", req.OfficeID, useCaseReq.Capacity)
			handlers.RespondBadRequest(w, msgBelowOccupied)

		case errors.Is(err, updatePoolCapacity.ErrInvalidInput):
			h.logger.Warn("POST /admin/pools/capacity - Validation failed: %v", err)
			handlers.RespondValidation(w, err, msgInvalidInput)

		case errors.Is(err, updatePoolCapacity.ErrOfficeNotFound):
			h.logger.Warn("POST /admin/pools/capacity - Office not found: office_id=%s", req.OfficeID)
			handlers.RespondNotFound(w, msgOfficeNotFound)

		default:
			h.logger.Error("POST /admin/pools/capacity - Failed to update capacity: office_id=%s, error=%v", req.OfficeID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /admin/pools/capacity - Capacity updated: pool=%s, %d -> %d, promoted=%d",
		result.Pool.Key, result.PreviousCapacity, result.Pool.Capacity, len(result.Promoted))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
