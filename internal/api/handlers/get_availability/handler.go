package get_availability

import (
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ParkingService/internal/api/handlers"
	"github.com/m04kA/SMC-ParkingService/internal/domain"
	"github.com/m04kA/SMC-ParkingService/internal/service/offices"
	"github.com/m04kA/SMC-ParkingService/internal/service/offices/models"
)

const (
	msgInvalidDate    = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgMissingDate    = "параметр date обязателен"
	msgInvalidInput   = "некорректные параметры запроса"
	msgOfficeNotFound = "офис не найден"
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

// Handle GET /api/offices/{officeId}/availability?date=2026-06-02&vehicle_type=car
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	officeID := mux.Vars(r)["officeId"]
	query := r.URL.Query()

	rawDate := query.Get("date")
	if rawDate == "" {
		h.logger.Warn("GET /offices/{officeId}/availability - Missing date: office_id=%s", officeID)
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}
	date, err := time.Parse(domain.DateFormat, rawDate)
	if err != nil {
		h.logger.Warn("GET /offices/{officeId}/availability - Invalid date %q: %v", rawDate, err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	req := &models.AvailabilityRequest{OfficeID: officeID, Date: date}
	if vt := query.Get("vehicle_type"); vt != "" {
		req.VehicleType = &vt
	}

	result, err := h.service.Availability(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, offices.ErrInvalidInput):
			h.logger.Warn("GET /offices/{officeId}/availability - Validation failed: %v", err)
			handlers.RespondValidation(w, err, msgInvalidInput)

		case errors.Is(err, offices.ErrOfficeNotFound):
			h.logger.Warn("GET /offices/{officeId}/availability - Office not found: office_id=%s", officeID)
			handlers.RespondNotFound(w, msgOfficeNotFound)

		default:
			h.logger.Error("GET /offices/{officeId}/availability - Failed to get availability: office_id=%s, error=%v", officeID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /offices/{officeId}/availability - Availability retrieved: office_id=%s, date=%s", officeID, result.Date)
	handlers.RespondJSON(w, http.StatusOK, result)
}
