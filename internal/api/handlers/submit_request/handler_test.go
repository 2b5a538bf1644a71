package submit_request

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ParkingService/internal/api/handlers"
	"github.com/m04kA/SMC-ParkingService/internal/domain"
	submitRequest "github.com/m04kA/SMC-ParkingService/internal/usecase/submit_request"
	"github.com/m04kA/SMC-ParkingService/pkg/logger"
	"github.com/m04kA/SMC-ParkingService/pkg/ptr"
)

type stubUseCase struct {
	got  *submitRequest.Request
	resp *submitRequest.Response
	err  error
}

func (s *stubUseCase) Execute(_ context.Context, req *submitRequest.Request) (*submitRequest.Response, error) {
	s.got = req
	return s.resp, s.err
}

const body = `{"emp_id":"E1","name":"Asha","email":"asha@example.com","vehicle_type":"car","shift":"morning","parking_date":"2026-06-02"}`

func serve(uc SubmitRequestUseCase, payload string) *httptest.ResponseRecorder {
	h := NewHandler(uc, logger.NewNop())
	rec := httptest.NewRecorder()
	h.Handle(rec, httptest.NewRequest(http.MethodPost, "/api/parking-requests", strings.NewReader(payload)))
	return rec
}

func TestHandle_Approved(t *testing.T) {
	uc := &stubUseCase{resp: &submitRequest.Response{Request: &domain.ParkingRequest{
		ID:          "r1",
		VehicleType: domain.VehicleCar,
		ParkingDate: time.Date(2026, 6, 2, 0, 0, 0, 0, time.UTC),
		Status:      domain.StatusApproved,
		SlotNumber:  ptr.Ptr(7),
	}}}

	rec := serve(uc, body)

	require.Equal(t, http.StatusCreated, rec.Code)
	var resp SubmitResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "approved", resp.Status)
	assert.Equal(t, 7, *resp.SlotNumber)
	assert.Equal(t, "C-7", resp.SlotLabel)
	assert.Equal(t, "Parking slot C-7 allocated", resp.Message)

	assert.Equal(t, "single_day", uc.got.DurationType)
	assert.Equal(t, time.Date(2026, 6, 2, 0, 0, 0, 0, time.UTC), uc.got.ParkingDate)
}

func TestHandle_Waitlist(t *testing.T) {
	uc := &stubUseCase{resp: &submitRequest.Response{Request: &domain.ParkingRequest{
		ID: "r2", VehicleType: domain.VehicleBike, Status: domain.StatusWaitlist,
	}}}

	rec := serve(uc, body)

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"waitlist"`)
	assert.NotContains(t, rec.Body.String(), `"slot_number"`)
}

func TestHandle_Errors(t *testing.T) {
	cases := []struct {
		name    string
		payload string
		err     error
		status  int
		message string
	}{
		{"bad json", `{`, nil, http.StatusBadRequest, msgInvalidRequestBody},
		{"bad date", strings.Replace(body, "2026-06-02", "02/06/2026", 1), nil, http.StatusBadRequest, msgInvalidDate},
		{
			"validation", body,
			fmt.Errorf("%w: %w", submitRequest.ErrInvalidInput, domain.NewValidationError("shift", "Shift is required for single_day requests")),
			http.StatusBadRequest, "Shift is required for single_day requests",
		},
		{"office", body, submitRequest.ErrOfficeNotFound, http.StatusNotFound, msgOfficeNotFound},
		{"internal", body, submitRequest.ErrInternal, http.StatusInternalServerError, "внутренняя ошибка сервера"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := serve(&stubUseCase{err: tc.err}, tc.payload)

			require.Equal(t, tc.status, rec.Code)
			var errResp handlers.ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &errResp))
			assert.Equal(t, tc.status, errResp.Code)
			assert.Equal(t, tc.message, errResp.Message)
		})
	}
}
