package get_dashboard

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ParkingService/internal/service/dashboard/models"
	"github.com/m04kA/SMC-ParkingService/pkg/logger"
)

type stubService struct {
	got *time.Time
	err error
}

func (s *stubService) Get(_ context.Context, date *time.Time) (*models.DashboardResponse, error) {
	s.got = date
	if s.err != nil {
		return nil, s.err
	}
	return &models.DashboardResponse{
		Date:          "2026-06-02",
		RequestCounts: map[string]int{"pending": 1, "approved": 2, "rejected": 0, "waitlist": 0},
		TotalRequests: 3,
	}, nil
}

func TestHandle(t *testing.T) {
	svc := &stubService{}
	h := NewHandler(svc, logger.NewNop())

	rec := httptest.NewRecorder()
	h.Handle(rec, httptest.NewRequest(http.MethodGet, "/api/admin/dashboard?date=2026-06-02", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, svc.got)
	assert.Equal(t, time.Date(2026, 6, 2, 0, 0, 0, 0, time.UTC), *svc.got)
	assert.Contains(t, rec.Body.String(), `"approved":2`)
}

func TestHandle_DefaultDate(t *testing.T) {
	svc := &stubService{}
	h := NewHandler(svc, logger.NewNop())

	rec := httptest.NewRecorder()
	h.Handle(rec, httptest.NewRequest(http.MethodGet, "/api/admin/dashboard", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Nil(t, svc.got)
}

func TestHandle_Errors(t *testing.T) {
	rec := httptest.NewRecorder()
	NewHandler(&stubService{}, logger.NewNop()).
		Handle(rec, httptest.NewRequest(http.MethodGet, "/api/admin/dashboard?date=tomorrow", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = httptest.NewRecorder()
	NewHandler(&stubService{err: errors.New("db down")}, logger.NewNop()).
		Handle(rec, httptest.NewRequest(http.MethodGet, "/api/admin/dashboard", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
