package create_office

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ParkingService/internal/api/handlers/list_offices"
	"github.com/m04kA/SMC-ParkingService/internal/infra/storage/memory"
	"github.com/m04kA/SMC-ParkingService/internal/service/offices"
	"github.com/m04kA/SMC-ParkingService/pkg/logger"
	"github.com/m04kA/SMC-ParkingService/pkg/memtx"
)

func TestCreateThenList(t *testing.T) {
	store := memory.New()
	svc := offices.NewService(store.Offices, store.Pools, memtx.NewManager(), logger.NewNop())
	create := NewHandler(svc, logger.NewNop())
	list := list_offices.NewHandler(svc, logger.NewNop())

	rec := httptest.NewRecorder()
	create.Handle(rec, httptest.NewRequest(http.MethodPost, "/api/offices",
		strings.NewReader(`{"name":" North Campus ","location":"Pune","total_car_slots":10,"total_bike_slots":20}`)))
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), `"name":"North Campus"`)

	rec = httptest.NewRecorder()
	list.Handle(rec, httptest.NewRequest(http.MethodGet, "/api/offices", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"total_bike_slots":20`)
}

func TestCreate_Invalid(t *testing.T) {
	store := memory.New()
	svc := offices.NewService(store.Offices, store.Pools, memtx.NewManager(), logger.NewNop())
	h := NewHandler(svc, logger.NewNop())

	for _, body := range []string{
		`{"location":"Pune","total_car_slots":1}`,
		`{"name":"X","location":"Pune","total_car_slots":-1}`,
		`[`,
	} {
		rec := httptest.NewRecorder()
		h.Handle(rec, httptest.NewRequest(http.MethodPost, "/api/offices", strings.NewReader(body)))
		assert.Equal(t, http.StatusBadRequest, rec.Code, body)
	}
}
