package release_request

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	"github.com/m04kA/SMC-ParkingService/internal/infra/storage/memory"
	"github.com/m04kA/SMC-ParkingService/internal/usecase/decide_request"
	"github.com/m04kA/SMC-ParkingService/internal/usecase/promote_waitlist"
	"github.com/m04kA/SMC-ParkingService/internal/usecase/submit_request"
	"github.com/m04kA/SMC-ParkingService/pkg/logger"
	"github.com/m04kA/SMC-ParkingService/pkg/memtx"
	"github.com/m04kA/SMC-ParkingService/pkg/metrics"
)

type nopNotifier struct{}

func (nopNotifier) Notify(context.Context, domain.Event) error { return nil }

type fixture struct {
	store   *memory.Storage
	submit  *submit_request.UseCase
	decide  *decide_request.UseCase
	release *UseCase
	date    time.Time
}

func newFixture(t *testing.T, autoApprove bool, carCapacity int) *fixture {
	t.Helper()
	store := memory.New()
	_, err := store.Offices.Create(context.Background(), &domain.Office{ID: "hq", Name: "HQ", CarCapacity: carCapacity})
	require.NoError(t, err)

	tx := memtx.NewManager()
	log := logger.NewNop()
	var m *metrics.Metrics // методы безопасны для nil

	promoter := promote_waitlist.NewUseCase(store.Requests, store.Pools, tx, nopNotifier{}, m, log)
	return &fixture{
		store: store,
		submit: submit_request.NewUseCase(store.Requests, store.Pools, store.Offices, tx, nopNotifier{}, m,
			submit_request.Config{AutoApprove: autoApprove, Location: time.UTC, DefaultOfficeID: "hq"}, log),
		decide:  decide_request.NewUseCase(store.Requests, store.Pools, tx, nopNotifier{}, m, log),
		release: NewUseCase(store.Requests, store.Pools, promoter, tx, nopNotifier{}, log),
		date:    domain.NormalizeDate(time.Now().AddDate(0, 0, 7)),
	}
}

func (f *fixture) submitCar(t *testing.T, emp, duration string) *domain.ParkingRequest {
	t.Helper()
	req := &submit_request.Request{
		EmployeeID:   emp,
		Name:         "Employee " + emp,
		Email:        emp + "@example.com",
		VehicleType:  "car",
		DurationType: duration,
		ParkingDate:  f.date,
	}
	if duration == "single_day" {
		sh := "morning"
		req.Shift = &sh
	}
	resp, err := f.submit.Execute(context.Background(), req)
	require.NoError(t, err)
	return resp.Request
}

func (f *fixture) get(t *testing.T, id string) *domain.ParkingRequest {
	t.Helper()
	r, err := f.store.Requests.GetByID(context.Background(), id)
	require.NoError(t, err)
	return r
}

func TestExecute_ReleasePromotesWaitlistedRequest(t *testing.T) {
	f := newFixture(t, true, 1)

	a := f.submitCar(t, "A", "single_day")
	require.Equal(t, domain.StatusApproved, a.Status)
	require.Equal(t, 1, *a.SlotNumber)

	b := f.submitCar(t, "B", "single_day")
	require.Equal(t, domain.StatusWaitlist, b.Status)

	resp, err := f.release.Execute(context.Background(), &Request{RequestID: a.ID, ReleasedBy: "admin@example.com"})

	require.NoError(t, err)
	assert.Equal(t, domain.StatusCancelled, resp.Request.Status)
	assert.Nil(t, resp.Request.SlotNumber)
	require.Len(t, resp.Promoted, 1)
	assert.Equal(t, b.ID, resp.Promoted[0].ID)

	stored := f.get(t, b.ID)
	assert.Equal(t, domain.StatusApproved, stored.Status)
	assert.Equal(t, 1, *stored.SlotNumber)

	assert.Equal(t, domain.StatusCancelled, f.get(t, a.ID).Status)
}

func TestExecute_FullDayReleaseFreesEveryShift(t *testing.T) {
	f := newFixture(t, true, 1)

	full := f.submitCar(t, "F", "full_day")
	require.Equal(t, domain.StatusApproved, full.Status)
	waiting := f.submitCar(t, "W", "single_day")
	require.Equal(t, domain.StatusWaitlist, waiting.Status)

	resp, err := f.release.Execute(context.Background(), &Request{RequestID: full.ID, ReleasedBy: "admin@example.com"})
	require.NoError(t, err)
	require.Len(t, resp.Promoted, 1)

	for _, sh := range domain.AllShifts {
		pool, err := f.store.Pools.Availability(context.Background(), domain.PoolKey{
			OfficeID: "hq", VehicleType: domain.VehicleCar, Shift: sh, Date: f.date,
		})
		require.NoError(t, err)
		if sh == domain.ShiftMorning {
			assert.Equal(t, 1, pool.Occupied)
		} else {
			assert.Zero(t, pool.Occupied, "shift %s", sh)
		}
	}
}

func TestExecute_OnlyApprovedCanBeReleased(t *testing.T) {
	f := newFixture(t, false, 1)
	pending := f.submitCar(t, "P", "single_day")

	_, err := f.release.Execute(context.Background(), &Request{RequestID: pending.ID, ReleasedBy: "admin"})
	assert.ErrorIs(t, err, ErrInvalidTransition)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)

	_, err = f.decide.Execute(context.Background(), &decide_request.Request{
		RequestID: pending.ID, Status: "approved", DecidedBy: "admin",
	})
	require.NoError(t, err)

	_, err = f.release.Execute(context.Background(), &Request{RequestID: pending.ID, ReleasedBy: "admin"})
	require.NoError(t, err)

	_, err = f.release.Execute(context.Background(), &Request{RequestID: pending.ID, ReleasedBy: "admin"})
	assert.ErrorIs(t, err, ErrInvalidTransition, "cancelled is terminal")
}

func TestExecute_UnknownAndInvalid(t *testing.T) {
	f := newFixture(t, true, 1)

	_, err := f.release.Execute(context.Background(), &Request{RequestID: "missing"})
	assert.ErrorIs(t, err, ErrRequestNotFound)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = f.release.Execute(context.Background(), &Request{})
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.ErrorIs(t, err, domain.ErrValidation)
}
