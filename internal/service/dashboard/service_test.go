package dashboard

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	"github.com/m04kA/SMC-ParkingService/internal/infra/storage/memory"
	"github.com/m04kA/SMC-ParkingService/internal/usecase/submit_request"
	"github.com/m04kA/SMC-ParkingService/pkg/logger"
	"github.com/m04kA/SMC-ParkingService/pkg/memtx"
	"github.com/m04kA/SMC-ParkingService/pkg/metrics"
)

type fixedTime struct{ t time.Time }

func (f fixedTime) Now() time.Time { return f.t }

type nopNotifier struct{}

func (nopNotifier) Notify(context.Context, domain.Event) error { return nil }

var today = time.Date(2026, 6, 2, 0, 0, 0, 0, time.UTC)

func newService(store *memory.Storage) *Service {
	svc := NewService(store.Requests, store.Offices, store.Pools, memtx.NewManager(), time.UTC, logger.NewNop())
	svc.timeProvider = fixedTime{today.Add(10 * time.Hour)}
	return svc
}

func TestService_UtilizationEightyPercent(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	_, err := store.Offices.Create(ctx, &domain.Office{ID: "hq", Name: "HQ", CarCapacity: 0, BikeCapacity: 0})
	require.NoError(t, err)

	key := domain.PoolKey{OfficeID: "hq", VehicleType: domain.VehicleCar, Shift: domain.ShiftMorning, Date: today}
	_, _, err = store.Pools.SetCapacity(ctx, key, 25)
	require.NoError(t, err)
	for i := 0; i < 20; i++ {
		_, err := store.Pools.Reserve(ctx, key, fmt.Sprintf("r%d", i))
		require.NoError(t, err)
	}

	resp, err := newService(store).Get(ctx, nil)

	require.NoError(t, err)
	assert.Equal(t, "2026-06-02", resp.Date)
	require.Len(t, resp.OfficeStats, 1)
	st := resp.OfficeStats[0]
	assert.Equal(t, 80, st.CarUtilization)
	assert.Equal(t, 5, st.AvailableCarSlots)
	assert.Equal(t, 25, st.TotalCarSlots)
	assert.Equal(t, 0, st.BikeUtilization)
}

func TestService_UnmaterialisedPoolsUseOfficeDefaults(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	_, err := store.Offices.Create(ctx, &domain.Office{ID: "hq", Name: "HQ", CarCapacity: 10, BikeCapacity: 4})
	require.NoError(t, err)

	// пул другой даты в окно не попадает
	_, err = store.Pools.Reserve(ctx, domain.PoolKey{
		OfficeID: "hq", VehicleType: domain.VehicleCar, Shift: domain.ShiftMorning, Date: today.AddDate(0, 0, 1),
	}, "tomorrow")
	require.NoError(t, err)

	resp, err := newService(store).Get(ctx, nil)

	require.NoError(t, err)
	st := resp.OfficeStats[0]
	assert.Equal(t, 30, st.AvailableCarSlots)
	assert.Equal(t, 12, st.AvailableBikeSlots)
	assert.Equal(t, 0, st.CarUtilization)

	next := today.AddDate(0, 0, 1)
	resp, err = newService(store).Get(ctx, &next)
	require.NoError(t, err)
	assert.Equal(t, 29, resp.OfficeStats[0].AvailableCarSlots)
	assert.Equal(t, 3, resp.OfficeStats[0].CarUtilization)
}

func TestService_PendingCountGrowsWithoutAutoApprove(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	_, err := store.Offices.Create(ctx, &domain.Office{ID: "hq", Name: "HQ", CarCapacity: 1})
	require.NoError(t, err)

	submit := submit_request.NewUseCase(store.Requests, store.Pools, store.Offices, memtx.NewManager(),
		nopNotifier{}, (*metrics.Metrics)(nil),
		submit_request.Config{AutoApprove: false, Location: time.UTC, DefaultOfficeID: "hq"}, logger.NewNop())
	svc := newService(store)

	for i := 1; i <= 3; i++ {
		shift := "morning"
		resp, err := submit.Execute(ctx, &submit_request.Request{
			EmployeeID:   fmt.Sprintf("E%d", i),
			Name:         "Employee",
			Email:        fmt.Sprintf("e%d@example.com", i),
			VehicleType:  "car",
			DurationType: "single_day",
			Shift:        &shift,
			ParkingDate:  time.Now().AddDate(0, 0, 3),
		})
		require.NoError(t, err)
		assert.Equal(t, domain.StatusPending, resp.Request.Status)

		dash, err := svc.Get(ctx, nil)
		require.NoError(t, err)
		assert.Equal(t, i, dash.RequestCounts["pending"])
		assert.Equal(t, 0, dash.RequestCounts["approved"])
		assert.Equal(t, i, dash.TotalRequests)
	}
}
