package reservation

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	"github.com/m04kA/SMC-ParkingService/internal/infra/storage/memory"
)

func TestReserveAll_FullDayAllOrNothing(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	_, err := store.Offices.Create(ctx, &domain.Office{ID: "hq", Name: "HQ", CarCapacity: 1})
	require.NoError(t, err)

	date := time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC)
	req := &domain.ParkingRequest{ID: "full", OfficeID: "hq", VehicleType: domain.VehicleCar, DurationType: domain.DurationFullDay, ParkingDate: date}
	keys := req.PoolKeys()

	// вечерняя смена уже занята
	_, err = store.Pools.Reserve(ctx, keys[1], "other")
	require.NoError(t, err)

	_, err = ReserveAll(ctx, store.Pools, keys, req.ID)
	assert.ErrorIs(t, err, domain.ErrExhausted)

	morning, err := store.Pools.Availability(ctx, keys[0])
	require.NoError(t, err)
	assert.Equal(t, 0, morning.Occupied, "partial morning reservation must be released")

	_, err = store.Pools.Release(ctx, keys[1], "other")
	require.NoError(t, err)

	assignments, err := ReserveAll(ctx, store.Pools, keys, req.ID)
	require.NoError(t, err)
	require.Len(t, assignments, 3)
	assert.Equal(t, domain.ShiftMorning, assignments[0].Key.Shift)
	assert.Equal(t, 1, assignments[0].SlotNumber)

	require.NoError(t, ReleaseAll(ctx, store.Pools, keys, req.ID))
	require.NoError(t, ReleaseAll(ctx, store.Pools, keys, req.ID))
	for _, k := range keys {
		p, err := store.Pools.Availability(ctx, k)
		require.NoError(t, err)
		assert.Equal(t, 0, p.Occupied)
	}
}
