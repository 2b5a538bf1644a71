package submit_request

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	"github.com/m04kA/SMC-ParkingService/internal/infra/storage/memory"
	"github.com/m04kA/SMC-ParkingService/pkg/logger"
	"github.com/m04kA/SMC-ParkingService/pkg/memtx"
	"github.com/m04kA/SMC-ParkingService/pkg/ptr"
)

type fixedTime struct{ t time.Time }

func (f fixedTime) Now() time.Time { return f.t }

type recordingNotifier struct {
	mu     sync.Mutex
	events []domain.Event
}

func (n *recordingNotifier) Notify(_ context.Context, e domain.Event) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, e)
	return nil
}

type countingMetrics struct {
	mu          sync.Mutex
	submissions map[string]int
	exhausted   int
}

func (m *countingMetrics) ObserveSubmission(outcome string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.submissions[outcome]++
}

func (m *countingMetrics) ObserveExhausted() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.exhausted++
}

var (
	now      = time.Date(2026, 6, 1, 8, 0, 0, 0, time.UTC)
	tomorrow = time.Date(2026, 6, 2, 0, 0, 0, 0, time.UTC)
)

type fixture struct {
	uc       *UseCase
	store    *memory.Storage
	notifier *recordingNotifier
	metrics  *countingMetrics
}

func newFixture(t *testing.T, autoApprove bool, carCapacity int) *fixture {
	t.Helper()
	store := memory.New()
	_, err := store.Offices.Create(context.Background(), &domain.Office{
		ID: domain.DefaultOfficeID, Name: domain.DefaultOfficeName, CarCapacity: carCapacity, BikeCapacity: 2,
	})
	require.NoError(t, err)

	n := &recordingNotifier{}
	m := &countingMetrics{submissions: map[string]int{}}
	uc := NewUseCase(store.Requests, store.Pools, store.Offices, memtx.NewManager(), n, m,
		Config{AutoApprove: autoApprove, Location: time.UTC}, logger.NewNop())
	uc.timeProvider = fixedTime{now}

	return &fixture{uc: uc, store: store, notifier: n, metrics: m}
}

func carRequest(emp string) *Request {
	return &Request{
		EmployeeID:   emp,
		Name:         "Employee " + emp,
		Email:        emp + "@example.com",
		VehicleType:  "car",
		DurationType: "single_day",
		Shift:        ptr.Ptr("morning"),
		ParkingDate:  tomorrow,
	}
}

func TestExecute_AutoApproveThenWaitlist(t *testing.T) {
	f := newFixture(t, true, 1)
	ctx := context.Background()

	first, err := f.uc.Execute(ctx, carRequest("A"))
	require.NoError(t, err)
	assert.Equal(t, domain.StatusApproved, first.Request.Status)
	assert.Equal(t, 1, *first.Request.SlotNumber)
	assert.Equal(t, "C-1", first.Request.SlotLabel())
	assert.Equal(t, domain.DefaultOfficeID, first.Request.OfficeID)
	require.NotNil(t, first.Request.DecidedAt)

	second, err := f.uc.Execute(ctx, carRequest("B"))
	require.NoError(t, err)
	assert.Equal(t, domain.StatusWaitlist, second.Request.Status)
	assert.Nil(t, second.Request.SlotNumber)

	assert.Equal(t, 1, f.metrics.submissions["approved"])
	assert.Equal(t, 1, f.metrics.submissions["waitlist"])
	assert.Equal(t, 1, f.metrics.exhausted)
	assert.Len(t, f.notifier.events, 2)
}

func TestExecute_ManualModeAlwaysPending(t *testing.T) {
	f := newFixture(t, false, 1)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		resp, err := f.uc.Execute(ctx, carRequest(fmt.Sprintf("E%d", i)))
		require.NoError(t, err)
		assert.Equal(t, domain.StatusPending, resp.Request.Status)

		counts, err := f.store.Requests.CountByStatus(ctx)
		require.NoError(t, err)
		assert.Equal(t, i+1, counts[domain.StatusPending])
	}

	pool, err := f.store.Pools.Availability(ctx, domain.PoolKey{
		OfficeID: domain.DefaultOfficeID, VehicleType: domain.VehicleCar, Shift: domain.ShiftMorning, Date: tomorrow,
	})
	require.NoError(t, err)
	assert.Equal(t, 0, pool.Occupied)
}

func TestExecute_ZeroCapacityGoesToWaitlist(t *testing.T) {
	f := newFixture(t, true, 0)

	resp, err := f.uc.Execute(context.Background(), carRequest("A"))

	require.NoError(t, err)
	assert.Equal(t, domain.StatusWaitlist, resp.Request.Status)
}

func TestExecute_FullDayPartialAvailabilityIsRolledBack(t *testing.T) {
	f := newFixture(t, true, 1)
	ctx := context.Background()

	night := carRequest("N")
	night.Shift = ptr.Ptr("night")
	_, err := f.uc.Execute(ctx, night)
	require.NoError(t, err)

	full := carRequest("F")
	full.DurationType = "full_day"
	full.Shift = nil
	resp, err := f.uc.Execute(ctx, full)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusWaitlist, resp.Request.Status)
	assert.Nil(t, resp.Request.Shift)

	for _, shift := range []domain.Shift{domain.ShiftMorning, domain.ShiftEvening} {
		pool, err := f.store.Pools.Availability(ctx, domain.PoolKey{
			OfficeID: domain.DefaultOfficeID, VehicleType: domain.VehicleCar, Shift: shift, Date: tomorrow,
		})
		require.NoError(t, err)
		assert.Equal(t, 0, pool.Occupied, "shift %s", shift)
	}
}

func TestExecute_ValidationWritesNothing(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(r *Request)
		message string
	}{
		{"past date", func(r *Request) { r.ParkingDate = now.AddDate(0, 0, -1) }, "Parking Date cannot be in the past"},
		{"missing shift", func(r *Request) { r.Shift = nil }, "Shift is required for single_day requests"},
		{"bad vehicle", func(r *Request) { r.VehicleType = "truck" }, "Vehicle Type must be one of: car, bike"},
		{"missing emp id", func(r *Request) { r.EmployeeID = "" }, "Emp Id is required"},
		{"bad email", func(r *Request) { r.Email = "not-an-email" }, "Email must be a valid email"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, true, 5)
			req := carRequest("A")
			tt.mutate(req)

			_, err := f.uc.Execute(context.Background(), req)

			assert.ErrorIs(t, err, ErrInvalidInput)
			assert.ErrorIs(t, err, domain.ErrValidation)
			var verr *domain.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.message, verr.Message)

			counts, err := f.store.Requests.CountByStatus(context.Background())
			require.NoError(t, err)
			assert.Zero(t, counts.Total())
		})
	}
}

func TestExecute_TodayIsAllowed(t *testing.T) {
	f := newFixture(t, true, 1)
	req := carRequest("A")
	req.ParkingDate = time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)

	_, err := f.uc.Execute(context.Background(), req)

	assert.NoError(t, err)
}

func TestExecute_UnknownOffice(t *testing.T) {
	f := newFixture(t, true, 1)
	req := carRequest("A")
	req.OfficeID = "mars"

	_, err := f.uc.Execute(context.Background(), req)

	assert.ErrorIs(t, err, ErrOfficeNotFound)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestExecute_ConcurrentSubmissionsNeverOverbook(t *testing.T) {
	const capacity, callers = 7, 30
	f := newFixture(t, true, capacity)

	var g errgroup.Group
	for i := 0; i < callers; i++ {
		emp := fmt.Sprintf("E%02d", i)
		g.Go(func() error {
			_, err := f.uc.Execute(context.Background(), carRequest(emp))
			return err
		})
	}
	require.NoError(t, g.Wait())

	counts, err := f.store.Requests.CountByStatus(context.Background())
	require.NoError(t, err)
	assert.Equal(t, capacity, counts[domain.StatusApproved])
	assert.Equal(t, callers-capacity, counts[domain.StatusWaitlist])

	approved := domain.StatusApproved
	list, err := f.store.Requests.List(context.Background(), domain.RequestFilter{Status: &approved})
	require.NoError(t, err)
	slots := map[int]bool{}
	for _, r := range list {
		require.NotNil(t, r.SlotNumber)
		assert.False(t, slots[*r.SlotNumber])
		slots[*r.SlotNumber] = true
	}
	assert.Len(t, slots, capacity)
}
