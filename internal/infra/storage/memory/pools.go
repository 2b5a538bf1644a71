package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	"github.com/m04kA/SMC-ParkingService/pkg/keylock"
	"github.com/m04kA/SMC-ParkingService/pkg/memtx"
)

// PoolStore Capacity Registry в памяти. У каждого пула свой мьютекс,
// транзакция держит блокировку ключа пула до фиксации или отката.
type PoolStore struct {
	pools   sync.Map // domain.PoolKey -> *poolState
	offices *OfficeStore
	locks   *keylock.KeyLock
}

type poolState struct {
	mu        sync.Mutex
	capacity  int
	slots     map[int]string // номер места -> id заявки
	byRequest map[string]int
	updatedAt time.Time
}

func newPoolStore(offices *OfficeStore, locks *keylock.KeyLock) *PoolStore {
	return &PoolStore{offices: offices, locks: locks}
}

func (s *PoolStore) Reserve(ctx context.Context, key domain.PoolKey, requestID string) (*domain.SlotAssignment, error) {
	defer memtx.Acquire(ctx, s.locks, lockKey(key))()

	state, err := s.state(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("Reserve: %w", err)
	}

	state.mu.Lock()
	defer state.mu.Unlock()

	if n, ok := state.byRequest[requestID]; ok {
		return &domain.SlotAssignment{Key: key, RequestID: requestID, SlotNumber: n}, nil
	}
	if len(state.slots) >= state.capacity {
		return nil, fmt.Errorf("%w: Reserve - key=%s capacity=%d", ErrPoolExhausted, key, state.capacity)
	}

	taken := make([]int, 0, len(state.slots))
	for n := range state.slots {
		taken = append(taken, n)
	}
	slot := domain.LowestFreeSlot(state.capacity, taken)
	if slot == 0 {
		return nil, fmt.Errorf("%w: Reserve - key=%s no free slot number", ErrPoolExhausted, key)
	}

	state.slots[slot] = requestID
	state.byRequest[requestID] = slot
	state.updatedAt = time.Now().UTC()

	memtx.OnRollback(ctx, func() {
		state.mu.Lock()
		delete(state.slots, slot)
		delete(state.byRequest, requestID)
		state.mu.Unlock()
	})

	return &domain.SlotAssignment{Key: key, RequestID: requestID, SlotNumber: slot}, nil
}

func (s *PoolStore) Release(ctx context.Context, key domain.PoolKey, requestID string) (bool, error) {
	defer memtx.Acquire(ctx, s.locks, lockKey(key))()

	v, ok := s.pools.Load(key)
	if !ok {
		return false, nil
	}
	state := v.(*poolState)

	state.mu.Lock()
	defer state.mu.Unlock()

	slot, ok := state.byRequest[requestID]
	if !ok {
		return false, nil
	}

	delete(state.slots, slot)
	delete(state.byRequest, requestID)
	state.updatedAt = time.Now().UTC()

	memtx.OnRollback(ctx, func() {
		state.mu.Lock()
		state.slots[slot] = requestID
		state.byRequest[requestID] = slot
		state.mu.Unlock()
	})

	return true, nil
}

func (s *PoolStore) Availability(ctx context.Context, key domain.PoolKey) (*domain.SlotPool, error) {
	if v, ok := s.pools.Load(key); ok {
		return v.(*poolState).snapshot(key), nil
	}

	office, err := s.offices.GetByID(ctx, key.OfficeID)
	if err != nil {
		return nil, fmt.Errorf("Availability: %w", err)
	}
	return &domain.SlotPool{Key: key, Capacity: office.CapacityFor(key.VehicleType)}, nil
}

func (s *PoolStore) ListByDate(_ context.Context, date time.Time) ([]domain.SlotPool, error) {
	date = domain.NormalizeDate(date)

	pools := make([]domain.SlotPool, 0)
	s.pools.Range(func(k, v interface{}) bool {
		key := k.(domain.PoolKey)
		if key.Date.Equal(date) {
			pools = append(pools, *v.(*poolState).snapshot(key))
		}
		return true
	})

	sort.Slice(pools, func(i, j int) bool {
		return pools[i].Key.String() < pools[j].Key.String()
	})
	return pools, nil
}

func (s *PoolStore) SetCapacity(ctx context.Context, key domain.PoolKey, capacity int) (*domain.SlotPool, int, error) {
	defer memtx.Acquire(ctx, s.locks, lockKey(key))()

	state, err := s.state(ctx, key)
	if err != nil {
		return nil, 0, fmt.Errorf("SetCapacity: %w", err)
	}

	state.mu.Lock()
	if capacity < len(state.slots) {
		occupied := len(state.slots)
		state.mu.Unlock()
		return nil, 0, fmt.Errorf("%w: SetCapacity - key=%s capacity=%d occupied=%d",
			ErrCapacityBelowOccupied, key, capacity, occupied)
	}
	previous := state.capacity
	state.capacity = capacity
	state.updatedAt = time.Now().UTC()
	state.mu.Unlock()

	memtx.OnRollback(ctx, func() {
		state.mu.Lock()
		state.capacity = previous
		state.mu.Unlock()
	})

	return state.snapshot(key), previous, nil
}

// state возвращает пул, создавая его с ёмкостью офиса по умолчанию
func (s *PoolStore) state(ctx context.Context, key domain.PoolKey) (*poolState, error) {
	if v, ok := s.pools.Load(key); ok {
		return v.(*poolState), nil
	}

	office, err := s.offices.GetByID(ctx, key.OfficeID)
	if err != nil {
		return nil, err
	}

	fresh := &poolState{
		capacity:  office.CapacityFor(key.VehicleType),
		slots:     make(map[int]string),
		byRequest: make(map[string]int),
		updatedAt: time.Now().UTC(),
	}
	v, _ := s.pools.LoadOrStore(key, fresh)
	return v.(*poolState), nil
}

func (p *poolState) snapshot(key domain.PoolKey) *domain.SlotPool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return &domain.SlotPool{
		Key:       key,
		Capacity:  p.capacity,
		Occupied:  len(p.slots),
		UpdatedAt: p.updatedAt,
	}
}

func lockKey(key domain.PoolKey) string {
	return "pool:" + key.String()
}
