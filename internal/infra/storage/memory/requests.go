package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	"github.com/m04kA/SMC-ParkingService/pkg/keylock"
	"github.com/m04kA/SMC-ParkingService/pkg/memtx"
)

// RequestStore Request Ledger в памяти
type RequestStore struct {
	mu       sync.RWMutex
	requests map[string]*domain.ParkingRequest
	offices  *OfficeStore
	locks    *keylock.KeyLock
}

func newRequestStore(offices *OfficeStore, locks *keylock.KeyLock) *RequestStore {
	return &RequestStore{
		requests: make(map[string]*domain.ParkingRequest),
		offices:  offices,
		locks:    locks,
	}
}

func (s *RequestStore) Create(ctx context.Context, req *domain.ParkingRequest) (*domain.ParkingRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.requests[req.ID]; ok {
		return nil, fmt.Errorf("%w: Create - id=%s", ErrRequestExists, req.ID)
	}

	req.UpdatedAt = req.CreatedAt
	stored := clone(req)
	s.requests[req.ID] = stored

	id := req.ID
	memtx.OnRollback(ctx, func() {
		s.mu.Lock()
		delete(s.requests, id)
		s.mu.Unlock()
	})

	return req, nil
}

func (s *RequestStore) GetByID(_ context.Context, id string) (*domain.ParkingRequest, error) {
	s.mu.RLock()
	stored, ok := s.requests[id]
	var req *domain.ParkingRequest
	if ok {
		req = clone(stored)
	}
	s.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: GetByID - id=%s", ErrRequestNotFound, id)
	}
	req.OfficeName = s.offices.name(req.OfficeID)
	return req, nil
}

// GetForUpdate блокирует заявку до конца транзакции
func (s *RequestStore) GetForUpdate(ctx context.Context, id string) (*domain.ParkingRequest, error) {
	unlock := memtx.Acquire(ctx, s.locks, "request:"+id)
	defer unlock()

	return s.GetByID(ctx, id)
}

func (s *RequestStore) UpdateDecision(ctx context.Context, d domain.Decision) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, ok := s.requests[d.RequestID]
	if !ok {
		return fmt.Errorf("%w: UpdateDecision - id=%s", ErrRequestNotFound, d.RequestID)
	}

	previous := clone(stored)

	decidedAt := d.DecidedAt
	stored.Status = d.Status
	stored.SlotNumber = copyPtr(d.SlotNumber)
	stored.RejectionReason = copyPtr(d.RejectionReason)
	stored.DecidedBy = copyPtr(d.DecidedBy)
	stored.DecidedAt = &decidedAt
	stored.UpdatedAt = decidedAt

	memtx.OnRollback(ctx, func() {
		s.mu.Lock()
		s.requests[previous.ID] = previous
		s.mu.Unlock()
	})

	return nil
}

func (s *RequestStore) List(_ context.Context, filter domain.RequestFilter) ([]domain.ParkingRequest, error) {
	result := s.collect(func(r *domain.ParkingRequest) bool {
		if filter.EmployeeID != nil && r.Requester.EmployeeID != *filter.EmployeeID {
			return false
		}
		if filter.Status != nil && r.Status != *filter.Status {
			return false
		}
		if filter.OfficeID != nil && r.OfficeID != *filter.OfficeID {
			return false
		}
		return true
	})

	sort.Slice(result, func(i, j int) bool {
		if !result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].CreatedAt.After(result[j].CreatedAt)
		}
		return result[i].ID > result[j].ID
	})

	if filter.Limit > 0 && len(result) > filter.Limit {
		result = result[:filter.Limit]
	}
	return result, nil
}

func (s *RequestStore) ListWaitlist(_ context.Context, key domain.PoolKey) ([]domain.ParkingRequest, error) {
	result := s.collect(func(r *domain.ParkingRequest) bool {
		return r.Status == domain.StatusWaitlist && r.Covers(key)
	})

	sort.Slice(result, func(i, j int) bool {
		if !result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].CreatedAt.Before(result[j].CreatedAt)
		}
		return result[i].ID < result[j].ID
	})
	return result, nil
}

func (s *RequestStore) CountByStatus(_ context.Context) (domain.StatusCounts, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	counts := make(domain.StatusCounts, len(domain.AllStatuses))
	for _, st := range domain.AllStatuses {
		counts[st] = 0
	}
	for _, r := range s.requests {
		counts[r.Status]++
	}
	return counts, nil
}

func (s *RequestStore) collect(match func(r *domain.ParkingRequest) bool) []domain.ParkingRequest {
	s.mu.RLock()
	result := make([]domain.ParkingRequest, 0)
	for _, r := range s.requests {
		if match(r) {
			result = append(result, *clone(r))
		}
	}
	s.mu.RUnlock()

	for i := range result {
		result[i].OfficeName = s.offices.name(result[i].OfficeID)
	}
	return result
}

func clone(r *domain.ParkingRequest) *domain.ParkingRequest {
	c := *r
	c.Requester.Phone = copyPtr(r.Requester.Phone)
	c.Requester.Team = copyPtr(r.Requester.Team)
	c.VehicleNumber = copyPtr(r.VehicleNumber)
	c.Shift = copyPtr(r.Shift)
	c.Description = copyPtr(r.Description)
	c.SlotNumber = copyPtr(r.SlotNumber)
	c.RejectionReason = copyPtr(r.RejectionReason)
	c.DecidedBy = copyPtr(r.DecidedBy)
	c.DecidedAt = copyPtr(r.DecidedAt)
	return &c
}

func copyPtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
