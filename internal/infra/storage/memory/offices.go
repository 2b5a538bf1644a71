package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	"github.com/m04kA/SMC-ParkingService/pkg/memtx"
)

// OfficeStore офисы в памяти
type OfficeStore struct {
	mu      sync.RWMutex
	offices map[string]domain.Office
}

func newOfficeStore() *OfficeStore {
	return &OfficeStore{offices: make(map[string]domain.Office)}
}

func (s *OfficeStore) Create(ctx context.Context, office *domain.Office) (*domain.Office, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.offices[office.ID]; ok {
		return nil, fmt.Errorf("%w: Create - id=%s", ErrOfficeExists, office.ID)
	}

	office.CreatedAt = time.Now().UTC()
	s.offices[office.ID] = *office

	id := office.ID
	memtx.OnRollback(ctx, func() {
		s.mu.Lock()
		delete(s.offices, id)
		s.mu.Unlock()
	})

	return office, nil
}

func (s *OfficeStore) GetByID(_ context.Context, id string) (*domain.Office, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	office, ok := s.offices[id]
	if !ok {
		return nil, fmt.Errorf("%w: GetByID - id=%s", ErrOfficeNotFound, id)
	}
	return &office, nil
}

func (s *OfficeStore) List(_ context.Context) ([]domain.Office, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	offices := make([]domain.Office, 0, len(s.offices))
	for _, o := range s.offices {
		offices = append(offices, o)
	}
	sort.Slice(offices, func(i, j int) bool {
		if offices[i].Name != offices[j].Name {
			return offices[i].Name < offices[j].Name
		}
		return offices[i].ID < offices[j].ID
	})
	return offices, nil
}

func (s *OfficeStore) name(id string) string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.offices[id].Name
}
