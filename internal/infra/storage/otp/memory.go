package otp

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// MemoryStore хранит коды в памяти процесса
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
	now     func() time.Time
}

type memoryEntry struct {
	entry     Entry
	expiresAt time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[string]memoryEntry), now: time.Now}
}

func (s *MemoryStore) Save(_ context.Context, email string, entry Entry, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[email] = memoryEntry{entry: entry, expiresAt: s.now().Add(ttl)}
	return nil
}

func (s *MemoryStore) Get(_ context.Context, email string) (*Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[email]
	if !ok || !s.now().Before(e.expiresAt) {
		delete(s.entries, email)
		return nil, fmt.Errorf("%w: email=%s", ErrCodeNotFound, email)
	}
	entry := e.entry
	return &entry, nil
}

func (s *MemoryStore) Delete(_ context.Context, email string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, email)
	return nil
}

func (s *MemoryStore) Ping(context.Context) error {
	return nil
}
