package repository

import (
	"context"
	"sync"

	"github.com/kanakkholwal/custom-domain-sdk/internal/domains/model"
)

// MemoryStore is an in-memory, thread-safe Store implementation. It is the
// reference implementation: useful for tests and for single-process
// deployments that do not need durability across restarts.
type MemoryStore struct {
	mu   sync.RWMutex
	rows map[string]*model.Record
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{rows: make(map[string]*model.Record)}
}

// Lookup implements Store.
func (s *MemoryStore) Lookup(_ context.Context, hostname string) (*model.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.rows[model.NormalizeHostname(hostname)]
	if !ok {
		return nil, ErrDomainNotFound
	}
	cp := *rec
	return &cp, nil
}

// Create implements Store.
func (s *MemoryStore) Create(_ context.Context, rec *model.Record) (*model.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *rec
	cp.Hostname = model.NormalizeHostname(rec.Hostname)
	s.rows[cp.Hostname] = &cp
	out := cp
	return &out, nil
}

// Update implements Store.
func (s *MemoryStore) Update(_ context.Context, rec *model.Record) (*model.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := model.NormalizeHostname(rec.Hostname)
	if _, ok := s.rows[key]; !ok {
		return nil, ErrDomainNotFound
	}
	cp := *rec
	cp.Hostname = key
	s.rows[key] = &cp
	out := cp
	return &out, nil
}
