package store

import (
	"context"
	"slices"
	"sync"
)

// MemoryStore keeps records in process memory.
type MemoryStore struct {
	mu      sync.RWMutex
	byID    map[string]*RunRecord
	ordered []*RunRecord // save order, oldest first
}

// NewMemoryStore returns an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{byID: make(map[string]*RunRecord)}
}

// Save implements Store. Saving an existing ID replaces the record and
// makes it the newest.
func (s *MemoryStore) Save(_ context.Context, rec *RunRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *rec
	if _, ok := s.byID[rec.ID]; ok {
		s.ordered = slices.DeleteFunc(s.ordered, func(r *RunRecord) bool { return r.ID == rec.ID })
	}
	s.ordered = append(s.ordered, &cp)
	s.byID[rec.ID] = &cp
	return nil
}

// Get implements Store.
func (s *MemoryStore) Get(_ context.Context, id string) (*RunRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *rec
	return &cp, nil
}

// List implements Store. Later saves count as newer.
func (s *MemoryStore) List(_ context.Context, f ListFilter) ([]*RunRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*RunRecord
	for i := len(s.ordered) - 1; i >= 0 && len(out) < f.limit(); i-- {
		rec := s.ordered[i]
		if f.Instance != "" && rec.Instance != f.Instance {
			continue
		}
		cp := *rec
		out = append(out, &cp)
	}
	return out, nil
}

// Close implements Store.
func (s *MemoryStore) Close(context.Context) error { return nil }

var _ Store = (*MemoryStore)(nil)
