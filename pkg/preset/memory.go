package preset

import (
	"context"
	"sort"
	"sync"
)

// MemoryStore keeps presets in process memory.
// Useful for testing or single-run usage without persistence.
type MemoryStore struct {
	mu      sync.RWMutex
	presets map[string]Preset
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{presets: make(map[string]Preset)}
}

// Get retrieves a preset by ID.
func (s *MemoryStore) Get(ctx context.Context, id string) (*Preset, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.presets[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &p, nil
}

// List returns all presets ordered by name.
func (s *MemoryStore) List(ctx context.Context) ([]*Preset, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*Preset, 0, len(s.presets))
	for _, p := range s.presets {
		p := p
		out = append(out, &p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// Save stores a copy of p.
func (s *MemoryStore) Save(ctx context.Context, p *Preset) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.presets[p.ID] = *p
	return nil
}

// Delete removes a preset by ID.
func (s *MemoryStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.presets[id]; !ok {
		return ErrNotFound
	}
	delete(s.presets, id)
	return nil
}

// Close does nothing for the memory store.
func (s *MemoryStore) Close() error {
	return nil
}

// Ensure MemoryStore implements Store.
var _ Store = (*MemoryStore)(nil)
