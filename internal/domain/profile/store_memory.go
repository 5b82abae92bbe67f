package profile

import (
	"context"
	"sort"
	"sync"
)

// MemoryStore keeps profiles for the lifetime of the process. Values are
// copied on the way in and out so callers never share deduction slices.
type MemoryStore struct {
	mu       sync.RWMutex
	profiles map[string]Profile
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{profiles: map[string]Profile{}}
}

func (s *MemoryStore) List(ctx context.Context, limit, offset int) ([]Profile, int, error) {
	s.mu.RLock()
	items := make([]Profile, 0, len(s.profiles))
	for _, p := range s.profiles {
		items = append(items, p.clone())
	}
	s.mu.RUnlock()

	sort.Slice(items, func(i, j int) bool {
		if items[i].UpdatedAt.Equal(items[j].UpdatedAt) {
			return items[i].ID < items[j].ID
		}
		return items[i].UpdatedAt.After(items[j].UpdatedAt)
	})

	total := len(items)
	offset = max(offset, 0)
	if offset >= total {
		return []Profile{}, total, nil
	}
	end := total
	if limit > 0 && offset+limit < total {
		end = offset + limit
	}
	return items[offset:end], total, nil
}

func (s *MemoryStore) Get(ctx context.Context, id string) (Profile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.profiles[id]
	if !ok {
		return Profile{}, ErrNotFound
	}
	return p.clone(), nil
}

func (s *MemoryStore) Create(ctx context.Context, p Profile) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.profiles[p.ID] = p.clone()
	return nil
}

func (s *MemoryStore) Update(ctx context.Context, p Profile) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.profiles[p.ID]; !ok {
		return ErrNotFound
	}
	s.profiles[p.ID] = p.clone()
	return nil
}

func (s *MemoryStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.profiles[id]; !ok {
		return ErrNotFound
	}
	delete(s.profiles, id)
	return nil
}
