package settings

import (
	"context"
	"sync"
)

// MemoryStore keeps settings in memory. Values are copied on the way in and out.
type MemoryStore struct {
	mu       sync.RWMutex
	settings Settings
	saves    int
}

// NewMemoryStore constructs a store holding initial.
func NewMemoryStore(initial Settings) *MemoryStore {
	return &MemoryStore{settings: clone(initial)}
}

// Load returns a copy of the stored settings.
func (s *MemoryStore) Load(ctx context.Context) (Settings, error) {
	if err := ctx.Err(); err != nil {
		return Settings{}, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return clone(s.settings), nil
}

// Save replaces the stored settings.
func (s *MemoryStore) Save(ctx context.Context, settings Settings) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.settings = clone(settings)
	s.saves++
	return nil
}

// Saves reports how many times Save succeeded.
func (s *MemoryStore) Saves() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.saves
}
