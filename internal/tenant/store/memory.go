package store

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"bankadapter/internal/sentinel"
	"bankadapter/internal/tenant/models"
)

// ErrNotFound is returned when a config is not found or none is active.
var ErrNotFound = sentinel.ErrNotFound

// InMemory stores tenant configs in memory for tests and single-node demos.
type InMemory struct {
	mu      sync.RWMutex
	configs map[uuid.UUID]*models.Config
}

// NewInMemory creates an in-memory tenant config store.
func NewInMemory() *InMemory {
	return &InMemory{
		configs: make(map[uuid.UUID]*models.Config),
	}
}

// Create stores the config. Configs start inactive; Activate flips them.
func (s *InMemory) Create(_ context.Context, cfg *models.Config) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.configs[cfg.ID]; exists {
		return fmt.Errorf("config %s: %w", cfg.ID, sentinel.ErrAlreadyUsed)
	}
	cp := *cfg
	s.configs[cfg.ID] = &cp
	return nil
}

// FindByID retrieves a config by its UUID.
func (s *InMemory) FindByID(_ context.Context, id uuid.UUID) (*models.Config, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if cfg, ok := s.configs[id]; ok {
		cp := *cfg
		return &cp, nil
	}
	return nil, ErrNotFound
}

// FindActive returns the single active config.
func (s *InMemory) FindActive(_ context.Context) (*models.Config, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, cfg := range s.configs {
		if cfg.IsActive {
			cp := *cfg
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

// Activate marks the given config active and deactivates all others.
func (s *InMemory) Activate(_ context.Context, id uuid.UUID) (*models.Config, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	target, ok := s.configs[id]
	if !ok {
		return nil, ErrNotFound
	}
	now := time.Now()
	for _, cfg := range s.configs {
		if cfg.IsActive && cfg.ID != id {
			cfg.IsActive = false
			cfg.UpdatedAt = now
		}
	}
	target.IsActive = true
	target.UpdatedAt = now
	cp := *target
	return &cp, nil
}

// Deactivate marks the given config inactive.
func (s *InMemory) Deactivate(_ context.Context, id uuid.UUID) (*models.Config, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	target, ok := s.configs[id]
	if !ok {
		return nil, ErrNotFound
	}
	target.IsActive = false
	target.UpdatedAt = time.Now()
	cp := *target
	return &cp, nil
}

var _ ConfigStore = (*InMemory)(nil)
