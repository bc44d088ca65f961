package store

import (
	"context"

	"github.com/google/uuid"

	"bankadapter/internal/tenant/models"
)

// ConfigStore persists tenant configuration records.
//
// FindActive returns sentinel.ErrNotFound when no record is active; the
// resolver treats that as a fatal precondition failure, not a retryable error.
type ConfigStore interface {
	Create(ctx context.Context, cfg *models.Config) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Config, error)
	FindActive(ctx context.Context) (*models.Config, error)
	// Activate marks the given config active and every other config inactive,
	// preserving the single-active invariant.
	Activate(ctx context.Context, id uuid.UUID) (*models.Config, error)
	Deactivate(ctx context.Context, id uuid.UUID) (*models.Config, error)
}
