package service

//go:generate mockgen -source=service.go -destination=mocks/mocks.go -package=mocks Store

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"bankadapter/internal/sentinel"
	"bankadapter/internal/tenant/models"
	dErrors "bankadapter/pkg/domain-errors"
)

// Store is the persistence dependency of the tenant service. See
// store.ConfigStore for the contract of each method.
type Store interface {
	Create(ctx context.Context, cfg *models.Config) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Config, error)
	FindActive(ctx context.Context) (*models.Config, error)
	Activate(ctx context.Context, id uuid.UUID) (*models.Config, error)
	Deactivate(ctx context.Context, id uuid.UUID) (*models.Config, error)
}

// Service resolves the active tenant config and manages config records.
type Service struct {
	store  Store
	logger *slog.Logger
}

type Option func(s *Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func New(store Store, opts ...Option) *Service {
	s := &Service{store: store, logger: slog.Default()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ResolveActive returns the currently active tenant config. It is called
// fresh for every inbound gateway request; the active tenant can change
// between calls, so results are never memoized.
//
// No active record is a precondition failure surfaced to callers as an
// authorization-class error.
func (s *Service) ResolveActive(ctx context.Context) (*models.Config, error) {
	cfg, err := s.store.FindActive(ctx)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeUnauthorized, "No active token found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load tenant config")
	}
	return cfg, nil
}

// CreateCommand carries the fields for a new tenant config record.
type CreateCommand struct {
	ClientID      string
	TargetDomain  string
	Prefix        string
	CredentialRef string
}

// CreateConfig validates and stores a new config. Records start inactive.
func (s *Service) CreateConfig(ctx context.Context, cmd *CreateCommand) (*models.Config, error) {
	cfg, err := models.NewConfig(uuid.New(), cmd.ClientID, cmd.TargetDomain, cmd.Prefix, cmd.CredentialRef, time.Now().UTC())
	if err != nil {
		return nil, err
	}

	if err := s.store.Create(ctx, cfg); err != nil {
		if errors.Is(err, sentinel.ErrAlreadyUsed) {
			return nil, dErrors.New(dErrors.CodeConflict, "tenant config already exists")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to create tenant config")
	}

	s.logger.InfoContext(ctx, "tenant config created",
		"config_id", cfg.ID,
		"client_id", cfg.ClientID,
		"target_domain", cfg.TargetDomain,
	)
	return cfg, nil
}

// GetConfig fetches a config record by id.
func (s *Service) GetConfig(ctx context.Context, id uuid.UUID) (*models.Config, error) {
	cfg, err := s.store.FindByID(ctx, id)
	if err != nil {
		return nil, wrapStoreErr(err, "failed to load tenant config")
	}
	return cfg, nil
}

// ActivateConfig makes the given record the single active tenant config.
func (s *Service) ActivateConfig(ctx context.Context, id uuid.UUID) (*models.Config, error) {
	cfg, err := s.store.Activate(ctx, id)
	if err != nil {
		return nil, wrapStoreErr(err, "failed to activate tenant config")
	}
	s.logger.InfoContext(ctx, "tenant config activated", "config_id", cfg.ID, "prefix", cfg.Prefix)
	return cfg, nil
}

// DeactivateConfig marks the given record inactive. The gateway rejects all
// traffic until another record is activated.
func (s *Service) DeactivateConfig(ctx context.Context, id uuid.UUID) (*models.Config, error) {
	cfg, err := s.store.Deactivate(ctx, id)
	if err != nil {
		return nil, wrapStoreErr(err, "failed to deactivate tenant config")
	}
	s.logger.InfoContext(ctx, "tenant config deactivated", "config_id", cfg.ID)
	return cfg, nil
}

func wrapStoreErr(err error, msg string) error {
	if errors.Is(err, sentinel.ErrNotFound) {
		return dErrors.New(dErrors.CodeNotFound, "tenant config not found")
	}
	return dErrors.Wrap(err, dErrors.CodeInternal, msg)
}
