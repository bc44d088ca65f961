package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"bankadapter/internal/sentinel"
	"bankadapter/internal/tenant/models"
)

// Postgres persists tenant configs in PostgreSQL.
type Postgres struct {
	db *sql.DB
}

// NewPostgres constructs a PostgreSQL-backed config store.
func NewPostgres(db *sql.DB) *Postgres {
	return &Postgres{db: db}
}

// Create inserts the config. Configs start inactive; Activate flips them.
func (s *Postgres) Create(ctx context.Context, cfg *models.Config) error {
	if cfg == nil {
		return fmt.Errorf("config is required")
	}
	query := `
		INSERT INTO tenant_configs (id, client_id, target_domain, prefix, credential_ref, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := s.db.ExecContext(ctx, query,
		cfg.ID,
		cfg.ClientID,
		cfg.TargetDomain,
		cfg.Prefix,
		cfg.CredentialRef,
		cfg.IsActive,
		cfg.CreatedAt,
		cfg.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("config %s: %w", cfg.ClientID, sentinel.ErrAlreadyUsed)
		}
		return fmt.Errorf("create tenant config: %w", err)
	}
	return nil
}

// FindByID retrieves a config by its UUID.
func (s *Postgres) FindByID(ctx context.Context, id uuid.UUID) (*models.Config, error) {
	query := selectConfig + ` WHERE id = $1`
	cfg, err := scanConfig(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find tenant config by id: %w", err)
	}
	return cfg, nil
}

// FindActive returns the single active config.
func (s *Postgres) FindActive(ctx context.Context) (*models.Config, error) {
	query := selectConfig + ` WHERE is_active LIMIT 1`
	cfg, err := scanConfig(s.db.QueryRowContext(ctx, query))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find active tenant config: %w", err)
	}
	return cfg, nil
}

// Activate marks the given config active and every other config inactive in
// one transaction.
func (s *Postgres) Activate(ctx context.Context, id uuid.UUID) (*models.Config, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin activate: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	if _, err := tx.ExecContext(ctx,
		`UPDATE tenant_configs SET is_active = false, updated_at = now() WHERE is_active AND id <> $1`, id,
	); err != nil {
		return nil, fmt.Errorf("deactivate others: %w", err)
	}

	res, err := tx.ExecContext(ctx,
		`UPDATE tenant_configs SET is_active = true, updated_at = now() WHERE id = $1`, id,
	)
	if err != nil {
		return nil, fmt.Errorf("activate tenant config: %w", err)
	}
	if rows, err := res.RowsAffected(); err == nil && rows == 0 {
		return nil, sentinel.ErrNotFound
	}

	cfg, err := scanConfig(tx.QueryRowContext(ctx, selectConfig+` WHERE id = $1`, id))
	if err != nil {
		return nil, fmt.Errorf("reload tenant config: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit activate: %w", err)
	}
	return cfg, nil
}

// Deactivate marks the given config inactive.
func (s *Postgres) Deactivate(ctx context.Context, id uuid.UUID) (*models.Config, error) {
	res, err := s.db.ExecContext(ctx,
		`UPDATE tenant_configs SET is_active = false, updated_at = now() WHERE id = $1`, id,
	)
	if err != nil {
		return nil, fmt.Errorf("deactivate tenant config: %w", err)
	}
	if rows, err := res.RowsAffected(); err == nil && rows == 0 {
		return nil, sentinel.ErrNotFound
	}
	return s.FindByID(ctx, id)
}

const selectConfig = `
	SELECT id, client_id, target_domain, prefix, credential_ref, is_active, created_at, updated_at
	FROM tenant_configs`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanConfig(row rowScanner) (*models.Config, error) {
	var cfg models.Config
	if err := row.Scan(
		&cfg.ID,
		&cfg.ClientID,
		&cfg.TargetDomain,
		&cfg.Prefix,
		&cfg.CredentialRef,
		&cfg.IsActive,
		&cfg.CreatedAt,
		&cfg.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}

var _ ConfigStore = (*Postgres)(nil)
