package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/kanakkholwal/custom-domain-sdk/internal/domains/model"
)

// PostgresStore is a durable Store implementation backed by the
// custom_domains table (see migrations/).
type PostgresStore struct {
	db *pgxpool.Pool
}

// NewPostgresStore creates a PostgresStore on the given pool.
func NewPostgresStore(db *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{db: db}
}

const recordColumns = `id, hostname, status, verification_token, provider_hostname_id, last_error, created_at, updated_at`

// Lookup implements Store.
func (s *PostgresStore) Lookup(ctx context.Context, hostname string) (*model.Record, error) {
	rec := &model.Record{}
	err := s.db.QueryRow(ctx,
		`SELECT `+recordColumns+` FROM custom_domains WHERE hostname = $1`,
		model.NormalizeHostname(hostname),
	).Scan(&rec.ID, &rec.Hostname, &rec.Status, &rec.VerificationToken,
		&rec.ProviderHostnameID, &rec.LastError, &rec.CreatedAt, &rec.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrDomainNotFound
		}
		return nil, fmt.Errorf("lookup domain: %w", err)
	}
	return rec, nil
}

// Create implements Store. An existing row for the hostname is replaced,
// matching the reference implementation's overwrite semantics.
func (s *PostgresStore) Create(ctx context.Context, rec *model.Record) (*model.Record, error) {
	stored := &model.Record{}
	err := s.db.QueryRow(ctx,
		`INSERT INTO custom_domains (`+recordColumns+`)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 ON CONFLICT (hostname) DO UPDATE SET
		   id = EXCLUDED.id,
		   status = EXCLUDED.status,
		   verification_token = EXCLUDED.verification_token,
		   provider_hostname_id = EXCLUDED.provider_hostname_id,
		   last_error = EXCLUDED.last_error,
		   created_at = EXCLUDED.created_at,
		   updated_at = EXCLUDED.updated_at
		 RETURNING `+recordColumns,
		rec.ID, model.NormalizeHostname(rec.Hostname), rec.Status, rec.VerificationToken,
		rec.ProviderHostnameID, rec.LastError, rec.CreatedAt, rec.UpdatedAt,
	).Scan(&stored.ID, &stored.Hostname, &stored.Status, &stored.VerificationToken,
		&stored.ProviderHostnameID, &stored.LastError, &stored.CreatedAt, &stored.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("insert domain: %w", err)
	}
	return stored, nil
}

// Update implements Store.
func (s *PostgresStore) Update(ctx context.Context, rec *model.Record) (*model.Record, error) {
	stored := &model.Record{}
	err := s.db.QueryRow(ctx,
		`UPDATE custom_domains SET
		   status = $2,
		   provider_hostname_id = $3,
		   last_error = $4,
		   updated_at = $5
		 WHERE hostname = $1
		 RETURNING `+recordColumns,
		model.NormalizeHostname(rec.Hostname), rec.Status,
		rec.ProviderHostnameID, rec.LastError, rec.UpdatedAt,
	).Scan(&stored.ID, &stored.Hostname, &stored.Status, &stored.VerificationToken,
		&stored.ProviderHostnameID, &stored.LastError, &stored.CreatedAt, &stored.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrDomainNotFound
		}
		return nil, fmt.Errorf("update domain: %w", err)
	}
	return stored, nil
}
