package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"domainfolio/internal/portfolio/models"
)

// Postgres persists the portfolio blobs in a small key-value table with a
// JSONB value column. The blob layout matches the other backends so the
// repository can be swapped by configuration alone.
type Postgres struct {
	pool *pgxpool.Pool
}

func NewPostgres(pool *pgxpool.Pool) *Postgres {
	return &Postgres{pool: pool}
}

// Migrate creates the backing table if it does not exist.
func (s *Postgres) Migrate(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS portfolio_blobs (
			key        TEXT PRIMARY KEY,
			value      JSONB NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`)
	if err != nil {
		return fmt.Errorf("create portfolio_blobs: %w", err)
	}
	return nil
}

func (s *Postgres) LoadDomains(ctx context.Context) ([]models.Domain, error) {
	var out []models.Domain
	if err := s.load(ctx, KeyDomains, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Postgres) SaveDomains(ctx context.Context, domains []models.Domain) error {
	return s.save(ctx, KeyDomains, domains)
}

func (s *Postgres) LoadSold(ctx context.Context) ([]models.SoldDomain, error) {
	var out []models.SoldDomain
	if err := s.load(ctx, KeySold, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Postgres) SaveSold(ctx context.Context, sold []models.SoldDomain) error {
	return s.save(ctx, KeySold, sold)
}

func (s *Postgres) load(ctx context.Context, key string, out any) error {
	var blob []byte
	err := s.pool.QueryRow(ctx,
		`SELECT value FROM portfolio_blobs WHERE key = $1`, key).Scan(&blob)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("select %s: %w", key, err)
	}
	if err := json.Unmarshal(blob, out); err != nil {
		return fmt.Errorf("decode %s: %w", key, err)
	}
	return nil
}

func (s *Postgres) save(ctx context.Context, key string, v any) error {
	blob, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	_, err = s.pool.Exec(ctx, `
		INSERT INTO portfolio_blobs (key, value, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = now()`,
		key, blob)
	if err != nil {
		return fmt.Errorf("upsert %s: %w", key, err)
	}
	return nil
}
