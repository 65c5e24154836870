package postgres

import (
	"context"
	"fmt"

	"github.com/go-faster/errors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/blissbakes/bakehouse/internal/auth"
)

const (
	findKeyByHashSQL = `SELECT id, key_hash, name
		FROM api_keys WHERE key_hash = $1 AND active`

	upsertKeySQL = `INSERT INTO api_keys (id, key_hash, name, active)
		VALUES ($1, $2, $3, TRUE)
		ON CONFLICT (key_hash) DO UPDATE SET name = EXCLUDED.name, active = TRUE`
)

var _ auth.Repository = (*APIKeyRepository)(nil)

// APIKeyRepository implements auth.Repository backed by PostgreSQL.
type APIKeyRepository struct {
	pool *pgxpool.Pool
}

// NewAPIKeyRepository returns an APIKeyRepository that uses the given pool.
func NewAPIKeyRepository(pool *pgxpool.Pool) *APIKeyRepository {
	return &APIKeyRepository{pool: pool}
}

// FindByHash looks up an active API key by its HMAC-SHA256 hash.
func (r *APIKeyRepository) FindByHash(ctx context.Context, hash string) (*auth.KeyInfo, error) {
	var info auth.KeyInfo
	err := r.pool.QueryRow(ctx, findKeyByHashSQL, hash).Scan(&info.ID, &info.KeyHash, &info.Name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, auth.ErrUnauthorized
		}
		return nil, fmt.Errorf("finding api key: %w", err)
	}
	return &info, nil
}

// Upsert stores a key hash, used by the seeder. Re-seeding an existing hash
// refreshes its name and reactivates it.
func (r *APIKeyRepository) Upsert(ctx context.Context, id, keyHash, name string) error {
	if _, err := r.pool.Exec(ctx, upsertKeySQL, id, keyHash, name); err != nil {
		return fmt.Errorf("upserting api key %q: %w", name, err)
	}
	return nil
}
