package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/blissbakes/bakehouse/internal/views"
)

const (
	incrementViewSQL = `INSERT INTO product_views (slug, views) VALUES ($1, 1)
		ON CONFLICT (slug) DO UPDATE SET views = product_views.views + 1`

	countViewsSQL = `SELECT COALESCE(
		(SELECT views FROM product_views WHERE slug = $1), 0)`
)

var _ views.Repository = (*ViewRepository)(nil)

// ViewRepository implements views.Repository backed by PostgreSQL.
type ViewRepository struct {
	pool *pgxpool.Pool
}

// NewViewRepository returns a ViewRepository that uses the given pool.
func NewViewRepository(pool *pgxpool.Pool) *ViewRepository {
	return &ViewRepository{pool: pool}
}

// Increment atomically bumps the view counter for slug.
func (r *ViewRepository) Increment(ctx context.Context, slug string) error {
	if _, err := r.pool.Exec(ctx, incrementViewSQL, slug); err != nil {
		return fmt.Errorf("incrementing views for %q: %w", slug, err)
	}
	return nil
}

// Count returns the view counter for slug, zero when never viewed.
func (r *ViewRepository) Count(ctx context.Context, slug string) (int64, error) {
	var count int64
	if err := r.pool.QueryRow(ctx, countViewsSQL, slug).Scan(&count); err != nil {
		return 0, fmt.Errorf("counting views for %q: %w", slug, err)
	}
	return count, nil
}
