package postgres

import (
	"context"
	"fmt"

	"github.com/go-faster/errors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/blissbakes/bakehouse/internal/catalog"
)

const (
	productColumns = `id, slug, name_en, name_bn, description_en, description_bn,
		price, calories, image, ingredients, tags`

	listProductsSQL = `SELECT ` + productColumns + `
		FROM products WHERE active ORDER BY position, id`

	getProductBySlugSQL = `SELECT ` + productColumns + `
		FROM products WHERE slug = $1 AND active`

	getProductsBySlugsSQL = `SELECT ` + productColumns + `
		FROM products WHERE slug = ANY($1) AND active ORDER BY position, id`

	upsertProductSQL = `INSERT INTO products
		(id, slug, name_en, name_bn, description_en, description_bn,
		 price, calories, image, ingredients, tags, active, position)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, TRUE, $12)
		ON CONFLICT (slug) DO UPDATE SET
			id = EXCLUDED.id,
			name_en = EXCLUDED.name_en,
			name_bn = EXCLUDED.name_bn,
			description_en = EXCLUDED.description_en,
			description_bn = EXCLUDED.description_bn,
			price = EXCLUDED.price,
			calories = EXCLUDED.calories,
			image = EXCLUDED.image,
			ingredients = EXCLUDED.ingredients,
			tags = EXCLUDED.tags,
			active = TRUE,
			position = EXCLUDED.position`
)

var _ catalog.Repository = (*CatalogRepository)(nil)

// CatalogRepository implements catalog.Repository backed by PostgreSQL.
// Catalog order is the products table's position column.
type CatalogRepository struct {
	pool *pgxpool.Pool
}

// NewCatalogRepository returns a CatalogRepository that uses the given pool.
func NewCatalogRepository(pool *pgxpool.Pool) *CatalogRepository {
	return &CatalogRepository{pool: pool}
}

// List returns all active products in catalog order.
func (r *CatalogRepository) List(ctx context.Context) ([]catalog.Product, error) {
	rows, err := r.pool.Query(ctx, listProductsSQL)
	if err != nil {
		return nil, fmt.Errorf("listing products: %w", err)
	}
	return pgx.CollectRows(rows, scanProduct)
}

// GetBySlug returns a single product by its slug.
func (r *CatalogRepository) GetBySlug(ctx context.Context, slug string) (*catalog.Product, error) {
	rows, err := r.pool.Query(ctx, getProductBySlugSQL, slug)
	if err != nil {
		return nil, fmt.Errorf("getting product %q: %w", slug, err)
	}

	p, err := pgx.CollectExactlyOneRow(rows, scanProduct)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, catalog.ErrNotFound
		}
		return nil, fmt.Errorf("getting product %q: %w", slug, err)
	}
	return &p, nil
}

// GetBySlugs returns products matching any of the given slugs, in catalog
// order.
func (r *CatalogRepository) GetBySlugs(ctx context.Context, slugs []string) ([]catalog.Product, error) {
	rows, err := r.pool.Query(ctx, getProductsBySlugsSQL, slugs)
	if err != nil {
		return nil, fmt.Errorf("getting products by slugs: %w", err)
	}
	return pgx.CollectRows(rows, scanProduct)
}

// Upsert inserts or updates a product keyed by slug, used by the seeder.
// The position sets catalog order.
func (r *CatalogRepository) Upsert(ctx context.Context, p catalog.Product, position int) error {
	_, err := r.pool.Exec(ctx, upsertProductSQL,
		p.ID, p.Slug, p.Name.EN, p.Name.BN, p.Description.EN, p.Description.BN,
		p.Price, p.Calories, p.Image, p.Ingredients, p.Tags, position,
	)
	if err != nil {
		return fmt.Errorf("upserting product %q: %w", p.Slug, err)
	}
	return nil
}

func scanProduct(row pgx.CollectableRow) (catalog.Product, error) {
	var (
		p     catalog.Product
		price decimal.Decimal
	)
	err := row.Scan(
		&p.ID, &p.Slug, &p.Name.EN, &p.Name.BN, &p.Description.EN, &p.Description.BN,
		&price, &p.Calories, &p.Image, &p.Ingredients, &p.Tags,
	)
	p.Price = price
	if p.Tags == nil {
		p.Tags = []string{}
	}
	return p, err
}
