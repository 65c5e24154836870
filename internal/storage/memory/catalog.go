package memory

import (
	"context"

	"github.com/blissbakes/bakehouse/internal/catalog"
)

var _ catalog.Repository = (*Catalog)(nil)

// Catalog is an immutable in-memory catalog.Repository preserving the order
// products were given in.
type Catalog struct {
	products []catalog.Product
	bySlug   map[string]*catalog.Product
}

// NewCatalog builds a repository over the given products.
func NewCatalog(products []catalog.Product) *Catalog {
	bySlug := make(map[string]*catalog.Product, len(products))
	for i := range products {
		bySlug[products[i].Slug] = &products[i]
	}
	return &Catalog{products: products, bySlug: bySlug}
}

// List returns all products in catalog order.
func (c *Catalog) List(_ context.Context) ([]catalog.Product, error) {
	out := make([]catalog.Product, len(c.products))
	copy(out, c.products)
	return out, nil
}

// GetBySlug returns the product with the given slug or catalog.ErrNotFound.
func (c *Catalog) GetBySlug(_ context.Context, slug string) (*catalog.Product, error) {
	p, ok := c.bySlug[slug]
	if !ok {
		return nil, catalog.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

// GetBySlugs returns the products matching any of the given slugs, in catalog
// order. Unknown slugs are silently omitted.
func (c *Catalog) GetBySlugs(_ context.Context, slugs []string) ([]catalog.Product, error) {
	want := make(map[string]struct{}, len(slugs))
	for _, s := range slugs {
		want[s] = struct{}{}
	}
	var out []catalog.Product
	for _, p := range c.products {
		if _, ok := want[p.Slug]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}
