package catalog

import (
	"context"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
)

// ErrNotFound is returned when a requested product does not exist.
var ErrNotFound = errors.New("product not found")

// Locale identifies a supported storefront language.
type Locale string

const (
	LocaleEN Locale = "en"
	LocaleBN Locale = "bn"
)

// Text holds a per-locale string. Both locales are always present in catalog
// data; there is no fallback between them.
type Text struct {
	EN string `json:"en"`
	BN string `json:"bn"`
}

// In returns the text for the given locale, defaulting to English for any
// unrecognized value.
func (t Text) In(l Locale) string {
	if l == LocaleBN {
		return t.BN
	}
	return t.EN
}

// Product represents a catalog item available for purchase.
//
// The slug is the canonical product identity across the whole service: cart
// entries, order line items and URLs all key on it. ID is a display-only
// numeric kept for parity with the seeded catalog data.
type Product struct {
	ID          int64
	Slug        string
	Name        Text
	Description Text
	Price       decimal.Decimal
	Calories    int
	Image       string
	Ingredients []string
	Tags        []string
}

// Repository defines read operations for the product catalog.
//
// List returns products in catalog order, which is the tie-break order for
// every stable sort downstream.
type Repository interface {
	List(ctx context.Context) ([]Product, error)
	GetBySlug(ctx context.Context, slug string) (*Product, error)
	GetBySlugs(ctx context.Context, slugs []string) ([]Product, error)
}
