package order

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-faster/errors"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/blissbakes/bakehouse/internal/catalog"
)

// Sentinel errors for order validation.
var (
	ErrEmptyItems      = errors.New("items required")
	ErrMissingCustomer = errors.New("customer name and phone required")
)

// ProductNotFoundError indicates a requested product does not exist.
type ProductNotFoundError struct {
	Slug string
}

func (e *ProductNotFoundError) Error() string {
	return fmt.Sprintf("product %s not found", e.Slug)
}

// InvalidQuantityError indicates a line item has a non-positive quantity.
type InvalidQuantityError struct {
	Slug string
}

func (e *InvalidQuantityError) Error() string {
	return fmt.Sprintf("quantity must be greater than 0 for product %s", e.Slug)
}

// ItemRequest is one requested line: a product slug and a quantity.
type ItemRequest struct {
	Slug     string
	Quantity int
}

// CreateRequest holds the input for creating an order, whether it arrives
// from storefront checkout or the admin manual-order form.
type CreateRequest struct {
	CustomerName    string
	CustomerPhone   string
	DeliveryAddress string
	Items           []ItemRequest
}

// Service encapsulates order creation business logic.
type Service struct {
	products catalog.Repository
	orders   Repository
}

// NewService creates an order Service with the required dependencies.
func NewService(products catalog.Repository, orders Repository) *Service {
	return &Service{products: products, orders: orders}
}

// Create validates the request, resolves every slug against the catalog in a
// single batch, snapshots prices, and persists the order.
func (s *Service) Create(ctx context.Context, req CreateRequest) (*Order, error) {
	if len(req.Items) == 0 {
		return nil, ErrEmptyItems
	}
	if strings.TrimSpace(req.CustomerName) == "" || strings.TrimSpace(req.CustomerPhone) == "" {
		return nil, ErrMissingCustomer
	}

	slugs := make([]string, len(req.Items))
	for i, item := range req.Items {
		if item.Quantity <= 0 {
			return nil, &InvalidQuantityError{Slug: item.Slug}
		}
		slugs[i] = item.Slug
	}

	fetched, err := s.products.GetBySlugs(ctx, slugs)
	if err != nil {
		return nil, errors.Wrap(err, "get products")
	}
	bySlug := make(map[string]catalog.Product, len(fetched))
	for _, p := range fetched {
		bySlug[p.Slug] = p
	}

	items := make([]LineItem, len(req.Items))
	total := decimal.Zero
	for i, item := range req.Items {
		p, ok := bySlug[item.Slug]
		if !ok {
			return nil, &ProductNotFoundError{Slug: item.Slug}
		}
		items[i] = LineItem{
			Slug:      p.Slug,
			Name:      p.Name,
			UnitPrice: p.Price,
			Quantity:  item.Quantity,
		}
		total = total.Add(items[i].Subtotal())
	}

	o := &Order{
		ID:              uuid.New().String(),
		TicketID:        newTicketID(),
		CustomerName:    req.CustomerName,
		CustomerPhone:   req.CustomerPhone,
		DeliveryAddress: req.DeliveryAddress,
		Items:           items,
		Total:           total.Round(2),
		Status:          StatusPending,
		CreatedAt:       time.Now().UTC(),
	}
	if err := s.orders.Create(ctx, o); err != nil {
		return nil, errors.Wrap(err, "create order")
	}
	return o, nil
}

// newTicketID derives a short human-facing ticket like BB-3F9A2C from a
// random UUID. Uniqueness is enforced by the orders table.
func newTicketID() string {
	id := uuid.New()
	return fmt.Sprintf("BB-%X", id[:3])
}
