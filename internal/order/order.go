package order

import (
	"context"
	"time"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"

	"github.com/blissbakes/bakehouse/internal/catalog"
)

// ErrNotFound is returned when a requested order does not exist.
var ErrNotFound = errors.New("order not found")

// Status tracks an order through the bakery's workflow.
type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

// Order is a persisted customer order. The ticket ID is the short
// human-facing identifier printed on invoices and shared over chat.
type Order struct {
	ID              string
	TicketID        string
	CustomerName    string
	CustomerPhone   string
	DeliveryAddress string // empty means pickup
	Items           []LineItem
	Total           decimal.Decimal
	Status          Status
	CreatedAt       time.Time
}

// LineItem snapshots a product at order time. Name and unit price are copied
// from the catalog so later catalog edits don't rewrite history.
type LineItem struct {
	Slug      string          `json:"slug"`
	Name      catalog.Text    `json:"name"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Quantity  int             `json:"quantity"`
}

// Subtotal returns quantity times unit price for this line.
func (li LineItem) Subtotal() decimal.Decimal {
	return li.UnitPrice.Mul(decimal.NewFromInt(int64(li.Quantity)))
}

// Repository defines persistence operations for orders.
type Repository interface {
	Create(ctx context.Context, order *Order) error
	GetByTicketID(ctx context.Context, ticketID string) (*Order, error)
}
