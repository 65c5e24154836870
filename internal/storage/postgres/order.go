package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/go-faster/errors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/blissbakes/bakehouse/internal/order"
)

const (
	createOrderSQL = `INSERT INTO orders
		(id, ticket_id, customer_name, customer_phone, delivery_address, items, total, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	getOrderByTicketSQL = `SELECT id, ticket_id, customer_name, customer_phone,
		delivery_address, items, total, status, created_at
		FROM orders WHERE ticket_id = $1`
)

var _ order.Repository = (*OrderRepository)(nil)

// OrderRepository implements order.Repository backed by PostgreSQL.
type OrderRepository struct {
	pool *pgxpool.Pool
}

// NewOrderRepository returns an OrderRepository that uses the given pool.
func NewOrderRepository(pool *pgxpool.Pool) *OrderRepository {
	return &OrderRepository{pool: pool}
}

// Create persists a new order. Line items are serialized to JSON for storage
// in the JSONB column.
func (r *OrderRepository) Create(ctx context.Context, o *order.Order) error {
	itemsJSON, err := json.Marshal(o.Items)
	if err != nil {
		return fmt.Errorf("marshaling order items: %w", err)
	}

	_, err = r.pool.Exec(ctx, createOrderSQL,
		o.ID, o.TicketID, o.CustomerName, o.CustomerPhone, o.DeliveryAddress,
		itemsJSON, o.Total, string(o.Status), o.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("creating order %q: %w", o.TicketID, err)
	}
	return nil
}

// GetByTicketID returns the order with the given ticket identifier.
func (r *OrderRepository) GetByTicketID(ctx context.Context, ticketID string) (*order.Order, error) {
	rows, err := r.pool.Query(ctx, getOrderByTicketSQL, ticketID)
	if err != nil {
		return nil, fmt.Errorf("getting order %q: %w", ticketID, err)
	}

	o, err := pgx.CollectExactlyOneRow(rows, scanOrder)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, order.ErrNotFound
		}
		return nil, fmt.Errorf("getting order %q: %w", ticketID, err)
	}
	return &o, nil
}

func scanOrder(row pgx.CollectableRow) (order.Order, error) {
	var (
		o         order.Order
		itemsJSON []byte
		status    string
	)
	err := row.Scan(
		&o.ID, &o.TicketID, &o.CustomerName, &o.CustomerPhone,
		&o.DeliveryAddress, &itemsJSON, &o.Total, &status, &o.CreatedAt,
	)
	if err != nil {
		return order.Order{}, err
	}
	if err := json.Unmarshal(itemsJSON, &o.Items); err != nil {
		return order.Order{}, fmt.Errorf("unmarshaling order items: %w", err)
	}
	o.Status = order.Status(status)
	return o, nil
}
