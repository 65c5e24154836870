// Package cart tracks what a shopper intends to buy across page views.
//
// A cart is keyed by session and persisted as a full JSON snapshot to a
// kv.Store on every mutation, so a reload restores prior state. Corrupt or
// missing snapshots degrade to an empty cart; persistence failures are logged
// and never surfaced to callers — the in-memory state stays authoritative for
// the current session.
package cart

import (
	"context"
	"sync"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/blissbakes/bakehouse/internal/catalog"
	"github.com/blissbakes/bakehouse/internal/kv"
)

// ErrInvalidQuantity is returned by Add when the requested quantity is below
// one. The operation is rejected without mutating the cart.
var ErrInvalidQuantity = errors.New("quantity must be at least 1")

// Entry is one line in the cart: a product snapshot plus a quantity.
// The slug is the canonical product key; no two entries share one.
type Entry struct {
	Slug      string
	Name      catalog.Text
	UnitPrice decimal.Decimal
	Quantity  int
}

// Subtotal returns quantity times unit price for this entry.
func (e Entry) Subtotal() decimal.Decimal {
	return e.UnitPrice.Mul(decimal.NewFromInt(int64(e.Quantity)))
}

// Cart is a mutable, session-scoped product selection.
//
// A browser tab is single-threaded, but an HTTP server is not: the mutex
// serializes handlers racing on the same session. Concurrent writers through
// separate Cart instances (two tabs, two requests) remain last-write-wins on
// the persisted snapshot, an accepted limitation.
type Cart struct {
	mu      sync.Mutex
	store   kv.Store
	key     string
	lg      *zap.Logger
	entries map[string]*Entry
	order   []string // slugs in insertion order
}

// storageKey returns the kv key for a session's cart snapshot.
func storageKey(sessionID string) string {
	return "cart:" + sessionID
}

// Load constructs the cart for a session, restoring the persisted snapshot
// when one exists. A missing, corrupt or structurally incompatible snapshot
// yields an empty cart and never an error.
func Load(ctx context.Context, store kv.Store, sessionID string, lg *zap.Logger) *Cart {
	c := &Cart{
		store:   store,
		key:     storageKey(sessionID),
		lg:      lg,
		entries: make(map[string]*Entry),
	}

	raw, err := store.Get(ctx, c.key)
	if err != nil {
		if !errors.Is(err, kv.ErrNotFound) {
			lg.Warn("Cart snapshot read failed, starting empty",
				zap.String("key", c.key), zap.Error(err))
		}
		return c
	}

	entries, err := decodeSnapshot(raw)
	if err != nil {
		lg.Warn("Cart snapshot corrupt, starting empty",
			zap.String("key", c.key), zap.Error(err))
		return c
	}
	for i := range entries {
		e := entries[i]
		if _, ok := c.entries[e.Slug]; ok || e.Quantity < 1 {
			continue
		}
		c.entries[e.Slug] = &e
		c.order = append(c.order, e.Slug)
	}
	return c
}

// Add inserts the product with the given quantity, or increments the existing
// entry's quantity when the product is already present. Quantities below one
// are rejected with ErrInvalidQuantity and no state change.
func (c *Cart) Add(ctx context.Context, p catalog.Product, quantity int) error {
	if quantity < 1 {
		return ErrInvalidQuantity
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if e, ok := c.entries[p.Slug]; ok {
		e.Quantity += quantity
	} else {
		c.entries[p.Slug] = &Entry{
			Slug:      p.Slug,
			Name:      p.Name,
			UnitPrice: p.Price,
			Quantity:  quantity,
		}
		c.order = append(c.order, p.Slug)
	}

	c.persist(ctx)
	return nil
}

// SetQuantity sets an entry's quantity exactly. A quantity below one removes
// the entry. Unknown slugs are a no-op.
func (c *Cart) SetQuantity(ctx context.Context, slug string, quantity int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if quantity < 1 {
		c.removeLocked(slug)
		c.persist(ctx)
		return
	}

	e, ok := c.entries[slug]
	if !ok {
		return
	}
	e.Quantity = quantity
	c.persist(ctx)
}

// Remove deletes the entry for slug; absent slugs are a no-op.
func (c *Cart) Remove(ctx context.Context, slug string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.removeLocked(slug)
	c.persist(ctx)
}

// Clear empties the cart and deletes the persisted snapshot.
func (c *Cart) Clear(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = make(map[string]*Entry)
	c.order = nil

	if err := c.store.Delete(ctx, c.key); err != nil {
		c.lg.Warn("Cart snapshot delete failed",
			zap.String("key", c.key), zap.Error(err))
	}
}

// Entries returns a copy of the cart lines in insertion order.
func (c *Cart) Entries() []Entry {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]Entry, 0, len(c.order))
	for _, slug := range c.order {
		out = append(out, *c.entries[slug])
	}
	return out
}

// ItemCount returns the sum of quantities across all entries.
func (c *Cart) ItemCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	total := 0
	for _, e := range c.entries {
		total += e.Quantity
	}
	return total
}

// TotalPrice returns the sum of quantity times unit price across all entries.
func (c *Cart) TotalPrice() decimal.Decimal {
	c.mu.Lock()
	defer c.mu.Unlock()

	sum := decimal.Zero
	for _, e := range c.entries {
		sum = sum.Add(e.Subtotal())
	}
	return sum
}

func (c *Cart) removeLocked(slug string) {
	if _, ok := c.entries[slug]; !ok {
		return
	}
	delete(c.entries, slug)
	for i, s := range c.order {
		if s == slug {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
}

// persist writes the full snapshot under the cart's key. Failures (quota,
// storage down) are logged; the in-memory cart remains authoritative.
// Callers must hold c.mu.
func (c *Cart) persist(ctx context.Context) {
	entries := make([]Entry, 0, len(c.order))
	for _, slug := range c.order {
		entries = append(entries, *c.entries[slug])
	}

	if err := c.store.Set(ctx, c.key, encodeSnapshot(entries)); err != nil {
		c.lg.Warn("Cart snapshot write failed",
			zap.String("key", c.key), zap.Error(err))
	}
}

// Manager loads session carts from a shared store.
type Manager struct {
	store kv.Store
	lg    *zap.Logger
}

// NewManager creates a Manager persisting carts to the given store.
func NewManager(store kv.Store, lg *zap.Logger) *Manager {
	return &Manager{store: store, lg: lg}
}

// Load returns the cart for the given session.
func (m *Manager) Load(ctx context.Context, sessionID string) *Cart {
	return Load(ctx, m.store, sessionID, m.lg)
}
