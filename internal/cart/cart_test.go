package cart

import (
	"context"
	"testing"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/blissbakes/bakehouse/internal/catalog"
	"github.com/blissbakes/bakehouse/internal/storage/memory"
)

func newTestProduct(slug string, price int64) catalog.Product {
	return catalog.Product{
		Slug:  slug,
		Name:  catalog.Text{EN: slug, BN: slug},
		Price: decimal.NewFromInt(price),
	}
}

func TestCart_AddAccumulates(t *testing.T) {
	ctx := context.Background()
	c := Load(ctx, memory.NewKV(), "s1", zaptest.NewLogger(t))
	p := newTestProduct("sourdough", 350)

	require.NoError(t, c.Add(ctx, p, 1))
	require.NoError(t, c.Add(ctx, p, 2))

	entries := c.Entries()
	require.Len(t, entries, 1, "same product must not duplicate")
	assert.Equal(t, 3, entries[0].Quantity)
	assert.Equal(t, 3, c.ItemCount())
}

func TestCart_AddRejectsInvalidQuantity(t *testing.T) {
	ctx := context.Background()
	c := Load(ctx, memory.NewKV(), "s1", zaptest.NewLogger(t))
	p := newTestProduct("sourdough", 350)

	require.ErrorIs(t, c.Add(ctx, p, 0), ErrInvalidQuantity)
	require.ErrorIs(t, c.Add(ctx, p, -2), ErrInvalidQuantity)
	assert.Empty(t, c.Entries(), "rejected add must not mutate state")
}

func TestCart_SetQuantityExact(t *testing.T) {
	ctx := context.Background()
	c := Load(ctx, memory.NewKV(), "s1", zaptest.NewLogger(t))
	p := newTestProduct("sourdough", 350)

	require.NoError(t, c.Add(ctx, p, 5))
	c.SetQuantity(ctx, "sourdough", 2)

	entries := c.Entries()
	require.Len(t, entries, 1)
	assert.Equal(t, 2, entries[0].Quantity, "set is exact, not additive")
}

func TestCart_SetQuantityZeroRemoves(t *testing.T) {
	ctx := context.Background()
	c := Load(ctx, memory.NewKV(), "s1", zaptest.NewLogger(t))

	require.NoError(t, c.Add(ctx, newTestProduct("sourdough", 350), 2))
	require.NoError(t, c.Add(ctx, newTestProduct("baguette", 90), 1))

	c.SetQuantity(ctx, "sourdough", 0)

	entries := c.Entries()
	require.Len(t, entries, 1)
	assert.Equal(t, "baguette", entries[0].Slug)
	assert.Equal(t, 1, c.ItemCount())
}

func TestCart_SetQuantityUnknownSlug(t *testing.T) {
	ctx := context.Background()
	c := Load(ctx, memory.NewKV(), "s1", zaptest.NewLogger(t))

	c.SetQuantity(ctx, "ghost", 3)
	assert.Empty(t, c.Entries())
}

func TestCart_RemoveAbsentIsNoop(t *testing.T) {
	ctx := context.Background()
	c := Load(ctx, memory.NewKV(), "s1", zaptest.NewLogger(t))

	require.NoError(t, c.Add(ctx, newTestProduct("sourdough", 350), 1))
	c.Remove(ctx, "ghost")

	assert.Len(t, c.Entries(), 1)
}

func TestCart_TotalPrice(t *testing.T) {
	ctx := context.Background()
	c := Load(ctx, memory.NewKV(), "s1", zaptest.NewLogger(t))

	require.NoError(t, c.Add(ctx, newTestProduct("p1", 100), 2))
	require.NoError(t, c.Add(ctx, newTestProduct("p2", 50), 1))

	assert.True(t, c.TotalPrice().Equal(decimal.NewFromInt(250)),
		"got %s", c.TotalPrice())
}

func TestCart_Clear(t *testing.T) {
	ctx := context.Background()
	store := memory.NewKV()
	c := Load(ctx, store, "s1", zaptest.NewLogger(t))

	require.NoError(t, c.Add(ctx, newTestProduct("p1", 100), 2))
	c.Clear(ctx)

	assert.Empty(t, c.Entries())
	assert.Equal(t, 0, c.ItemCount())

	// A fresh load sees no snapshot either.
	reloaded := Load(ctx, store, "s1", zaptest.NewLogger(t))
	assert.Empty(t, reloaded.Entries())
}

func TestCart_PersistenceRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := memory.NewKV()
	lg := zaptest.NewLogger(t)

	c := Load(ctx, store, "s1", lg)
	require.NoError(t, c.Add(ctx, newTestProduct("sourdough", 350), 2))
	require.NoError(t, c.Add(ctx, newTestProduct("baguette", 90), 1))

	reloaded := Load(ctx, store, "s1", lg)
	entries := reloaded.Entries()
	require.Len(t, entries, 2)
	assert.Equal(t, "sourdough", entries[0].Slug)
	assert.Equal(t, 2, entries[0].Quantity)
	assert.True(t, entries[0].UnitPrice.Equal(decimal.NewFromInt(350)))
	assert.Equal(t, "baguette", entries[1].Slug)
	assert.Equal(t, 1, entries[1].Quantity)
	assert.True(t, reloaded.TotalPrice().Equal(decimal.NewFromInt(790)))
}

func TestCart_SessionsAreIsolated(t *testing.T) {
	ctx := context.Background()
	store := memory.NewKV()
	lg := zaptest.NewLogger(t)

	c1 := Load(ctx, store, "s1", lg)
	require.NoError(t, c1.Add(ctx, newTestProduct("p1", 100), 1))

	c2 := Load(ctx, store, "s2", lg)
	assert.Empty(t, c2.Entries())
}

func TestCart_CorruptSnapshotRecovery(t *testing.T) {
	ctx := context.Background()
	lg := zaptest.NewLogger(t)

	for name, raw := range map[string]string{
		"not json":     `{{{nope`,
		"wrong shape":  `[1,2,3]`,
		"bad price":    `{"entries":[{"slug":"x","unitPrice":"abc","quantity":1}]}`,
		"missing slug": `{"entries":[{"unitPrice":"10","quantity":1}]}`,
	} {
		t.Run(name, func(t *testing.T) {
			store := memory.NewKV()
			require.NoError(t, store.Set(ctx, storageKey("s1"), []byte(raw)))

			c := Load(ctx, store, "s1", lg)
			assert.Empty(t, c.Entries(), "corrupt snapshot must yield empty cart")
			assert.Equal(t, 0, c.ItemCount())
		})
	}
}

func TestCart_SnapshotSkipsInvalidEntries(t *testing.T) {
	ctx := context.Background()
	store := memory.NewKV()
	raw := `{"entries":[{"slug":"ok","unitPrice":"10","quantity":2},{"slug":"dup","unitPrice":"5","quantity":0}]}`
	require.NoError(t, store.Set(ctx, storageKey("s1"), []byte(raw)))

	c := Load(ctx, store, "s1", zaptest.NewLogger(t))
	entries := c.Entries()
	require.Len(t, entries, 1, "entries with quantity < 1 are dropped on load")
	assert.Equal(t, "ok", entries[0].Slug)
}

// failingStore always fails writes; reads succeed against the wrapped store.
type failingStore struct {
	*memory.KV
}

func (f *failingStore) Set(context.Context, string, []byte) error {
	return errors.New("quota exceeded")
}

func TestCart_PersistFailureKeepsMemoryAuthoritative(t *testing.T) {
	ctx := context.Background()
	c := Load(ctx, &failingStore{KV: memory.NewKV()}, "s1", zaptest.NewLogger(t))

	require.NoError(t, c.Add(ctx, newTestProduct("p1", 100), 2),
		"persistence failure must not surface to the caller")
	assert.Equal(t, 2, c.ItemCount())
	assert.True(t, c.TotalPrice().Equal(decimal.NewFromInt(200)))
}

func TestManager_Load(t *testing.T) {
	ctx := context.Background()
	store := memory.NewKV()
	m := NewManager(store, zaptest.NewLogger(t))

	c := m.Load(ctx, "s1")
	require.NoError(t, c.Add(ctx, newTestProduct("p1", 100), 1))

	again := m.Load(ctx, "s1")
	assert.Equal(t, 1, again.ItemCount())
}
