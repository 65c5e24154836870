package invoice

import (
	"bytes"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blissbakes/bakehouse/internal/catalog"
	"github.com/blissbakes/bakehouse/internal/order"
)

func testRenderer() *Renderer {
	return NewRenderer(StoreInfo{
		Name:    "Bliss Bakes",
		Slogan:  "Artisan breads, every day",
		Address: "12 Lake Road",
		City:    "Dhaka",
		Phone:   "+8801800000000",
	})
}

func testOrder() *order.Order {
	return &order.Order{
		ID:            "00000000-0000-0000-0000-000000000001",
		TicketID:      "BB-A1B2C3",
		CustomerName:  "Anika Rahman",
		CustomerPhone: "+8801712345678",
		Items: []order.LineItem{
			{
				Slug:      "sourdough",
				Name:      catalog.Text{EN: "Classic Sourdough", BN: "ক্লাসিক সাউরডো"},
				UnitPrice: decimal.NewFromInt(350),
				Quantity:  2,
			},
			{
				Slug:      "baguette",
				Name:      catalog.Text{EN: "Baguette", BN: "বাগেত"},
				UnitPrice: decimal.NewFromInt(90),
				Quantity:  1,
			},
		},
		Total:     decimal.NewFromInt(790),
		Status:    order.StatusPending,
		CreatedAt: time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC),
	}
}

func TestRender(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, testRenderer().Render(&buf, testOrder()))

	out := buf.Bytes()
	require.NotEmpty(t, out)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF-")), "output must be a PDF document")
	assert.Greater(t, len(out), 1000, "a rendered invoice is not a stub document")
}

func TestRender_PickupOrder(t *testing.T) {
	o := testOrder()
	o.DeliveryAddress = ""

	var buf bytes.Buffer
	require.NoError(t, testRenderer().Render(&buf, o))
	assert.NotEmpty(t, buf.Bytes())
}
