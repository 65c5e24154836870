package whatsapp

import (
	"net/url"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blissbakes/bakehouse/internal/catalog"
	"github.com/blissbakes/bakehouse/internal/order"
)

func testOrder() *order.Order {
	return &order.Order{
		TicketID:      "BB-A1B2C3",
		CustomerName:  "Anika",
		CustomerPhone: "+8801712345678",
		Items: []order.LineItem{
			{
				Slug:      "sourdough",
				Name:      catalog.Text{EN: "Sourdough", BN: "সাউরডো"},
				UnitPrice: decimal.NewFromInt(350),
				Quantity:  2,
			},
		},
		Total: decimal.NewFromInt(700),
	}
}

func TestMessage_English(t *testing.T) {
	c := NewComposer("+8801800000000", "₹")

	msg := c.Message(testOrder(), catalog.LocaleEN)
	assert.Contains(t, msg, "New order BB-A1B2C3")
	assert.Contains(t, msg, "Name: Anika")
	assert.Contains(t, msg, "Sourdough x2")
	assert.Contains(t, msg, "₹700.00")
	assert.Contains(t, msg, "Address: Pickup", "empty address means pickup")
}

func TestMessage_Bengali(t *testing.T) {
	c := NewComposer("8801800000000", "₹")

	o := testOrder()
	o.DeliveryAddress = "12 Lake Road, Dhaka"
	msg := c.Message(o, catalog.LocaleBN)
	assert.Contains(t, msg, "নতুন অর্ডার BB-A1B2C3")
	assert.Contains(t, msg, "সাউরডো x2")
	assert.Contains(t, msg, "ঠিকানা: 12 Lake Road, Dhaka")
}

func TestLink(t *testing.T) {
	c := NewComposer("+8801800000000", "₹")

	link := c.OrderLink(testOrder(), catalog.LocaleEN)
	require.True(t, strings.HasPrefix(link, "https://wa.me/8801800000000?text="),
		"plus sign must be stripped from the phone: %s", link)

	u, err := url.Parse(link)
	require.NoError(t, err)
	text := u.Query().Get("text")
	assert.Contains(t, text, "New order BB-A1B2C3", "message must survive URL encoding")
}
