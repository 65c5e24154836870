// Package whatsapp formats orders into prefilled wa.me deep links, the
// storefront's order submission channel.
package whatsapp

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/blissbakes/bakehouse/internal/catalog"
	"github.com/blissbakes/bakehouse/internal/order"
)

// Composer builds deep links targeting the store's WhatsApp number.
type Composer struct {
	// storePhone is the destination number in international format without
	// the leading plus, as wa.me expects (e.g. "8801712345678").
	storePhone string
	currency   string
}

// NewComposer creates a Composer for the given store phone number. The
// currency symbol prefixes every amount in the message.
func NewComposer(storePhone, currency string) *Composer {
	return &Composer{
		storePhone: strings.TrimPrefix(storePhone, "+"),
		currency:   currency,
	}
}

// labels per locale; Bengali strings mirror the storefront UI.
type labels struct {
	header, name, phone, address, pickup, total string
}

func labelsFor(locale catalog.Locale) labels {
	if locale == catalog.LocaleBN {
		return labels{
			header:  "নতুন অর্ডার",
			name:    "নাম",
			phone:   "ফোন",
			address: "ঠিকানা",
			pickup:  "পিকআপ",
			total:   "মোট",
		}
	}
	return labels{
		header:  "New order",
		name:    "Name",
		phone:   "Phone",
		address: "Address",
		pickup:  "Pickup",
		total:   "Total",
	}
}

// Message renders the chat message for an order in the given locale.
func (c *Composer) Message(o *order.Order, locale catalog.Locale) string {
	l := labelsFor(locale)

	var b strings.Builder
	fmt.Fprintf(&b, "%s %s\n", l.header, o.TicketID)
	fmt.Fprintf(&b, "%s: %s\n", l.name, o.CustomerName)
	fmt.Fprintf(&b, "%s: %s\n", l.phone, o.CustomerPhone)
	if o.DeliveryAddress != "" {
		fmt.Fprintf(&b, "%s: %s\n", l.address, o.DeliveryAddress)
	} else {
		fmt.Fprintf(&b, "%s: %s\n", l.address, l.pickup)
	}
	b.WriteString("\n")
	for _, item := range o.Items {
		fmt.Fprintf(&b, "• %s x%d — %s%s\n",
			item.Name.In(locale), item.Quantity, c.currency, item.Subtotal().StringFixed(2))
	}
	b.WriteString("\n")
	fmt.Fprintf(&b, "%s: %s%s", l.total, c.currency, o.Total.StringFixed(2))
	return b.String()
}

// Link returns the wa.me deep link opening a chat with the store and the
// given message prefilled.
func (c *Composer) Link(message string) string {
	return "https://wa.me/" + c.storePhone + "?text=" + url.QueryEscape(message)
}

// OrderLink renders the order message and wraps it into a deep link.
func (c *Composer) OrderLink(o *order.Order, locale catalog.Locale) string {
	return c.Link(c.Message(o, locale))
}
