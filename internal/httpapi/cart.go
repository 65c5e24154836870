package httpapi

import (
	"net/http"

	"github.com/go-faster/jx"

	"github.com/blissbakes/bakehouse/internal/cart"
	"github.com/blissbakes/bakehouse/internal/order"
)

func (h *Handler) getCart(w http.ResponseWriter, r *http.Request) {
	c := h.carts.Load(r.Context(), sessionID(w, r))
	h.respondCart(w, c)
}

func (h *Handler) addCartItem(w http.ResponseWriter, r *http.Request) {
	body, err := readBody(w, r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	req, err := decodeAddItemRequest(body)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	p, err := h.products.GetBySlug(r.Context(), req.Slug)
	if err != nil {
		respondError(w, r, err)
		return
	}

	c := h.carts.Load(r.Context(), sessionID(w, r))
	if err := c.Add(r.Context(), *p, req.Quantity); err != nil {
		respondError(w, r, err)
		return
	}
	h.respondCart(w, c)
}

func (h *Handler) setCartItemQuantity(w http.ResponseWriter, r *http.Request) {
	body, err := readBody(w, r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	quantity, err := decodeQuantityRequest(body)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	c := h.carts.Load(r.Context(), sessionID(w, r))
	c.SetQuantity(r.Context(), r.PathValue("slug"), quantity)
	h.respondCart(w, c)
}

func (h *Handler) removeCartItem(w http.ResponseWriter, r *http.Request) {
	c := h.carts.Load(r.Context(), sessionID(w, r))
	c.Remove(r.Context(), r.PathValue("slug"))
	h.respondCart(w, c)
}

func (h *Handler) clearCart(w http.ResponseWriter, r *http.Request) {
	c := h.carts.Load(r.Context(), sessionID(w, r))
	c.Clear(r.Context())
	h.respondCart(w, c)
}

// checkout turns the session cart into an order and hands back the ticket
// plus a prefilled WhatsApp deep link. The cart is cleared once the order is
// persisted.
func (h *Handler) checkout(w http.ResponseWriter, r *http.Request) {
	body, err := readBody(w, r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	req, err := decodeCheckoutRequest(body)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	c := h.carts.Load(r.Context(), sessionID(w, r))
	entries := c.Entries()
	if len(entries) == 0 {
		writeError(w, http.StatusUnprocessableEntity, "cart is empty")
		return
	}

	items := make([]order.ItemRequest, len(entries))
	for i, entry := range entries {
		items[i] = order.ItemRequest{Slug: entry.Slug, Quantity: entry.Quantity}
	}

	o, err := h.orders.Create(r.Context(), order.CreateRequest{
		CustomerName:    req.CustomerName,
		CustomerPhone:   req.CustomerPhone,
		DeliveryAddress: req.DeliveryAddress,
		Items:           items,
	})
	if err != nil {
		respondError(w, r, err)
		return
	}

	c.Clear(r.Context())

	var e jx.Encoder
	e.ObjStart()
	e.FieldStart("ticketId")
	e.Str(o.TicketID)
	e.FieldStart("total")
	e.Str(o.Total.StringFixed(2))
	e.FieldStart("whatsappUrl")
	e.Str(h.whatsapp.OrderLink(o, localeFrom(r)))
	e.ObjEnd()
	writeJSON(w, http.StatusCreated, &e)
}

func (h *Handler) respondCart(w http.ResponseWriter, c *cart.Cart) {
	var e jx.Encoder
	e.ObjStart()
	e.FieldStart("items")
	e.ArrStart()
	for _, entry := range c.Entries() {
		e.ObjStart()
		e.FieldStart("slug")
		e.Str(entry.Slug)
		e.FieldStart("name")
		encodeText(&e, entry.Name)
		e.FieldStart("unitPrice")
		e.Str(entry.UnitPrice.StringFixed(2))
		e.FieldStart("quantity")
		e.Int(entry.Quantity)
		e.FieldStart("subtotal")
		e.Str(entry.Subtotal().StringFixed(2))
		e.ObjEnd()
	}
	e.ArrEnd()
	e.FieldStart("itemCount")
	e.Int(c.ItemCount())
	e.FieldStart("totalPrice")
	e.Str(c.TotalPrice().StringFixed(2))
	e.ObjEnd()
	writeJSON(w, http.StatusOK, &e)
}
