package httpapi

import (
	"bytes"
	"net/http"
	"time"

	"github.com/go-faster/errors"
	"github.com/go-faster/jx"
	"github.com/go-faster/sdk/zctx"
	"go.uber.org/zap"

	"github.com/blissbakes/bakehouse/internal/order"
)

// apiKeyHeader carries the admin API key.
const apiKeyHeader = "api_key"

// requireAPIKey guards admin endpoints. Any verification failure is a uniform
// 401.
func (h *Handler) requireAPIKey(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		key := r.Header.Get(apiKeyHeader)
		if key == "" {
			writeError(w, http.StatusUnauthorized, "unauthorized")
			return
		}
		info, err := h.verifier.Verify(r.Context(), key)
		if err != nil {
			respondError(w, r, err)
			return
		}
		zctx.From(r.Context()).Debug("API key verified", zap.String("key_name", info.Name))
		next(w, r)
	}
}

func (h *Handler) createOrder(w http.ResponseWriter, r *http.Request) {
	body, err := readBody(w, r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	req, err := decodeCreateOrderRequest(body)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	items := make([]order.ItemRequest, len(req.Items))
	for i, item := range req.Items {
		items[i] = order.ItemRequest{Slug: item.Slug, Quantity: item.Quantity}
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

	var e jx.Encoder
	encodeOrder(&e, o)
	writeJSON(w, http.StatusCreated, &e)
}

func (h *Handler) getOrder(w http.ResponseWriter, r *http.Request) {
	o, err := h.orderStore.GetByTicketID(r.Context(), r.PathValue("ticketID"))
	if err != nil {
		respondError(w, r, err)
		return
	}

	var e jx.Encoder
	encodeOrder(&e, o)
	writeJSON(w, http.StatusOK, &e)
}

// downloadInvoice streams the order's PDF invoice as an attachment.
func (h *Handler) downloadInvoice(w http.ResponseWriter, r *http.Request) {
	ticketID := r.PathValue("ticketID")
	o, err := h.orderStore.GetByTicketID(r.Context(), ticketID)
	if err != nil {
		respondError(w, r, err)
		return
	}

	var buf bytes.Buffer
	if err := h.invoices.Render(&buf, o); err != nil {
		respondError(w, r, errors.Wrap(err, "render invoice"))
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="invoice-`+ticketID+`.pdf"`)
	_, _ = w.Write(buf.Bytes())
}

func encodeOrder(e *jx.Encoder, o *order.Order) {
	e.ObjStart()
	e.FieldStart("id")
	e.Str(o.ID)
	e.FieldStart("ticketId")
	e.Str(o.TicketID)
	e.FieldStart("customerName")
	e.Str(o.CustomerName)
	e.FieldStart("customerPhone")
	e.Str(o.CustomerPhone)
	e.FieldStart("deliveryAddress")
	e.Str(o.DeliveryAddress)
	e.FieldStart("items")
	e.ArrStart()
	for _, item := range o.Items {
		e.ObjStart()
		e.FieldStart("slug")
		e.Str(item.Slug)
		e.FieldStart("name")
		encodeText(e, item.Name)
		e.FieldStart("unitPrice")
		e.Str(item.UnitPrice.StringFixed(2))
		e.FieldStart("quantity")
		e.Int(item.Quantity)
		e.FieldStart("subtotal")
		e.Str(item.Subtotal().StringFixed(2))
		e.ObjEnd()
	}
	e.ArrEnd()
	e.FieldStart("total")
	e.Str(o.Total.StringFixed(2))
	e.FieldStart("status")
	e.Str(string(o.Status))
	e.FieldStart("createdAt")
	e.Str(o.CreatedAt.Format(time.RFC3339))
	e.ObjEnd()
}
