package httpapi

import (
	"net/http"

	"github.com/go-faster/errors"
	"github.com/go-faster/jx"
	"github.com/go-faster/sdk/zctx"
	"go.uber.org/zap"

	"github.com/blissbakes/bakehouse/internal/auth"
	"github.com/blissbakes/bakehouse/internal/cart"
	"github.com/blissbakes/bakehouse/internal/catalog"
	"github.com/blissbakes/bakehouse/internal/order"
)

// writeJSON sends the encoder's buffer with the given status.
func writeJSON(w http.ResponseWriter, status int, e *jx.Encoder) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(e.Bytes())
}

// writeError sends the API's standard error body.
func writeError(w http.ResponseWriter, code int, message string) {
	var e jx.Encoder
	e.ObjStart()
	e.FieldStart("code")
	e.Int(code)
	e.FieldStart("message")
	e.Str(message)
	e.ObjEnd()
	writeJSON(w, code, &e)
}

// respondError maps a domain error to an HTTP error response. Unrecognized
// errors become an opaque 500 and are logged with the request context.
func respondError(w http.ResponseWriter, r *http.Request, err error) {
	var (
		notFound   *order.ProductNotFoundError
		invalidQty *order.InvalidQuantityError
	)

	switch {
	case errors.Is(err, catalog.ErrNotFound):
		writeError(w, http.StatusNotFound, "product not found")
	case errors.Is(err, order.ErrNotFound):
		writeError(w, http.StatusNotFound, "order not found")
	case errors.Is(err, catalog.ErrUnknownSort):
		writeError(w, http.StatusBadRequest, "unknown sort option")
	case errors.Is(err, cart.ErrInvalidQuantity):
		writeError(w, http.StatusBadRequest, "quantity must be at least 1")
	case errors.Is(err, order.ErrEmptyItems):
		writeError(w, http.StatusBadRequest, "order items required")
	case errors.Is(err, order.ErrMissingCustomer):
		writeError(w, http.StatusBadRequest, "customer name and phone required")
	case errors.As(err, &notFound):
		writeError(w, http.StatusUnprocessableEntity, notFound.Error())
	case errors.As(err, &invalidQty):
		writeError(w, http.StatusUnprocessableEntity, invalidQty.Error())
	case errors.Is(err, auth.ErrUnauthorized):
		writeError(w, http.StatusUnauthorized, "unauthorized")
	default:
		zctx.From(r.Context()).Error("Request failed",
			zap.String("path", r.URL.Path), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}
