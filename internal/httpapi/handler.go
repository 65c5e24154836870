// Package httpapi exposes the storefront and admin endpoints over HTTP.
//
// Request and response bodies are encoded with jx; every error response uses
// the {"code","message"} body shape.
package httpapi

import (
	"net/http"

	"github.com/blissbakes/bakehouse/internal/auth"
	"github.com/blissbakes/bakehouse/internal/cart"
	"github.com/blissbakes/bakehouse/internal/catalog"
	"github.com/blissbakes/bakehouse/internal/invoice"
	"github.com/blissbakes/bakehouse/internal/order"
	"github.com/blissbakes/bakehouse/internal/views"
	"github.com/blissbakes/bakehouse/internal/whatsapp"
)

// Config holds non-dependency configuration for the Handler.
type Config struct {
	// ImageBaseURL is prepended to relative image paths in product responses.
	// When empty, image paths are returned as stored.
	ImageBaseURL string
}

// Handler serves the storefront API, delegating business logic to the
// injected domain services and repositories.
type Handler struct {
	products     catalog.Repository
	carts        *cart.Manager
	orders       *order.Service
	orderStore   order.Repository
	invoices     *invoice.Renderer
	whatsapp     *whatsapp.Composer
	tracker      *views.Tracker
	verifier     *auth.Verifier
	imageBaseURL string
}

// NewHandler constructs a Handler with the required dependencies.
func NewHandler(
	cfg Config,
	products catalog.Repository,
	carts *cart.Manager,
	orders *order.Service,
	orderStore order.Repository,
	invoices *invoice.Renderer,
	wa *whatsapp.Composer,
	tracker *views.Tracker,
	verifier *auth.Verifier,
) *Handler {
	return &Handler{
		products:     products,
		carts:        carts,
		orders:       orders,
		orderStore:   orderStore,
		invoices:     invoices,
		whatsapp:     wa,
		tracker:      tracker,
		verifier:     verifier,
		imageBaseURL: cfg.ImageBaseURL,
	}
}

// Routes registers every API endpoint on mux.
func (h *Handler) Routes(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/products", h.listProducts)
	mux.HandleFunc("GET /api/products/{slug}", h.getProduct)
	mux.HandleFunc("POST /api/products/{slug}/view", h.trackView)
	mux.HandleFunc("GET /api/tags", h.listTags)

	mux.HandleFunc("GET /api/cart", h.getCart)
	mux.HandleFunc("POST /api/cart/items", h.addCartItem)
	mux.HandleFunc("PATCH /api/cart/items/{slug}", h.setCartItemQuantity)
	mux.HandleFunc("DELETE /api/cart/items/{slug}", h.removeCartItem)
	mux.HandleFunc("DELETE /api/cart", h.clearCart)
	mux.HandleFunc("POST /api/cart/checkout", h.checkout)

	mux.HandleFunc("GET /api/orders/{ticketID}/invoice", h.downloadInvoice)
	mux.HandleFunc("POST /api/admin/orders", h.requireAPIKey(h.createOrder))
	mux.HandleFunc("GET /api/admin/orders/{ticketID}", h.requireAPIKey(h.getOrder))
}

// localeFrom resolves the response locale from the locale query parameter,
// defaulting to English.
func localeFrom(r *http.Request) catalog.Locale {
	if r.URL.Query().Get("locale") == string(catalog.LocaleBN) {
		return catalog.LocaleBN
	}
	return catalog.LocaleEN
}
