package httpapi

import (
	"net/http"

	"github.com/go-faster/errors"
	"github.com/go-faster/jx"

	"github.com/blissbakes/bakehouse/internal/catalog"
)

func (h *Handler) listProducts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	sortOpt, err := catalog.ParseSortOption(q.Get("sort"))
	if err != nil {
		respondError(w, r, err)
		return
	}

	products, err := h.products.List(r.Context())
	if err != nil {
		respondError(w, r, errors.Wrap(err, "list products"))
		return
	}

	visible := catalog.VisibleList(products, catalog.Filter{
		Query: q.Get("q"),
		Tags:  q["tag"],
		Sort:  sortOpt,
	})

	var e jx.Encoder
	e.ArrStart()
	for _, p := range visible {
		h.encodeProduct(&e, p)
	}
	e.ArrEnd()
	writeJSON(w, http.StatusOK, &e)
}

func (h *Handler) getProduct(w http.ResponseWriter, r *http.Request) {
	p, err := h.products.GetBySlug(r.Context(), r.PathValue("slug"))
	if err != nil {
		respondError(w, r, err)
		return
	}

	var e jx.Encoder
	h.encodeProduct(&e, *p)
	writeJSON(w, http.StatusOK, &e)
}

func (h *Handler) listTags(w http.ResponseWriter, r *http.Request) {
	products, err := h.products.List(r.Context())
	if err != nil {
		respondError(w, r, errors.Wrap(err, "list products"))
		return
	}

	var e jx.Encoder
	e.ArrStart()
	for _, tag := range catalog.TagsByFrequency(products) {
		e.Str(tag)
	}
	e.ArrEnd()
	writeJSON(w, http.StatusOK, &e)
}

func (h *Handler) trackView(w http.ResponseWriter, r *http.Request) {
	slug := r.PathValue("slug")
	if _, err := h.products.GetBySlug(r.Context(), slug); err != nil {
		respondError(w, r, err)
		return
	}

	session := sessionID(w, r)
	count, err := h.tracker.Track(r.Context(), session, slug)
	if err != nil {
		respondError(w, r, err)
		return
	}

	var e jx.Encoder
	e.ObjStart()
	e.FieldStart("success")
	e.Bool(true)
	e.FieldStart("count")
	e.Int64(count)
	e.ObjEnd()
	writeJSON(w, http.StatusOK, &e)
}

func encodeText(e *jx.Encoder, t catalog.Text) {
	e.ObjStart()
	e.FieldStart("en")
	e.Str(t.EN)
	e.FieldStart("bn")
	e.Str(t.BN)
	e.ObjEnd()
}

func (h *Handler) encodeProduct(e *jx.Encoder, p catalog.Product) {
	e.ObjStart()
	e.FieldStart("id")
	e.Int64(p.ID)
	e.FieldStart("slug")
	e.Str(p.Slug)
	e.FieldStart("name")
	encodeText(e, p.Name)
	e.FieldStart("description")
	encodeText(e, p.Description)
	e.FieldStart("price")
	e.Str(p.Price.StringFixed(2))
	e.FieldStart("calories")
	e.Int(p.Calories)
	e.FieldStart("image")
	e.Str(h.imageBaseURL + p.Image)
	e.FieldStart("ingredients")
	e.ArrStart()
	for _, ing := range p.Ingredients {
		e.Str(ing)
	}
	e.ArrEnd()
	e.FieldStart("tags")
	e.ArrStart()
	for _, tag := range p.Tags {
		e.Str(tag)
	}
	e.ArrEnd()
	e.ObjEnd()
}
