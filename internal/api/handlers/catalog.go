package handlers

import (
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"github.com/Cheertaboi/bookverse-storefront/internal/apiclient"
	"github.com/Cheertaboi/bookverse-storefront/internal/catalog"
)

const featuredBooks = 8

type CatalogHandler struct {
	catalog *catalog.Service
	api     *apiclient.Client
	log     *zap.Logger
}

func NewCatalogHandler(c *catalog.Service, api *apiclient.Client, log *zap.Logger) *CatalogHandler {
	return &CatalogHandler{catalog: c, api: api, log: log}
}

// Home handles GET /api/home
func (h *CatalogHandler) Home(w http.ResponseWriter, r *http.Request) {
	n := featuredBooks
	if s := r.URL.Query().Get("featured"); s != "" {
		if v, err := strconv.Atoi(s); err == nil && v > 0 && v <= 50 {
			n = v
		}
	}
	home, err := h.catalog.Home(r.Context(), n)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, home)
}

// Books handles GET /api/books
func (h *CatalogHandler) Books(w http.ResponseWriter, r *http.Request) {
	q, err := catalog.ParseQuery(r.URL.Query())
	if err != nil {
		writeError(w, r, h.log, badRequest(err.Error()))
		return
	}
	listing, err := h.catalog.Browse(r.Context(), q)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, listing)
}

// Book handles GET /api/books/{id}
func (h *CatalogHandler) Book(w http.ResponseWriter, r *http.Request) {
	id, err := int64Param(r, "id")
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	d, err := h.catalog.Detail(r.Context(), id)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, d)
}

// Categories handles GET /api/categories
func (h *CatalogHandler) Categories(w http.ResponseWriter, r *http.Request) {
	tree, err := h.catalog.CategoryTree(r.Context())
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, tree)
}

// Authors handles GET /api/authors
func (h *CatalogHandler) Authors(w http.ResponseWriter, r *http.Request) {
	authors, err := h.api.ListAuthors(r.Context())
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, authors)
}

// Author handles GET /api/authors/{id}
func (h *CatalogHandler) Author(w http.ResponseWriter, r *http.Request) {
	id, err := int64Param(r, "id")
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	a, err := h.api.GetAuthor(r.Context(), id)
	if err == nil && !a.Active {
		err = catalog.ErrNotFound
	}
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, a)
}

// Publishers handles GET /api/publishers; only active publishers are listed.
func (h *CatalogHandler) Publishers(w http.ResponseWriter, r *http.Request) {
	publishers, err := h.api.ListActivePublishers(r.Context())
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, publishers)
}

// Publisher handles GET /api/publishers/{id}
func (h *CatalogHandler) Publisher(w http.ResponseWriter, r *http.Request) {
	id, err := int64Param(r, "id")
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	p, err := h.api.GetPublisher(r.Context(), id)
	if err == nil && !p.Active {
		err = catalog.ErrNotFound
	}
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}
