package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/Cheertaboi/bookverse-storefront/internal/apiclient"
	"github.com/Cheertaboi/bookverse-storefront/internal/models"
	"github.com/Cheertaboi/bookverse-storefront/internal/service"
)

const maxUploadBytes = 10 << 20

type BookHandler struct {
	api *apiclient.Client
	log *zap.Logger
}

func NewBookHandler(api *apiclient.Client, log *zap.Logger) *BookHandler {
	return &BookHandler{api: api, log: log}
}

// List handles GET /api/admin/books?status=active|inactive
func (h *BookHandler) List(w http.ResponseWriter, r *http.Request) {
	var (
		books []models.Book
		err   error
	)
	switch r.URL.Query().Get("status") {
	case "active":
		books, err = h.api.ListActiveBooks(r.Context())
	case "inactive":
		books, err = h.api.ListInactiveBooks(r.Context())
	case "", "all":
		books, err = h.api.ListBooks(r.Context())
	default:
		err = badRequest("status must be active, inactive or all")
	}
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, books)
}

// Get handles GET /api/admin/books/{id}
func (h *BookHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := int64Param(r, "id")
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	b, err := h.api.GetBook(r.Context(), id)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, b)
}

// parseBookForm reads the multipart form. The optional "image" file part is
// passed through to the API as is.
func parseBookForm(r *http.Request) (models.BookForm, func(), error) {
	noop := func() {}
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		return models.BookForm{}, noop, badRequest("expected a multipart form")
	}
	cleanup := func() { _ = r.MultipartForm.RemoveAll() }

	get := func(k string) string { return strings.TrimSpace(r.FormValue(k)) }
	var v models.ValidationErrors
	id := func(k string) int64 {
		s := get(k)
		if s == "" {
			return 0
		}
		n, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			v.Add(k, k+" must be a number")
		}
		return n
	}

	f := models.BookForm{
		Title:         get("title"),
		Description:   get("description"),
		AuthorID:      id("authorId"),
		PublisherID:   id("publisherId"),
		CategoryID:    id("categoryId"),
		PublishedDate: get("publishedDate"),
		ImageURL:      get("imageUrl"),
	}
	if s := get("price"); s != "" {
		p, err := decimal.NewFromString(s)
		if err != nil {
			v.Add("price", "price must be a number")
		} else {
			f.Price = &p
		}
	}
	if s := get("stockQuantity"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil {
			v.Add("stockQuantity", "stock quantity must be a whole number")
		} else {
			f.StockQuantity = &n
		}
	}
	if s := get("active"); s != "" {
		b, err := strconv.ParseBool(s)
		if err != nil {
			v.Add("active", "active must be true or false")
		} else {
			f.Active = &b
		}
	}
	if err := v.Err(); err != nil {
		return models.BookForm{}, cleanup, err
	}

	file, hdr, err := r.FormFile("image")
	switch {
	case err == nil:
		f.Image = file
		f.ImageName = hdr.Filename
		prev := cleanup
		cleanup = func() { file.Close(); prev() }
	case errors.Is(err, http.ErrMissingFile):
	default:
		return models.BookForm{}, cleanup, badRequest("unreadable image")
	}
	return f, cleanup, nil
}

func (h *BookHandler) save(w http.ResponseWriter, r *http.Request, id int64) {
	form, cleanup, err := parseBookForm(r)
	defer cleanup()
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	if err := service.ValidateBookForm(form, id == 0); err != nil {
		writeError(w, r, h.log, err)
		return
	}

	var b models.Book
	status := http.StatusOK
	if id == 0 {
		b, err = h.api.CreateBook(r.Context(), form)
		status = http.StatusCreated
	} else {
		b, err = h.api.UpdateBook(r.Context(), id, form)
	}
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeJSON(w, status, b)
}

// Create handles POST /api/admin/books
func (h *BookHandler) Create(w http.ResponseWriter, r *http.Request) {
	h.save(w, r, 0)
}

// Update handles PUT /api/admin/books/{id}
func (h *BookHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := int64Param(r, "id")
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	h.save(w, r, id)
}

type activeBody struct {
	Active bool `json:"active"`
}

// SetActive handles PUT /api/admin/books/{id}/active
func (h *BookHandler) SetActive(w http.ResponseWriter, r *http.Request) {
	id, err := int64Param(r, "id")
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	var body activeBody
	if err := decodeJSON(r, &body); err != nil {
		writeError(w, r, h.log, err)
		return
	}
	if body.Active {
		err = h.api.ActivateBook(r.Context(), id)
	} else {
		err = h.api.DeactivateBook(r.Context(), id)
	}
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Upload handles POST /api/admin/uploads with a "file" part and a "folder"
// field.
func (h *BookHandler) Upload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeError(w, r, h.log, badRequest("expected a multipart form"))
		return
	}
	defer r.MultipartForm.RemoveAll()

	file, hdr, err := r.FormFile("file")
	if err != nil {
		writeError(w, r, h.log, badRequest("file is required"))
		return
	}
	defer file.Close()

	folder := strings.TrimSpace(r.FormValue("folder"))
	if folder == "" {
		folder = "book"
	}
	path, err := h.api.UploadImage(r.Context(), folder, hdr.Filename, file)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"url": path})
}
