package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/Cheertaboi/bookverse-storefront/internal/apiclient"
	"github.com/Cheertaboi/bookverse-storefront/internal/models"
	"github.com/Cheertaboi/bookverse-storefront/internal/service"
)

type PublisherHandler struct {
	api *apiclient.Client
	log *zap.Logger
}

func NewPublisherHandler(api *apiclient.Client, log *zap.Logger) *PublisherHandler {
	return &PublisherHandler{api: api, log: log}
}

// List handles GET /api/admin/publishers?status=active|inactive|all
func (h *PublisherHandler) List(w http.ResponseWriter, r *http.Request) {
	var (
		list []models.Publisher
		err  error
	)
	switch r.URL.Query().Get("status") {
	case "active":
		list, err = h.api.ListActivePublishers(r.Context())
	case "inactive":
		list, err = h.api.ListInactivePublishers(r.Context())
	case "", "all":
		list, err = h.api.ListPublishers(r.Context())
	default:
		err = badRequest("status must be active, inactive or all")
	}
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

// Get handles GET /api/admin/publishers/{id}
func (h *PublisherHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := int64Param(r, "id")
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	p, err := h.api.GetPublisher(r.Context(), id)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// Create handles POST /api/admin/publishers. New publishers start active.
func (h *PublisherHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.PublisherRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, h.log, err)
		return
	}
	req.Active = true
	if err := service.ValidatePublisher(&req); err != nil {
		writeError(w, r, h.log, err)
		return
	}
	p, err := h.api.CreatePublisher(r.Context(), req)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusCreated, p)
}

// Update handles PUT /api/admin/publishers/{id}. The active flag is kept as
// it is; it changes only through SetActive.
func (h *PublisherHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := int64Param(r, "id")
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	var req models.PublisherRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, h.log, err)
		return
	}
	if err := service.ValidatePublisher(&req); err != nil {
		writeError(w, r, h.log, err)
		return
	}
	current, err := h.api.GetPublisher(r.Context(), id)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	req.Active = current.Active
	p, err := h.api.UpdatePublisher(r.Context(), id, req)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// SetActive handles PUT /api/admin/publishers/{id}/active
func (h *PublisherHandler) SetActive(w http.ResponseWriter, r *http.Request) {
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
	if err := h.api.SetPublisherActive(r.Context(), id, body.Active); err != nil {
		writeError(w, r, h.log, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
