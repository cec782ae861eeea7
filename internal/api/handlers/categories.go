package handlers

import (
	"context"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/Cheertaboi/bookverse-storefront/internal/apiclient"
	"github.com/Cheertaboi/bookverse-storefront/internal/models"
)

type CategoryHandler struct {
	api *apiclient.Client
	log *zap.Logger
}

func NewCategoryHandler(api *apiclient.Client, log *zap.Logger) *CategoryHandler {
	return &CategoryHandler{api: api, log: log}
}

// ListSup handles GET /api/admin/sup-categories; ?status=active narrows it
// to the groups the storefront shows.
func (h *CategoryHandler) ListSup(w http.ResponseWriter, r *http.Request) {
	var (
		sups []models.SupCategory
		err  error
	)
	switch r.URL.Query().Get("status") {
	case "active":
		sups, err = h.api.ListActiveSupCategories(r.Context())
	case "", "all":
		sups, err = h.api.ListSupCategories(r.Context())
	default:
		err = badRequest("status must be active or all")
	}
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, sups)
}

func (h *CategoryHandler) supRequest(w http.ResponseWriter, r *http.Request) (models.SupCategoryRequest, bool) {
	var req models.SupCategoryRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, h.log, err)
		return req, false
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		writeError(w, r, h.log, models.ValidationErrors{{Field: "name", Message: "name is required"}})
		return req, false
	}
	return req, true
}

// CreateSup handles POST /api/admin/sup-categories
func (h *CategoryHandler) CreateSup(w http.ResponseWriter, r *http.Request) {
	req, ok := h.supRequest(w, r)
	if !ok {
		return
	}
	sup, err := h.api.CreateSupCategory(r.Context(), req)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusCreated, sup)
}

// UpdateSup handles PUT /api/admin/sup-categories/{id}
func (h *CategoryHandler) UpdateSup(w http.ResponseWriter, r *http.Request) {
	id, err := int64Param(r, "id")
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	req, ok := h.supRequest(w, r)
	if !ok {
		return
	}
	sup, err := h.api.UpdateSupCategory(r.Context(), id, req)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, sup)
}

// SetSupActive handles PUT /api/admin/sup-categories/{id}/active
func (h *CategoryHandler) SetSupActive(w http.ResponseWriter, r *http.Request) {
	h.toggle(w, r, h.api.SetSupCategoryActive)
}

// ListSub handles GET /api/admin/sub-categories
func (h *CategoryHandler) ListSub(w http.ResponseWriter, r *http.Request) {
	subs, err := h.api.ListSubCategories(r.Context())
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, subs)
}

// GetSub handles GET /api/admin/sub-categories/{id}
func (h *CategoryHandler) GetSub(w http.ResponseWriter, r *http.Request) {
	id, err := int64Param(r, "id")
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	sub, err := h.api.GetSubCategory(r.Context(), id)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, sub)
}

func (h *CategoryHandler) subRequest(w http.ResponseWriter, r *http.Request) (models.SubCategoryRequest, bool) {
	var req models.SubCategoryRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, h.log, err)
		return req, false
	}
	req.Name = strings.TrimSpace(req.Name)
	var v models.ValidationErrors
	if req.Name == "" {
		v.Add("name", "name is required")
	}
	if req.SupCategoryID <= 0 {
		v.Add("supCategoryId", "choose a parent category")
	}
	if err := v.Err(); err != nil {
		writeError(w, r, h.log, err)
		return req, false
	}
	return req, true
}

// CreateSub handles POST /api/admin/sub-categories
func (h *CategoryHandler) CreateSub(w http.ResponseWriter, r *http.Request) {
	req, ok := h.subRequest(w, r)
	if !ok {
		return
	}
	sub, err := h.api.CreateSubCategory(r.Context(), req)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusCreated, sub)
}

// UpdateSub handles PUT /api/admin/sub-categories/{id}
func (h *CategoryHandler) UpdateSub(w http.ResponseWriter, r *http.Request) {
	id, err := int64Param(r, "id")
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	req, ok := h.subRequest(w, r)
	if !ok {
		return
	}
	sub, err := h.api.UpdateSubCategory(r.Context(), id, req)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, sub)
}

// SetSubActive handles PUT /api/admin/sub-categories/{id}/active
func (h *CategoryHandler) SetSubActive(w http.ResponseWriter, r *http.Request) {
	h.toggle(w, r, h.api.SetSubCategoryActive)
}

func (h *CategoryHandler) toggle(w http.ResponseWriter, r *http.Request, set func(ctx context.Context, id int64, active bool) error) {
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
	if err := set(r.Context(), id, body.Active); err != nil {
		writeError(w, r, h.log, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
