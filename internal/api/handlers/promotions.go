package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/Cheertaboi/bookverse-storefront/internal/models"
	"github.com/Cheertaboi/bookverse-storefront/internal/service"
)

type PromotionHandler struct {
	promotions *service.PromotionService
	log        *zap.Logger
}

func NewPromotionHandler(promotions *service.PromotionService, log *zap.Logger) *PromotionHandler {
	return &PromotionHandler{promotions: promotions, log: log}
}

// List handles GET /api/admin/promotions
func (h *PromotionHandler) List(w http.ResponseWriter, r *http.Request) {
	list, err := h.promotions.List(r.Context(), r.URL.Query().Get("status"))
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

// Overview handles GET /api/admin/promotions/overview
func (h *PromotionHandler) Overview(w http.ResponseWriter, r *http.Request) {
	rows, err := h.promotions.Overview(r.Context())
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, rows)
}

// Get handles GET /api/admin/promotions/{id}
func (h *PromotionHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := int64Param(r, "id")
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	p, err := h.promotions.Get(r.Context(), id)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// Create handles POST /api/admin/promotions
func (h *PromotionHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreatePromotionRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, h.log, err)
		return
	}
	p, err := h.promotions.Create(r.Context(), req)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusCreated, p)
}

// Update handles PUT /api/admin/promotions/{id}
func (h *PromotionHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := int64Param(r, "id")
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	var req models.UpdatePromotionRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, h.log, err)
		return
	}
	p, err := h.promotions.Update(r.Context(), id, req)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// SetActive handles PUT /api/admin/promotions/{id}/active
func (h *PromotionHandler) SetActive(w http.ResponseWriter, r *http.Request) {
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
	if err := h.promotions.SetActive(r.Context(), id, body.Active); err != nil {
		writeError(w, r, h.log, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
