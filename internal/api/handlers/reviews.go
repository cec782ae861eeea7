package handlers

import (
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/Cheertaboi/bookverse-storefront/internal/apiclient"
	"github.com/Cheertaboi/bookverse-storefront/internal/models"
)

type ReviewHandler struct {
	api *apiclient.Client
	log *zap.Logger
}

func NewReviewHandler(api *apiclient.Client, log *zap.Logger) *ReviewHandler {
	return &ReviewHandler{api: api, log: log}
}

// List handles GET /api/books/{id}/reviews. A book without reviews, or whose
// reviews cannot be read, shows none.
func (h *ReviewHandler) List(w http.ResponseWriter, r *http.Request) {
	id, err := int64Param(r, "id")
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	reviews, err := h.api.BookReviews(r.Context(), id)
	if err != nil {
		h.log.Warn("book reviews unavailable", zap.Int64("book_id", id), zap.Error(err))
		reviews = []models.Review{}
	}
	writeJSON(w, http.StatusOK, reviews)
}

func (h *ReviewHandler) reviewRequest(w http.ResponseWriter, r *http.Request) (models.ReviewRequest, bool) {
	id, err := int64Param(r, "id")
	if err != nil {
		writeError(w, r, h.log, err)
		return models.ReviewRequest{}, false
	}
	var req models.ReviewRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, h.log, err)
		return models.ReviewRequest{}, false
	}
	req.BookID = id
	req.Comment = strings.TrimSpace(req.Comment)
	if req.Comment == "" {
		writeError(w, r, h.log, models.ValidationErrors{{Field: "comment", Message: "comment is required"}})
		return models.ReviewRequest{}, false
	}
	return req, true
}

// Create handles POST /api/books/{id}/reviews
func (h *ReviewHandler) Create(w http.ResponseWriter, r *http.Request) {
	req, ok := h.reviewRequest(w, r)
	if !ok {
		return
	}
	rv, err := h.api.CreateReview(r.Context(), req)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusCreated, rv)
}

// Update handles PUT /api/books/{id}/reviews
func (h *ReviewHandler) Update(w http.ResponseWriter, r *http.Request) {
	req, ok := h.reviewRequest(w, r)
	if !ok {
		return
	}
	rv, err := h.api.UpdateReview(r.Context(), req)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, rv)
}

// Delete handles DELETE /api/books/{id}/reviews
func (h *ReviewHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := int64Param(r, "id")
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	if err := h.api.DeleteMyReview(r.Context(), id); err != nil {
		writeError(w, r, h.log, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Reviewed handles GET /api/books/{id}/reviewed
func (h *ReviewHandler) Reviewed(w http.ResponseWriter, r *http.Request) {
	id, err := int64Param(r, "id")
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	ok, err := h.api.IsReviewed(r.Context(), id)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"reviewed": ok})
}

// All handles GET /api/admin/reviews
func (h *ReviewHandler) All(w http.ResponseWriter, r *http.Request) {
	all, err := h.api.ListAllReviews(r.Context())
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, all)
}

// Remove handles DELETE /api/admin/books/{id}/reviews; the author is told
// why through the message.
func (h *ReviewHandler) Remove(w http.ResponseWriter, r *http.Request) {
	id, err := int64Param(r, "id")
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	var req models.AdminDeleteReviewRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, h.log, err)
		return
	}
	var v models.ValidationErrors
	if req.UserID == "" {
		v.Add("userId", "userId is required")
	}
	if strings.TrimSpace(req.Message) == "" {
		v.Add("message", "a reason is required")
	}
	if err := v.Err(); err != nil {
		writeError(w, r, h.log, err)
		return
	}
	if err := h.api.DeleteReviewAsStaff(r.Context(), id, req); err != nil {
		writeError(w, r, h.log, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
