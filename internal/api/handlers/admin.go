package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/Cheertaboi/bookverse-storefront/internal/apiclient"
	"github.com/Cheertaboi/bookverse-storefront/internal/models"
	"github.com/Cheertaboi/bookverse-storefront/internal/service"
)

// AdminHandler serves the user management and statistics screens.
type AdminHandler struct {
	api *apiclient.Client
	log *zap.Logger
}

func NewAdminHandler(api *apiclient.Client, log *zap.Logger) *AdminHandler {
	return &AdminHandler{api: api, log: log}
}

// Users handles GET /api/admin/users; ?role=staff lists staff accounts only.
func (h *AdminHandler) Users(w http.ResponseWriter, r *http.Request) {
	var (
		users []models.User
		err   error
	)
	switch r.URL.Query().Get("role") {
	case "staff":
		users, err = h.api.ListStaff(r.Context())
	case "":
		users, err = h.api.ListUsers(r.Context())
	default:
		err = badRequest("role must be staff or empty")
	}
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, users)
}

// SetUserActive handles PUT /api/admin/users/{id}/active
func (h *AdminHandler) SetUserActive(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, r, h.log, badRequest("id is required"))
		return
	}
	var body activeBody
	if err := decodeJSON(r, &body); err != nil {
		writeError(w, r, h.log, err)
		return
	}
	if err := h.api.SetUserActive(r.Context(), id, body.Active); err != nil {
		writeError(w, r, h.log, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// CreateUser handles POST /api/admin/users
func (h *AdminHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	req := models.CreateUserRequest{Active: true}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, h.log, err)
		return
	}
	if err := service.ValidateNewUser(&req); err != nil {
		writeError(w, r, h.log, err)
		return
	}
	u, err := h.api.CreateUser(r.Context(), req)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusCreated, u)
}

// UpdateUser handles PUT /api/admin/users/{id}, a multipart form with an
// optional image file.
func (h *AdminHandler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeError(w, r, h.log, badRequest("expected a multipart form"))
		return
	}
	defer func() { _ = r.MultipartForm.RemoveAll() }()

	get := func(k string) string { return strings.TrimSpace(r.FormValue(k)) }
	form := models.UserForm{
		Name:     get("name"),
		Phone:    get("phone"),
		Address:  get("address"),
		ImageURL: get("imageUrl"),
	}
	if err := service.ValidateProfile(form.Phone); err != nil {
		writeError(w, r, h.log, err)
		return
	}
	file, hdr, err := r.FormFile("image")
	switch {
	case err == nil:
		defer file.Close()
		form.Image, form.ImageName = file, hdr.Filename
	case errors.Is(err, http.ErrMissingFile):
	default:
		writeError(w, r, h.log, badRequest("unreadable image"))
		return
	}

	u, err := h.api.UpdateUser(r.Context(), id, form)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, u)
}

// ChangeRole handles PUT /api/admin/users/{id}/role, switching the account
// between customer and staff.
func (h *AdminHandler) ChangeRole(w http.ResponseWriter, r *http.Request) {
	u, err := h.api.ChangeRole(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, u)
}

// Statistics handles GET /api/admin/statistics
func (h *AdminHandler) Statistics(w http.ResponseWriter, r *http.Request) {
	d, err := service.Dashboard(r.Context(), h.api)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, d)
}
