package handlers

import (
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/Cheertaboi/bookverse-storefront/internal/api/middleware"
	"github.com/Cheertaboi/bookverse-storefront/internal/apiclient"
	"github.com/Cheertaboi/bookverse-storefront/internal/models"
	"github.com/Cheertaboi/bookverse-storefront/internal/service"
	"github.com/Cheertaboi/bookverse-storefront/internal/session"
)

type AuthHandler struct {
	api      *apiclient.Client
	sessions *session.Manager
	log      *zap.Logger
}

func NewAuthHandler(api *apiclient.Client, sessions *session.Manager, log *zap.Logger) *AuthHandler {
	return &AuthHandler{api: api, sessions: sessions, log: log}
}

type authResponse struct {
	Authenticated bool        `json:"authenticated"`
	Username      string      `json:"username,omitempty"`
	Role          models.Role `json:"role,omitempty"`
}

// storeToken signs the session in with token. A fresh sign-in moves the
// session to a new id; a refresh keeps the id and the cart.
func (h *AuthHandler) storeToken(w http.ResponseWriter, r *http.Request, token string, fresh bool) (authResponse, error) {
	claims, err := session.ParseClaims(token)
	if err != nil {
		return authResponse{}, err
	}
	ctx := r.Context()
	id := middleware.SessionID(ctx)
	if fresh {
		s, err := h.sessions.Rotate(ctx, id, func(s *session.Session) error {
			s.SignIn(token, claims)
			return nil
		})
		if err != nil {
			return authResponse{}, err
		}
		middleware.RenewSessionCookie(w, r, s.ID)
	} else {
		_, err = h.sessions.Update(ctx, id, func(s *session.Session) error {
			s.Token, s.Claims = token, claims
			return nil
		})
		if err != nil {
			return authResponse{}, err
		}
	}
	return authResponse{Authenticated: true, Username: claims.Username, Role: claims.Role}, nil
}

// SignIn handles POST /api/auth/signin
func (h *AuthHandler) SignIn(w http.ResponseWriter, r *http.Request) {
	var req models.SignInRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, h.log, err)
		return
	}
	req.Username = strings.TrimSpace(req.Username)
	if req.Username == "" || req.Password == "" {
		writeError(w, r, h.log, badRequest("username and password are required"))
		return
	}

	tok, err := h.api.SignIn(r.Context(), req)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	if !tok.Authenticated || tok.Token == "" {
		writeJSON(w, http.StatusUnauthorized, errorBody{Error: "unauthorized", Message: "invalid username or password"})
		return
	}
	resp, err := h.storeToken(w, r, tok.Token, true)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// Refresh handles POST /api/auth/refresh
func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	s := middleware.SessionFrom(r.Context())
	if s == nil || s.Token == "" {
		writeJSON(w, http.StatusUnauthorized, errorBody{Error: "unauthorized", Message: "please sign in", Redirect: "/signin"})
		return
	}
	tok, err := h.api.Refresh(r.Context(), s.Token)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	resp, err := h.storeToken(w, r, tok.Token, false)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// SignOut handles POST /api/auth/signout. The backend logout is best effort;
// the session is signed out either way.
func (h *AuthHandler) SignOut(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if s := middleware.SessionFrom(ctx); s != nil && s.Token != "" {
		if err := h.api.SignOut(ctx, s.Token); err != nil {
			h.log.Warn("backend logout failed", zap.Error(err))
		}
	}
	_, err := h.sessions.Update(ctx, middleware.SessionID(ctx), func(s *session.Session) error {
		s.SignOut()
		return nil
	})
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, authResponse{})
}

// Me handles GET /api/auth/me
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	s := middleware.SessionFrom(r.Context())
	info, err := h.api.MyInfo(r.Context())
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"user": info,
		"role": s.Claims.Role,
	})
}

// UpdateMe handles PUT /api/auth/me
func (h *AuthHandler) UpdateMe(w http.ResponseWriter, r *http.Request) {
	var req models.UpdateMyInfoRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, h.log, err)
		return
	}
	req.Phone = strings.TrimSpace(req.Phone)
	if err := service.ValidateProfile(req.Phone); err != nil {
		writeError(w, r, h.log, err)
		return
	}
	u, err := h.api.UpdateMyInfo(r.Context(), req)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, u)
}

// ChangePassword handles PUT /api/auth/password
func (h *AuthHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	var req models.ChangePasswordRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, h.log, err)
		return
	}
	if err := service.ValidatePasswordChange(req); err != nil {
		writeError(w, r, h.log, err)
		return
	}
	if err := h.api.ChangeMyPassword(r.Context(), req); err != nil {
		writeError(w, r, h.log, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// SignUp handles POST /api/auth/signup
func (h *AuthHandler) SignUp(w http.ResponseWriter, r *http.Request) {
	var req models.SignUpRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, h.log, err)
		return
	}
	var v models.ValidationErrors
	if strings.TrimSpace(req.Username) == "" {
		v.Add("username", "username is required")
	}
	if len(req.Password) < 8 {
		v.Add("password", "password must be at least 8 characters")
	}
	if !strings.Contains(req.Email, "@") {
		v.Add("email", "a valid email is required")
	}
	if err := v.Err(); err != nil {
		writeError(w, r, h.log, err)
		return
	}

	u, err := h.api.SignUp(r.Context(), req)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusCreated, u)
}

// SendOTP handles POST /api/auth/otp/send; with ?purpose=reset it sends the
// password reset code instead.
func (h *AuthHandler) SendOTP(w http.ResponseWriter, r *http.Request) {
	var req models.OTPRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, h.log, err)
		return
	}
	if req.Email == "" {
		writeError(w, r, h.log, badRequest("email is required"))
		return
	}
	var err error
	if r.URL.Query().Get("purpose") == "reset" {
		err = h.sendResetOTP(r, req.Email)
	} else {
		err = h.api.SendOTP(r.Context(), req.Email)
	}
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"sent": true})
}

// sendResetOTP looks the account up first; an unknown email is a 404 from
// the lookup, not a silent no-op.
func (h *AuthHandler) sendResetOTP(r *http.Request, email string) error {
	userID, err := h.api.UserIDByEmail(r.Context(), email)
	if err != nil {
		return err
	}
	return h.api.SendResetOTP(r.Context(), email, userID)
}

// VerifyOTP handles POST /api/auth/otp/verify
func (h *AuthHandler) VerifyOTP(w http.ResponseWriter, r *http.Request) {
	var req models.OTPRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, h.log, err)
		return
	}
	ok, err := h.api.VerifyOTP(r.Context(), req)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"valid": ok})
}

// ResetPassword handles POST /api/auth/reset-password
func (h *AuthHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var req models.ResetPasswordRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, h.log, err)
		return
	}
	if len(req.NewPassword) < 8 {
		writeError(w, r, h.log, models.ValidationErrors{{Field: "newPassword", Message: "password must be at least 8 characters"}})
		return
	}
	if err := h.api.ResetPassword(r.Context(), req); err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"reset": true})
}
