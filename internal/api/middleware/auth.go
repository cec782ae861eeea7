package middleware

import (
	"encoding/json"
	"net/http"
	"slices"
	"time"

	"github.com/Cheertaboi/bookverse-storefront/internal/models"
)

func deny(w http.ResponseWriter, status int, kind, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	body := map[string]string{"error": kind, "message": msg}
	if status == http.StatusUnauthorized {
		body["redirect"] = "/signin"
	}
	_ = json.NewEncoder(w).Encode(body)
}

// RequireSignIn rejects requests whose session holds no live token.
func RequireSignIn(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s := SessionFrom(r.Context())
		if s == nil || !s.SignedIn(time.Now()) {
			deny(w, http.StatusUnauthorized, "unauthorized", "please sign in")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireRole lets through signed-in sessions holding one of roles.
func RequireRole(roles ...models.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return RequireSignIn(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			s := SessionFrom(r.Context())
			if !slices.Contains(roles, s.Claims.Role) {
				deny(w, http.StatusForbidden, "forbidden", "you do not have access to this page")
				return
			}
			next.ServeHTTP(w, r)
		}))
	}
}
