// Package session keeps per-browser state: the bearer token, the claims read
// from it, and the cart with its local selection flags.
package session

import (
	"time"

	"github.com/google/uuid"

	"github.com/Cheertaboi/bookverse-storefront/internal/cart"
)

const CookieName = "bv_session"

type Session struct {
	ID        string     `json:"id"`
	Token     string     `json:"token,omitempty"`
	Claims    Claims     `json:"claims"`
	Cart      cart.State `json:"cart"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`

	// PendingPaymentID is the VNPay payment awaiting the gateway's return.
	PendingPaymentID int64 `json:"pendingPaymentId,omitempty"`
}

func New(now time.Time) *Session {
	return &Session{ID: uuid.NewString(), CreatedAt: now, UpdatedAt: now}
}

// SignedIn reports whether the session holds a token that has not expired.
func (s *Session) SignedIn(now time.Time) bool {
	return s.Token != "" && !s.Claims.Expired(now)
}

// SignIn stores a fresh token. The cart is reloaded on next use.
func (s *Session) SignIn(token string, claims Claims) {
	s.Token = token
	s.Claims = claims
	s.Cart = cart.State{}
}

// SignOut drops credentials and everything tied to the account.
func (s *Session) SignOut() {
	s.Token = ""
	s.Claims = Claims{}
	s.Cart = cart.State{}
	s.PendingPaymentID = 0
}

func (s *Session) Clone() *Session {
	out := *s
	out.Claims.Scopes = append([]string(nil), s.Claims.Scopes...)
	out.Cart = s.Cart.Clone()
	return &out
}
