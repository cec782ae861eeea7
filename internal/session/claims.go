package session

import (
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/Cheertaboi/bookverse-storefront/internal/models"
)

// Claims are the parts of the backend's JWT the storefront needs. The token
// is verified by the backend on every call; here it is only read.
type Claims struct {
	Subject   string      `json:"sub,omitempty"`
	Username  string      `json:"username,omitempty"`
	Role      models.Role `json:"role,omitempty"`
	Scopes    []string    `json:"scopes,omitempty"`
	ExpiresAt time.Time   `json:"exp,omitempty"`
}

func (c Claims) Expired(now time.Time) bool {
	return !c.ExpiresAt.IsZero() && !now.Before(c.ExpiresAt)
}

type tokenClaims struct {
	jwt.RegisteredClaims
	Scope    string `json:"scope"`
	Username string `json:"username"`
}

// ParseClaims reads token without checking its signature.
func ParseClaims(token string) (Claims, error) {
	var tc tokenClaims
	if _, _, err := jwt.NewParser().ParseUnverified(token, &tc); err != nil {
		return Claims{}, fmt.Errorf("read token claims: %w", err)
	}

	c := Claims{
		Subject:  tc.Subject,
		Username: tc.Username,
		Scopes:   strings.Fields(tc.Scope),
	}
	if c.Username == "" {
		c.Username = tc.Subject
	}
	if tc.ExpiresAt != nil {
		c.ExpiresAt = tc.ExpiresAt.Time
	}
	c.Role = roleFromScopes(c.Scopes)
	return c, nil
}

// roleFromScopes picks the strongest role named in the scope claim, which
// may carry a ROLE_ prefix.
func roleFromScopes(scopes []string) models.Role {
	role := models.Role("")
	for _, s := range scopes {
		r := models.Role(strings.ToLower(strings.TrimPrefix(strings.ToUpper(s), "ROLE_")))
		switch r {
		case models.RoleAdmin:
			return r
		case models.RoleStaff:
			role = r
		case models.RoleCustomer:
			if role == "" {
				role = r
			}
		}
	}
	if role == "" {
		role = models.RoleCustomer
	}
	return role
}
