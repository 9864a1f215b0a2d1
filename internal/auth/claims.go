package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/obradev/obra/internal/domain"
)

// Claims is the subset of the backend's JWT the client cares about. The
// token is decoded without signature verification: the backend is the only
// party that enforces it, the client reads it purely for display and
// routing.
type Claims struct {
	Subject   string
	Name      string
	Role      domain.Role
	ExpiresAt time.Time
}

type tokenClaims struct {
	Name string `json:"name"`
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// ParseClaims decodes the bearer token's claims.
func ParseClaims(token string) (*Claims, error) {
	var tc tokenClaims
	if _, _, err := jwt.NewParser().ParseUnverified(token, &tc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedToken, err)
	}

	role := domain.Role(tc.Role)
	if !domain.ValidRoles[tc.Role] {
		role = domain.RoleWorker
	}

	c := &Claims{
		Subject: tc.Subject,
		Name:    tc.Name,
		Role:    role,
	}
	if tc.ExpiresAt != nil {
		c.ExpiresAt = tc.ExpiresAt.Time
	}
	return c, nil
}

// Expired reports whether the token's expiry has passed. Tokens without an
// expiry never expire.
func (c *Claims) Expired(now time.Time) bool {
	return !c.ExpiresAt.IsZero() && now.After(c.ExpiresAt)
}
