package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/obradev/obra/internal/domain"
)

func signToken(t *testing.T, name, role string, exp time.Time) string {
	t.Helper()
	claims := tokenClaims{
		Name: name,
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "u1",
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return token
}

func TestParseClaims_DecodesNameRoleAndExpiry(t *testing.T) {
	exp := time.Now().Add(time.Hour).Truncate(time.Second)
	token := signToken(t, "Ana", "admin", exp)

	claims, err := ParseClaims(token)
	require.NoError(t, err)
	assert.Equal(t, "u1", claims.Subject)
	assert.Equal(t, "Ana", claims.Name)
	assert.Equal(t, domain.RoleAdmin, claims.Role)
	assert.True(t, claims.ExpiresAt.Equal(exp))
}

func TestParseClaims_UnknownRoleFallsBackToWorker(t *testing.T) {
	token := signToken(t, "Luis", "superuser", time.Now().Add(time.Hour))

	claims, err := ParseClaims(token)
	require.NoError(t, err)
	assert.Equal(t, domain.RoleWorker, claims.Role)
}

func TestParseClaims_RejectsGarbage(t *testing.T) {
	_, err := ParseClaims("not-a-jwt")
	assert.ErrorIs(t, err, ErrMalformedToken)
}

func TestClaimsExpired(t *testing.T) {
	now := time.Now()

	c := &Claims{ExpiresAt: now.Add(-time.Minute)}
	assert.True(t, c.Expired(now))

	c = &Claims{ExpiresAt: now.Add(time.Minute)}
	assert.False(t, c.Expired(now))

	// No expiry means the token never expires.
	c = &Claims{}
	assert.False(t, c.Expired(now))
}
