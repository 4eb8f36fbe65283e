//go:build unit || e2e

package authtest

import (
	"testing"
	"time"

	"loyalty-console/internal/pkg/config"
	pkgjwt "loyalty-console/internal/pkg/jwt"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

// JWTHelper mints tokens the way the identity provider does.
type JWTHelper struct {
	cfg config.AuthConfig
}

func NewJWTHelper(cfg config.AuthConfig) *JWTHelper {
	return &JWTHelper{cfg: cfg}
}

type TokenOption func(*pkgjwt.Claims)

func WithSessionID(sid string) TokenOption {
	return func(c *pkgjwt.Claims) { c.SessionID = sid }
}

func WithName(name string) TokenOption {
	return func(c *pkgjwt.Claims) { c.Name = name }
}

func WithIssuer(iss string) TokenOption {
	return func(c *pkgjwt.Claims) { c.Issuer = iss }
}

func WithExpiresAt(t time.Time) TokenOption {
	return func(c *pkgjwt.Claims) { c.ExpiresAt = jwt.NewNumericDate(t) }
}

func WithoutExpiry() TokenOption {
	return func(c *pkgjwt.Claims) { c.ExpiresAt = nil }
}

// GenerateToken signs a token for employeeID, valid for an hour from now.
func (h *JWTHelper) GenerateToken(t *testing.T, employeeID string, opts ...TokenOption) string {
	t.Helper()
	return h.sign(t, []byte(h.cfg.TokenSecret), jwt.SigningMethodHS256, employeeID, opts...)
}

func (h *JWTHelper) CreateExpiredToken(t *testing.T, employeeID string) string {
	t.Helper()
	return h.GenerateToken(t, employeeID, WithExpiresAt(time.Now().Add(-time.Hour)))
}

// GenerateForeignToken signs with a key the console does not trust.
func (h *JWTHelper) GenerateForeignToken(t *testing.T, employeeID string) string {
	t.Helper()
	return h.sign(t, []byte("some-other-secret"), jwt.SigningMethodHS256, employeeID)
}

func (h *JWTHelper) sign(t *testing.T, key []byte, method jwt.SigningMethod, employeeID string, opts ...TokenOption) string {
	t.Helper()
	now := time.Now()
	claims := &pkgjwt.Claims{
		SessionID: "sess_" + uuid.NewString(),
		Name:      "Test Employee",
		Email:     "employee@example.com",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   employeeID,
			Issuer:    h.cfg.Issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
		},
	}
	for _, opt := range opts {
		opt(claims)
	}

	token, err := jwt.NewWithClaims(method, claims).SignedString(key)
	require.NoError(t, err)
	return token
}
