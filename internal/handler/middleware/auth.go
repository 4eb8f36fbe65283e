package middleware

import (
	"encoding/hex"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"loyalty-console/internal/handler/httperr"
	"loyalty-console/internal/pkg/config"
	"loyalty-console/internal/pkg/cookie"
	"loyalty-console/internal/pkg/errs"
	"loyalty-console/internal/usecase"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/blake2b"
)

const LoginPath = "/login"

type AuthMiddleware struct {
	tokenValidator usecase.TokenValidator
	cookieCfg      config.CookieConfig
}

const (
	ctxEmployeeKey  = "employee"
	ctxTokenKey     = "access_token"
	ctxSessionIDKey = "session_id"
)

func NewAuthMiddleware(tokenValidator usecase.TokenValidator, cfg config.Config) *AuthMiddleware {
	return &AuthMiddleware{
		tokenValidator: tokenValidator,
		cookieCfg:      cfg.Cookie,
	}
}

// RequireSession admits requests carrying a valid provider token. Pages are
// redirected to the login screen, everything else gets a 401.
func (m *AuthMiddleware) RequireSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, fromCookie := extractToken(c)
		if token == "" {
			m.reject(c, usecase.ErrNotAuthenticated, "Access token required")
			return
		}

		employee, err := m.tokenValidator.ValidateToken(token)
		if err != nil {
			slog.Warn("Token validation failed in auth middleware", "error", err.Error())
			if fromCookie {
				cookie.ClearSessionCookies(c, m.cookieCfg)
			}
			m.reject(c, err, "Invalid or expired token")
			return
		}

		setSession(c, employee, token, fromCookie)
		c.Next()
	}
}

// OptionalSession loads the session when a valid token is present and never
// aborts.
func (m *AuthMiddleware) OptionalSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, fromCookie := extractToken(c)
		if token == "" {
			c.Next()
			return
		}

		employee, err := m.tokenValidator.ValidateToken(token)
		if err != nil {
			c.Next()
			return
		}

		setSession(c, employee, token, fromCookie)
		c.Next()
	}
}

func (m *AuthMiddleware) reject(c *gin.Context, err error, msg string) {
	if WantsHTML(c) {
		target := LoginPath + "?next=" + url.QueryEscape(c.Request.URL.RequestURI())
		c.Redirect(http.StatusSeeOther, target)
		c.Abort()
		return
	}
	httperr.AbortWithError(c, http.StatusUnauthorized, errs.Classify(err, usecase.ErrNotAuthenticated), msg, nil)
}

// extractToken prefers an Authorization header over the session cookie.
func extractToken(c *gin.Context) (token string, fromCookie bool) {
	if token = BearerToken(c.Request); token != "" {
		return token, false
	}
	return cookie.GetAccessToken(c), true
}

// BearerToken returns the token of an Authorization: Bearer header, if any.
func BearerToken(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if authHeader != "" && strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimSpace(authHeader[len("Bearer "):])
	}
	return ""
}

func setSession(c *gin.Context, employee *usecase.Employee, token string, fromCookie bool) {
	var sessionID string
	if fromCookie {
		sessionID = cookie.GetSessionID(c)
	}
	if sessionID == "" {
		sessionID = employee.SessionID
	}
	if sessionID == "" {
		sessionID = tokenSessionID(token)
	}

	c.Set(ctxEmployeeKey, employee)
	c.Set(ctxTokenKey, token)
	c.Set(ctxSessionIDKey, sessionID)
	c.Set("jwt_claims", map[string]any{
		"employee_id": employee.ID,
		"session_id":  sessionID,
	})
}

// tokenSessionID derives a stable session id for tokens without a sid claim.
func tokenSessionID(token string) string {
	sum := blake2b.Sum256([]byte(token))
	return "tok_" + hex.EncodeToString(sum[:12])
}

// WantsHTML reports whether the client prefers an HTML page over JSON.
func WantsHTML(c *gin.Context) bool {
	return c.NegotiateFormat(gin.MIMEHTML, gin.MIMEJSON) == gin.MIMEHTML
}

func GetEmployee(c *gin.Context) (*usecase.Employee, bool) {
	v, exists := c.Get(ctxEmployeeKey)
	if !exists {
		return nil, false
	}
	employee, ok := v.(*usecase.Employee)
	return employee, ok
}

func GetSessionID(c *gin.Context) string {
	return c.GetString(ctxSessionIDKey)
}

// GetTokens returns the token provider for backend calls of this request.
func GetTokens(c *gin.Context) usecase.TokenProvider {
	return usecase.StaticToken(c.GetString(ctxTokenKey))
}
