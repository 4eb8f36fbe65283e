package middleware

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"loyalty-console/internal/handler/httperr"
	"loyalty-console/internal/pkg/config"
	"loyalty-console/internal/pkg/cookie"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/csrf"
)

// CSRFFieldName is the hidden form field carrying the token.
const CSRFFieldName = "csrf_token"

// NewCSRFMiddleware protects unsafe form posts. Requests that authenticate
// with an Authorization header and carry no session cookie have no ambient
// credentials and are exempt.
func NewCSRFMiddleware(cfg config.Config) gin.HandlerFunc {
	opts := []csrf.Option{
		csrf.Secure(cfg.Cookie.Secure),
		csrf.HttpOnly(true),
		csrf.Path("/"),
		csrf.SameSite(csrfSameSite(cfg.Cookie.SameSite)),
		csrf.FieldName(CSRFFieldName),
		csrf.ErrorHandler(http.HandlerFunc(csrfFailure)),
	}
	if cfg.Cookie.Domain != "" {
		opts = append(opts, csrf.Domain(cfg.Cookie.Domain))
	}
	if len(cfg.CSRF.TrustedOrigins) > 0 {
		opts = append(opts, csrf.TrustedOrigins(cfg.CSRF.TrustedOrigins))
	}
	protect := csrf.Protect([]byte(cfg.CSRF.Key), opts...)
	plaintext := !cfg.Cookie.Secure

	return func(c *gin.Context) {
		r := c.Request
		if plaintext {
			r = csrf.PlaintextHTTPRequest(r)
		}
		if headerOnly(r) {
			r = csrf.UnsafeSkipCheck(r)
		}

		passed := false
		protect(http.HandlerFunc(func(_ http.ResponseWriter, req *http.Request) {
			passed = true
			c.Request = req
			c.Next()
		})).ServeHTTP(c.Writer, r)

		if !passed {
			c.Abort()
		}
	}
}

func headerOnly(r *http.Request) bool {
	if BearerToken(r) == "" {
		return false
	}
	_, err := r.Cookie(cookie.AccessTokenCookieName)
	return err != nil
}

func csrfFailure(w http.ResponseWriter, r *http.Request) {
	slog.Warn("CSRF check failed", "path", r.URL.Path, "reason", csrf.FailureReason(r))

	resp := httperr.NewResponse(http.StatusForbidden, "Forbidden - CSRF token invalid")
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(resp.Status)
	_ = json.NewEncoder(w).Encode(resp)
}

func csrfSameSite(sameSite string) csrf.SameSiteMode {
	switch sameSite {
	case "Strict":
		return csrf.SameSiteStrictMode
	case "None":
		return csrf.SameSiteNoneMode
	default:
		return csrf.SameSiteLaxMode
	}
}
