package cookie

import (
	"net/http"
	"time"

	"loyalty-console/internal/pkg/config"

	"github.com/gin-gonic/gin"
)

const (
	AccessTokenCookieName = "access_token"
	SessionIDCookieName   = "session_id"
)

// SetSessionCookies stores the provider token and the console session id.
// maxAge is capped by cfg.MaxAge.
func SetSessionCookies(c *gin.Context, cfg config.CookieConfig, accessToken, sessionID string, maxAge time.Duration) {
	if cfg.MaxAge > 0 && (maxAge <= 0 || maxAge > cfg.MaxAge) {
		maxAge = cfg.MaxAge
	}

	c.SetSameSite(getSameSite(cfg.SameSite))

	c.SetCookie(
		AccessTokenCookieName,
		accessToken,
		int(maxAge.Seconds()),
		"/",
		cfg.Domain,
		cfg.Secure,
		true, // HttpOnly
	)

	c.SetCookie(
		SessionIDCookieName,
		sessionID,
		int(maxAge.Seconds()),
		"/",
		cfg.Domain,
		cfg.Secure,
		true, // HttpOnly
	)
}

func ClearSessionCookies(c *gin.Context, cfg config.CookieConfig) {
	c.SetSameSite(getSameSite(cfg.SameSite))

	for _, name := range []string{AccessTokenCookieName, SessionIDCookieName} {
		c.SetCookie(
			name,
			"",
			-1,
			"/",
			cfg.Domain,
			cfg.Secure,
			true,
		)
	}
}

func GetAccessToken(c *gin.Context) string {
	token, _ := c.Cookie(AccessTokenCookieName)
	return token
}

func GetSessionID(c *gin.Context) string {
	id, _ := c.Cookie(SessionIDCookieName)
	return id
}

func getSameSite(sameSite string) http.SameSite {
	switch sameSite {
	case "Strict":
		return http.SameSiteStrictMode
	case "Lax":
		return http.SameSiteLaxMode
	case "None":
		return http.SameSiteNoneMode
	default:
		return http.SameSiteLaxMode
	}
}
