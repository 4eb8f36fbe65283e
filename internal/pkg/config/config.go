package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// -----------------------------------------------------------------------------
// Environment variable configuration guidelines:
// - required: Values that differ between environments (port, secrets, etc.)
// - default: Values common across all environments (timezone, locale, etc.)
// -----------------------------------------------------------------------------

type Config struct {
	Server  ServerConfig
	Backend BackendConfig
	Auth    AuthConfig
	Cookie  CookieConfig
	CSRF    CSRFConfig
	Session SessionConfig
	Display DisplayConfig
	CORS    CORSConfig
	Log     LogConfig
}

type ServerConfig struct {
	Port string `envconfig:"PORT" required:"true"`
}

// BackendConfig points at the loyalty backend. Requests use the transport
// default timeout; only the request context bounds them.
type BackendConfig struct {
	BaseURL string `envconfig:"BACKEND_API_URL" default:"http://localhost:3000"`
}

type AuthConfig struct {
	TokenSecret string        `envconfig:"AUTH_TOKEN_SECRET" required:"true"`
	Issuer      string        `envconfig:"AUTH_ISSUER"`
	SignInURL   string        `envconfig:"AUTH_SIGN_IN_URL"`
	Leeway      time.Duration `envconfig:"AUTH_LEEWAY" default:"30s"`
}

type CookieConfig struct {
	Domain   string        `envconfig:"COOKIE_DOMAIN"`
	Secure   bool          `envconfig:"COOKIE_SECURE" default:"true"`
	SameSite string        `envconfig:"COOKIE_SAME_SITE" default:"Lax"`
	MaxAge   time.Duration `envconfig:"COOKIE_MAX_AGE" default:"12h"`
}

type CSRFConfig struct {
	Key            string   `envconfig:"CSRF_KEY" required:"true"`
	TrustedOrigins []string `envconfig:"CSRF_TRUSTED_ORIGINS"`
}

type SessionConfig struct {
	IdleTimeout time.Duration `envconfig:"SESSION_IDLE_TIMEOUT" default:"30m"`

	// ScanStreamTimeout closes a scan stream whose browser stops answering pings.
	ScanStreamTimeout time.Duration `envconfig:"SCAN_STREAM_TIMEOUT" default:"60s"`
}

type DisplayConfig struct {
	Locale     string `envconfig:"DISPLAY_LOCALE" default:"en"`
	TimeZone   string `envconfig:"DISPLAY_TIMEZONE" default:"UTC"`
	TimeFormat string `envconfig:"DISPLAY_TIME_FORMAT" default:"2006-01-02 15:04"`
}

type CORSConfig struct {
	AllowOrigins     []string      `envconfig:"CORS_ALLOW_ORIGINS" default:"http://localhost:3000,http://localhost:8080"`
	AllowMethods     []string      `envconfig:"CORS_ALLOW_METHODS" default:"GET,POST,OPTIONS"`
	AllowHeaders     []string      `envconfig:"CORS_ALLOW_HEADERS" default:"Origin,Content-Type,Accept,Authorization,X-CSRF-Token"`
	ExposeHeaders    []string      `envconfig:"CORS_EXPOSE_HEADERS" default:"Content-Length,Content-Disposition"`
	AllowCredentials bool          `envconfig:"CORS_ALLOW_CREDENTIALS" default:"true"`
	MaxAge           time.Duration `envconfig:"CORS_MAX_AGE" default:"12h"`
}

type LogConfig struct {
	Level          string `envconfig:"LOG_LEVEL" default:"info"`
	TimeZone       string `envconfig:"LOG_TIMEZONE" default:"UTC"`
	TimeFormat     string `envconfig:"LOG_TIME_FORMAT" default:"2006-01-02 15:04:05.000"`
	TimeZoneOffset int    `envconfig:"LOG_TIMEZONE_OFFSET" default:"0"`
}

func (c CSRFConfig) Validate() error {
	if len(c.Key) != 32 {
		return fmt.Errorf("CSRF_KEY must be exactly 32 bytes, got %d", len(c.Key))
	}
	return nil
}

func LoadConfig() (Config, error) {
	var cfg Config
	err := envconfig.Process("", &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("failed to process env config: %w", err)
	}
	if err := cfg.CSRF.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func NewTestConfig() Config {
	return Config{
		Server: ServerConfig{
			Port: "8889", // Test port
		},
		Backend: BackendConfig{
			BaseURL: "http://localhost:13000",
		},
		Auth: AuthConfig{
			TokenSecret: "test-token-secret",
			Issuer:      "https://auth.test.local",
			SignInURL:   "https://auth.test.local/sign-in",
			Leeway:      0,
		},
		Cookie: CookieConfig{
			Secure:   false,
			SameSite: "Lax",
			MaxAge:   time.Hour,
		},
		CSRF: CSRFConfig{
			Key: "0123456789abcdef0123456789abcdef",
		},
		Session: SessionConfig{
			IdleTimeout:       30 * time.Minute,
			ScanStreamTimeout: 60 * time.Second,
		},
		Display: DisplayConfig{
			Locale:     "en",
			TimeZone:   "UTC",
			TimeFormat: "2006-01-02 15:04",
		},
		Log: LogConfig{
			Level:          "error", // Error level only for tests
			TimeZone:       "UTC",
			TimeFormat:     "2006-01-02 15:04:05.000",
			TimeZoneOffset: 0,
		},
	}
}
