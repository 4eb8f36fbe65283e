package bootstrap

import (
	"loyalty-console/internal/pkg/clock"
	"loyalty-console/internal/pkg/config"
	"loyalty-console/internal/pkg/jwt"

	"go.uber.org/fx"
)

var JWTModule = fx.Module("jwt",
	fx.Provide(
		NewJWTService,
	),
)

func NewJWTService(cfg config.Config, clk clock.Clock) *jwt.Service {
	if cfg.Auth.Leeway < 0 {
		panic("invalid AUTH_LEEWAY: must not be negative")
	}
	return jwt.NewService(cfg.Auth.TokenSecret, cfg.Auth.Issuer, cfg.Auth.Leeway, clk)
}
