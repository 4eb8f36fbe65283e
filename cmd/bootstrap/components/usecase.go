package components

import (
	"loyalty-console/internal/pkg/clock"
	"loyalty-console/internal/pkg/config"
	"loyalty-console/internal/usecase"
	"loyalty-console/internal/usecase/passview"

	"go.uber.org/fx"
)

var ClockModule = fx.Module("clock",
	fx.Provide(
		clock.NewRealClock,
	),
)

var UseCaseModule = fx.Module("usecase",
	usecaseValidatorsModule,
	usecaseScreensModule,
	fx.Provide(
		usecase.NewPassIssuer,
	),
)

var usecaseScreensModule = fx.Module("usecase/passview",
	fx.Provide(
		func(cfg config.Config) config.SessionConfig {
			return cfg.Session
		},
		passview.NewRegistry,
	),
)

var usecaseValidatorsModule = fx.Module("usecase/validators",
	fx.Provide(
		usecase.NewTokenValidator,
	),
)
