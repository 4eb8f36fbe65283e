package bootstrap

import (
	"loyalty-console/cmd/bootstrap/components"

	"go.uber.org/fx"
)

var Module = fx.Options(
	ConfigModule,
	LoggerModule,
	components.ClockModule,
	JWTModule,
	BackendModule,
	components.UseCaseModule,
	components.ViewModule,
	components.HandlerModule,
)
