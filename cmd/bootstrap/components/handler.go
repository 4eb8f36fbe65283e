package components

import (
	"loyalty-console/internal/handler"
	"loyalty-console/internal/handler/api"
	"loyalty-console/internal/handler/middleware"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewAuthHandler,
		api.NewDashboardHandler,
		api.NewPassHandler,
		api.NewScanHandler,
		handler.NewHandlers,
		middleware.NewAuthMiddleware,
	),
	fx.Invoke(handler.NewRouter),
)
