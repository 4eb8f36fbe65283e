package components

import (
	"loyalty-console/internal/handler/view"
	"loyalty-console/internal/pkg/config"
	"loyalty-console/internal/pkg/format"

	"go.uber.org/fx"
)

var ViewModule = fx.Module("view",
	fx.Provide(
		func(cfg config.Config) (*format.Formatter, error) {
			return format.NewFormatter(cfg.Display)
		},
		view.NewRenderer,
	),
)
