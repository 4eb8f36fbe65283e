package bootstrap

import (
	"context"
	"log/slog"

	"loyalty-console/internal/infra/backend"
	"loyalty-console/internal/pkg/config"
	"loyalty-console/internal/usecase"

	"go.uber.org/fx"
)

var BackendModule = fx.Module("backend",
	fx.Provide(
		fx.Annotate(
			NewBackendClient,
			fx.As(new(usecase.PassAPI)),
		),
	),
)

func NewBackendClient(lc fx.Lifecycle, cfg config.Config, logger *slog.Logger) (*backend.Client, error) {
	client, err := backend.NewClient(cfg.Backend, nil, logger.With("component", "backend"))
	if err != nil {
		return nil, err
	}

	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			client.CloseIdleConnections()
			return nil
		},
	})

	return client, nil
}
