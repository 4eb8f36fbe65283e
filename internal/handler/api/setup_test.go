//go:build unit

package api_test

import (
	"io"
	"log/slog"
	"testing"

	"loyalty-console/internal/handler"
	"loyalty-console/internal/handler/api"
	"loyalty-console/internal/handler/middleware"
	"loyalty-console/internal/handler/view"
	"loyalty-console/internal/pkg/clock"
	"loyalty-console/internal/pkg/config"
	"loyalty-console/internal/pkg/format"
	"loyalty-console/internal/pkg/jwt"
	"loyalty-console/internal/usecase"
	"loyalty-console/internal/usecase/passview"
	"loyalty-console/tests/common/authtest"
	usecasemock "loyalty-console/tests/mock/usecase"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

// fixture wires the real router against a mocked backend.
type fixture struct {
	cfg     config.Config
	router  *gin.Engine
	mockAPI *usecasemock.MockPassAPI
	screens *passview.Registry
	jwt     *authtest.JWTHelper
}

func newFixture(t *testing.T, ctrl *gomock.Controller) *fixture {
	t.Helper()
	return newFixtureWith(t, ctrl, nil)
}

// newFixtureWith lets a test adjust the config before anything is wired.
func newFixtureWith(t *testing.T, ctrl *gomock.Controller, mutate func(*config.Config)) *fixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := config.NewTestConfig()
	if mutate != nil {
		mutate(&cfg)
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	clk := clock.NewRealClock()
	mockAPI := usecasemock.NewMockPassAPI(ctrl)

	formatter, err := format.NewFormatter(cfg.Display)
	require.NoError(t, err)
	renderer, err := view.NewRenderer(formatter)
	require.NoError(t, err)

	screens := passview.NewRegistry(mockAPI, logger, clk, cfg.Session)
	validator := usecase.NewTokenValidator(jwt.NewService(cfg.Auth.TokenSecret, cfg.Auth.Issuer, cfg.Auth.Leeway, clk))

	engine := gin.New()
	handler.NewRouter(engine, cfg, logger, handler.NewHandlers(
		api.NewAuthHandler(validator, screens, renderer, clk, cfg),
		api.NewDashboardHandler(usecase.NewPassIssuer(mockAPI, logger), screens, renderer),
		api.NewPassHandler(screens, renderer),
		api.NewScanHandler(screens, renderer, cfg, logger),
	), middleware.NewAuthMiddleware(validator, cfg))

	return &fixture{
		cfg:     cfg,
		router:  engine,
		mockAPI: mockAPI,
		screens: screens,
		jwt:     authtest.NewJWTHelper(cfg.Auth),
	}
}
