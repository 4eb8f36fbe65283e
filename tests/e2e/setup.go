//go:build e2e

package e2e

import (
	"context"
	"fmt"
	"log/slog"
	"testing"
	"time"

	"loyalty-console/cmd/bootstrap"
	"loyalty-console/cmd/bootstrap/components"
	"loyalty-console/internal/pkg/config"
	"loyalty-console/tests/common/authtest"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/fx"
)

// ------------------------------------------------------------
// Per-suite environment
// ------------------------------------------------------------
func setupE2EEnvironment(t *testing.T) (*gin.Engine, config.Config, *FakeBackend, *authtest.JWTHelper) {
	gin.SetMode(gin.TestMode)

	cfg := config.NewTestConfig()
	jwtHelper := authtest.NewJWTHelper(cfg.Auth)
	token := jwtHelper.GenerateToken(t, "user_e2e", authtest.WithName("E2E Employee"))

	backend := NewFakeBackend(token)
	t.Cleanup(backend.Close)
	cfg.Backend.BaseURL = backend.URL()

	router, app := buildE2EApp(cfg)
	require.NotNil(t, router, "router setup failed")

	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := app.Stop(ctx); err != nil {
			slog.Warn("Failed to stop fx application", "error", err.Error())
		}
	})

	return router, cfg, backend, jwtHelper
}

// ------------------------------------------------------------
// Application wiring for E2E tests
// Returns the router and the fx.App for lifecycle management
// ------------------------------------------------------------
func buildE2EApp(cfg config.Config) (*gin.Engine, *fx.App) {
	var router *gin.Engine

	testConfigModule := fx.Module("testconfig",
		fx.Provide(func() config.Config { return cfg }),
	)

	app := fx.New(
		testConfigModule,
		fx.Provide(func() *gin.Engine { return gin.New() }),
		bootstrap.LoggerModule,
		components.ClockModule,
		bootstrap.JWTModule,
		bootstrap.BackendModule,
		components.UseCaseModule,
		components.ViewModule,
		components.HandlerModule,

		fx.Populate(&router),

		fx.NopLogger,
	)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.Start(ctx); err != nil {
		panic(fmt.Sprintf("Failed to start fx app: %v", err))
	}

	return router, app
}

// ------------------------------------------------------------
// Shared setup for E2E suites
// ------------------------------------------------------------
type SharedSuite struct {
	suite.Suite
	Router  *gin.Engine
	Config  config.Config
	Backend *FakeBackend
	JWT     *authtest.JWTHelper
}

func (s *SharedSuite) SetupSharedSuite(t *testing.T) {
	router, cfg, backend, jwtHelper := setupE2EEnvironment(t)
	s.Router = router
	s.Config = cfg
	s.Backend = backend
	s.JWT = jwtHelper
	require.NotNil(t, s.Router, "router setup failed")
}

func (s *SharedSuite) SetupSuite() {
	s.SetupSharedSuite(s.T())
}

func (s *SharedSuite) SetupSubTest() {
	s.Backend.Reset()
}

// Token is the session token the fake backend accepts.
func (s *SharedSuite) Token() string {
	return s.Backend.token
}
