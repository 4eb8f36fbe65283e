package handler

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"loyalty-console/internal/handler/api"
	"loyalty-console/internal/handler/middleware"
	"loyalty-console/internal/pkg/config"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
	Mw      []gin.HandlerFunc
}

type Handlers struct {
	Auth      *api.AuthHandler
	Dashboard *api.DashboardHandler
	Pass      *api.PassHandler
	Scan      *api.ScanHandler
}

func NewHandlers(auth *api.AuthHandler, dashboard *api.DashboardHandler, pass *api.PassHandler, scan *api.ScanHandler) Handlers {
	return Handlers{Auth: auth, Dashboard: dashboard, Pass: pass, Scan: scan}
}

func NewRouter(engine *gin.Engine, cfg config.Config, logger *slog.Logger, h Handlers, authMiddleware *middleware.AuthMiddleware) {
	// serial numbers may contain escaped slashes
	engine.UseRawPath = true
	engine.UnescapePathValues = true

	setupMiddleware(engine, cfg, logger)
	setupRoutes(engine, h, authMiddleware, middleware.NewCSRFMiddleware(cfg))
}

func setupMiddleware(engine *gin.Engine, cfg config.Config, logger *slog.Logger) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery(logger))
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS))
	engine.Use(middleware.LoggingMiddleware(logger, cfg.Log))
	engine.Use(middleware.ErrorHandler())
}

func setupRoutes(engine *gin.Engine, h Handlers, authMiddleware *middleware.AuthMiddleware, csrfMiddleware gin.HandlerFunc) {
	engine.GET("/health", healthCheck)

	if gin.Mode() == gin.DebugMode {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	web := engine.Group("")
	web.Use(csrfMiddleware)
	{
		addRoutes(web, []route{
			{Method: http.MethodGet, Path: middleware.LoginPath, Handler: h.Auth.LoginPage, Mw: []gin.HandlerFunc{authMiddleware.OptionalSession()}},
			{Method: http.MethodPost, Path: middleware.LoginPath, Handler: h.Auth.Login},
		})

		authRequired := web.Group("")
		authRequired.Use(authMiddleware.RequireSession())
		addRoutes(authRequired, []route{
			{Method: http.MethodPost, Path: "/logout", Handler: h.Auth.Logout},
			{Method: http.MethodGet, Path: "/session", Handler: h.Auth.Session},
			{Method: http.MethodGet, Path: "/", Handler: h.Dashboard.Dashboard},
			{Method: http.MethodGet, Path: "/passes/new", Handler: h.Dashboard.CreatePass},
			{Method: http.MethodGet, Path: "/scan", Handler: h.Scan.Page},
			{Method: http.MethodGet, Path: api.ScanStreamPath, Handler: h.Scan.Stream},
		})

		passes := authRequired.Group("/pass/:serialNumber")
		addRoutes(passes, []route{
			{Method: http.MethodGet, Path: "", Handler: h.Pass.Show},
			{Method: http.MethodPost, Path: "/points", Handler: h.Pass.AddPoints},
			{Method: http.MethodPost, Path: "/bonus", Handler: h.Pass.RedeemBonus},
		})
	}
}

// @Summary Health check
// @Description Check if the service is healthy
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "Service is healthy",
	})
}

func addRoutes(g *gin.RouterGroup, rs []route) {
	for _, r := range rs {
		h := r.Handler
		if len(r.Mw) > 0 {
			h = chainHandlers(append(r.Mw, r.Handler)...)
		}
		switch r.Method {
		case http.MethodGet:
			g.GET(r.Path, h)
		case http.MethodPost:
			g.POST(r.Path, h)
		default:
			g.Any(r.Path, h)
		}
	}
}

func chainHandlers(hs ...gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, h := range hs {
			h(c)
			if c.IsAborted() {
				return
			}
		}
	}
}
