package httpserver

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/arnaudmoncondhuy/synapse-admin/internal/config"
	"github.com/arnaudmoncondhuy/synapse-admin/internal/infrastructure/logger"
	"github.com/arnaudmoncondhuy/synapse-admin/internal/interfaces/httpserver/handlers"
	"github.com/arnaudmoncondhuy/synapse-admin/internal/interfaces/httpserver/middlewares"
	"github.com/arnaudmoncondhuy/synapse-admin/internal/metrics"
)

// HTTPServer is the gin front of the admin console. Everything under
// /v1/admin sits behind the admin key gate; health and metrics stay open.
type HTTPServer struct {
	engine *gin.Engine
	config *config.Config

	presetHandler    *handlers.PresetHandler
	modelHandler     *handlers.ModelHandler
	providerHandler  *handlers.ProviderHandler
	analyticsHandler *handlers.AnalyticsHandler
	memoryHandler    *handlers.MemoryHandler
	debugHandler     *handlers.DebugHandler
	systemHandler    *handlers.SystemHandler
}

func NewHTTPServer(
	cfg *config.Config,
	presetHandler *handlers.PresetHandler,
	modelHandler *handlers.ModelHandler,
	providerHandler *handlers.ProviderHandler,
	analyticsHandler *handlers.AnalyticsHandler,
	memoryHandler *handlers.MemoryHandler,
	debugHandler *handlers.DebugHandler,
	systemHandler *handlers.SystemHandler,
) *HTTPServer {
	gin.SetMode(gin.ReleaseMode)

	server := &HTTPServer{
		engine:           gin.New(),
		config:           cfg,
		presetHandler:    presetHandler,
		modelHandler:     modelHandler,
		providerHandler:  providerHandler,
		analyticsHandler: analyticsHandler,
		memoryHandler:    memoryHandler,
		debugHandler:     debugHandler,
		systemHandler:    systemHandler,
	}

	server.engine.Use(gin.Recovery())
	server.engine.Use(middlewares.RequestID())
	server.engine.Use(middlewares.LoggingMiddleware(logger.GetLogger()))
	server.engine.Use(middlewares.MetricsMiddleware())

	server.engine.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	server.engine.GET("/metrics", gin.WrapH(metrics.Handler()))

	server.registerRoutes()
	return server
}

func (s *HTTPServer) registerRoutes() {
	admin := s.engine.Group("/v1/admin")
	admin.Use(middlewares.RequireAdminKey(s.config.AdminAPIKey))

	presets := admin.Group("/presets")
	{
		presets.GET("", s.presetHandler.List)
		presets.POST("", s.presetHandler.Create)
		presets.GET("/:id", s.presetHandler.Get)
		presets.PUT("/:id", s.presetHandler.Update)
		presets.DELETE("/:id", s.presetHandler.Delete)
		presets.POST("/:id/activate", s.presetHandler.Activate)
		presets.POST("/:id/clone", s.presetHandler.Clone)
		presets.POST("/:id/test", s.presetHandler.Test)
		presets.GET("/:id/test-status", s.presetHandler.TestStatus)
	}

	models := admin.Group("/models")
	{
		models.GET("", s.modelHandler.List)
		models.POST("/:id/toggle", s.modelHandler.Toggle)
		models.PUT("/:id/pricing", s.modelHandler.UpdatePricing)
	}

	providers := admin.Group("/providers")
	{
		providers.GET("", s.providerHandler.List)
		providers.PUT("/:name", s.providerHandler.Upsert)
	}

	admin.GET("/analytics", s.analyticsHandler.Overview)

	memories := admin.Group("/memories")
	{
		memories.GET("", s.memoryHandler.List)
		memories.DELETE("/:id", s.memoryHandler.Delete)
	}

	debug := admin.Group("/debug")
	{
		debug.GET("", s.debugHandler.List)
		debug.DELETE("", s.debugHandler.ClearAll)
		debug.GET("/:debugId", s.debugHandler.Detail)
	}

	admin.GET("/audit", s.debugHandler.Audit)
	admin.GET("/dashboard", s.systemHandler.Dashboard)
	admin.GET("/gdpr", s.systemHandler.Gdpr)
	admin.GET("/about", s.systemHandler.About)
}

// Engine exposes the router, mainly for tests.
func (s *HTTPServer) Engine() *gin.Engine {
	return s.engine
}

// Run blocks serving HTTP on the configured port.
func (s *HTTPServer) Run() error {
	return s.engine.Run(fmt.Sprintf(":%d", s.config.HTTPPort))
}
