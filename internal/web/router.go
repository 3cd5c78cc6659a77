package web

import (
	"github.com/BerylCAtieno/content-generator/internal/config"
	"github.com/BerylCAtieno/content-generator/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewRouter wires the middleware chain and every route.
func NewRouter(cfg *config.Config, h *Handler) *gin.Engine {
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(middleware.Recovery())
	engine.Use(middleware.RequestID())
	engine.Use(middleware.CORS(cfg.Security.CORS))
	if cfg.Observability.Tracing.Enabled {
		engine.Use(middleware.Trace(cfg.App.Name))
		engine.Use(middleware.TraceContext())
	}
	engine.Use(middleware.RequestLogging())
	if cfg.Observability.Metrics.Enabled {
		engine.Use(middleware.Metrics())
	}

	health := NewHealthHandler(cfg.App.Version, h.service)
	engine.GET("/health", health.Health)
	engine.GET("/ready", health.Ready)
	engine.GET("/live", health.Live)

	if cfg.Observability.Metrics.Enabled {
		path := cfg.Observability.Metrics.Path
		if path == "" {
			path = "/metrics"
		}
		engine.GET(path, gin.WrapH(promhttp.Handler()))
	}

	engine.GET("/", h.Index)
	engine.GET("/clear", h.Clear)
	engine.POST("/generate", h.Submit)

	api := engine.Group("/api")
	{
		api.POST("/generate", h.Generate)
		api.POST("/generate/stream", h.GenerateStream)
		api.GET("/status", h.Status)
		api.GET("/options", h.Options)
		api.POST("/word-count", h.WordCount)
	}

	return engine
}
