package api

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sitegrade/sitegrade/internal/api/handlers"
	"github.com/sitegrade/sitegrade/internal/api/middleware"
	"github.com/sitegrade/sitegrade/internal/config"
	"github.com/sitegrade/sitegrade/internal/db"
	"github.com/sitegrade/sitegrade/internal/metrics"
	"github.com/sitegrade/sitegrade/internal/storage/redis"
	"go.uber.org/zap"
)

type Server struct {
	Config *config.Config
	Router *gin.Engine
}

// NewServer assembles the HTTP surface. repo and cache may be nil when
// history and caching are not configured.
func NewServer(cfg *config.Config, analyzer handlers.Analyzer, repo *db.Repository, cache *redis.Client, collector *metrics.Collector, logger *zap.Logger) *Server {
	gin.SetMode(cfg.Server.Mode)
	router := gin.New()

	// Middleware
	router.Use(gin.Recovery())
	router.Use(middleware.Logger(logger))
	router.Use(middleware.CORS())

	h := handlers.NewHandler(analyzer, repo, cache, cfg.Redis.CacheTTL, collector, logger)

	// Health and observability
	router.GET("/health", h.Health)
	router.GET("/ready", h.Ready)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// API routes
	api := router.Group("/api/v1")
	api.Use(middleware.RateLimit(cfg.Server.RequestsPerMinute, cfg.Server.RateBurst))
	if cfg.Auth.JWTSecret != "" {
		api.Use(middleware.AuthRequired(cfg.Auth.JWTSecret))
	}
	{
		api.POST("/analyze", h.Analyze)
		api.GET("/audits", h.ListAudits)
		api.GET("/audits/:id", h.GetAudit)
	}

	return &Server{
		Config: cfg,
		Router: router,
	}
}
