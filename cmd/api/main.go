package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sitegrade/sitegrade/internal/analyzer"
	"github.com/sitegrade/sitegrade/internal/api"
	"github.com/sitegrade/sitegrade/internal/config"
	"github.com/sitegrade/sitegrade/internal/db"
	"github.com/sitegrade/sitegrade/internal/fetcher"
	"github.com/sitegrade/sitegrade/internal/metrics"
	"github.com/sitegrade/sitegrade/internal/pagespeed"
	"github.com/sitegrade/sitegrade/internal/storage/redis"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, _ := zap.NewProduction()
	defer logger.Sync()

	// Optional audit history
	var repo *db.Repository
	if cfg.Database.URL != "" {
		if err := db.Migrate(cfg.Database.URL); err != nil {
			logger.Fatal("Failed to run migrations", zap.Error(err))
		}
		database, err := db.NewConnection(cfg.Database.URL, cfg.Database.MaxConnections, cfg.Database.MaxIdleConns)
		if err != nil {
			logger.Fatal("Failed to connect to database", zap.Error(err))
		}
		defer database.Close()
		repo = db.NewRepository(database)
	}

	// Optional report cache
	var cache *redis.Client
	if cfg.Redis.URL != "" {
		cache = redis.NewClient(cfg.Redis.URL)
		defer cache.Close()
	}

	collector := metrics.NewCollector(cfg.Metrics)

	service := analyzer.NewService(
		fetcher.New(cfg.Fetch.Timeout),
		pagespeed.NewClient(cfg.PageSpeed.APIKey, cfg.PageSpeed.Timeout, logger),
		logger,
	)

	server := api.NewServer(cfg, service, repo, cache, collector, logger)

	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: server.Router,
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if cfg.Metrics.RemoteWriteURL != "" {
		go collector.StartRemoteWrite(ctx, logger)
	}

	// Graceful shutdown
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	logger.Info("API server started", zap.String("port", cfg.Server.Port))

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Fatal("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exited")
}
