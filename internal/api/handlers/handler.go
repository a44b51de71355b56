package handlers

import (
	"context"
	"time"

	"github.com/sitegrade/sitegrade/internal/core"
	"github.com/sitegrade/sitegrade/internal/db"
	"github.com/sitegrade/sitegrade/internal/metrics"
	"github.com/sitegrade/sitegrade/internal/storage/redis"
	"go.uber.org/zap"
)

// Analyzer runs one full audit for a raw user-supplied URL.
type Analyzer interface {
	Analyze(ctx context.Context, rawInput string) (*core.AnalysisReport, error)
}

type Handler struct {
	analyzer Analyzer
	repo     *db.Repository
	cache    *redis.Client
	cacheTTL time.Duration
	metrics  *metrics.Collector
	logger   *zap.Logger
}

// NewHandler wires the handler. repo and cache may be nil: audit
// history and report caching are optional deployments.
func NewHandler(analyzer Analyzer, repo *db.Repository, cache *redis.Client, cacheTTL time.Duration, collector *metrics.Collector, logger *zap.Logger) *Handler {
	return &Handler{
		analyzer: analyzer,
		repo:     repo,
		cache:    cache,
		cacheTTL: cacheTTL,
		metrics:  collector,
		logger:   logger,
	}
}
