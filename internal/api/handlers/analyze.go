package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sitegrade/sitegrade/internal/analyzer"
	"github.com/sitegrade/sitegrade/internal/core"
	"github.com/sitegrade/sitegrade/internal/db"
	"github.com/sitegrade/sitegrade/internal/metrics"
	"go.uber.org/zap"
)

type AnalyzeRequest struct {
	URL string `json:"url" binding:"required"`
}

func (h *Handler) Analyze(c *gin.Context) {
	var req AnalyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "url is required"})
		return
	}

	ctx := c.Request.Context()
	start := time.Now()

	normalized, err := analyzer.NormalizeURL(req.URL)
	if err != nil {
		h.metrics.RecordAnalysis(metrics.StatusValidationError, 0)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if h.cache != nil {
		var cached core.AnalysisReport
		if err := h.cache.GetCachedReport(ctx, normalized, &cached); err == nil {
			h.metrics.RecordCache("hit")
			c.JSON(http.StatusOK, cached)
			return
		}
		h.metrics.RecordCache("miss")
	}

	report, err := h.analyzer.Analyze(ctx, req.URL)
	if err != nil {
		var validation *core.ValidationError
		var unsupported *core.UnsupportedContentError
		switch {
		case errors.As(err, &validation):
			h.metrics.RecordAnalysis(metrics.StatusValidationError, 0)
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.As(err, &unsupported):
			h.metrics.RecordAnalysis(metrics.StatusUnsupported, 0)
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		default:
			h.metrics.RecordAnalysis(metrics.StatusError, 0)
			h.logger.Error("analysis failed", zap.String("url", req.URL), zap.Error(err))
			c.JSON(http.StatusBadGateway, gin.H{"error": "analysis failed"})
		}
		return
	}

	h.metrics.RecordAnalysis(metrics.StatusOK, time.Since(start).Seconds())
	if report.Scores.Total != nil {
		h.metrics.RecordTotalScore(*report.Scores.Total)
	}
	if report.PageSpeed.Degraded() {
		h.metrics.RecordPageSpeed("degraded")
	} else {
		h.metrics.RecordPageSpeed("ok")
	}

	h.persist(report, normalized)

	if h.cache != nil {
		if err := h.cache.CacheReport(ctx, normalized, report, h.cacheTTL); err != nil {
			h.logger.Warn("failed to cache report", zap.Error(err))
		}
	}

	c.JSON(http.StatusOK, report)
}

// persist stores the finished report when history is configured. A
// storage failure never fails the request.
func (h *Handler) persist(report *core.AnalysisReport, normalized string) {
	if h.repo == nil {
		return
	}

	payload, err := json.Marshal(report)
	if err != nil {
		h.logger.Error("failed to marshal report for storage", zap.Error(err))
		return
	}

	record := &db.AuditRecord{
		ID:         uuid.New().String(),
		Input:      report.Input,
		FinalURL:   report.FinalURL,
		Platform:   report.Platform,
		TotalScore: report.Scores.Total,
		Report:     db.JSONB(payload),
		CreatedAt:  time.Now(),
	}

	if err := h.repo.SaveAudit(record); err != nil {
		h.logger.Error("failed to save audit",
			zap.String("url", normalized),
			zap.Error(err),
		)
	}
}
