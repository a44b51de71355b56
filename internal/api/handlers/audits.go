package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sitegrade/sitegrade/internal/db"
	"go.uber.org/zap"
)

func (h *Handler) GetAudit(c *gin.Context) {
	if h.repo == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "audit history is not configured"})
		return
	}

	audit, err := h.repo.GetAudit(c.Param("id"))
	if err != nil {
		if errors.Is(err, db.ErrAuditNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "audit not found"})
			return
		}
		h.logger.Error("failed to get audit", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusOK, audit)
}

func (h *Handler) ListAudits(c *gin.Context) {
	if h.repo == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "audit history is not configured"})
		return
	}

	limit, err := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if err != nil || limit < 1 || limit > 100 {
		limit = 20
	}

	audits, err := h.repo.ListAudits(limit)
	if err != nil {
		h.logger.Error("failed to list audits", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"audits": audits})
}
