// Package handler provides HTTP handlers for statistics endpoints.
package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/clatterline/messenger/internal/statistics/service"
)

// Handler handles HTTP requests for statistics endpoints.
type Handler struct {
	service service.Service
	logger  *zap.SugaredLogger
}

// New creates a new statistics handler instance.
func New(svc service.Service, logger *zap.SugaredLogger) *Handler {
	return &Handler{service: svc, logger: logger}
}

// Moderation handles GET /statistics/moderation request.
func (h *Handler) Moderation(c *gin.Context) {
	stats, err := h.service.ModerationStats(c.Request.Context())
	if err != nil {
		h.logger.Errorw("moderation statistics failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": gin.H{"code": "INTERNAL_ERROR", "message": "internal server error"},
		})
		return
	}
	c.JSON(http.StatusOK, stats)
}

// Groups handles GET /statistics/groups request.
func (h *Handler) Groups(c *gin.Context) {
	stats, err := h.service.GroupStats(c.Request.Context())
	if err != nil {
		h.logger.Errorw("group statistics failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": gin.H{"code": "INTERNAL_ERROR", "message": "internal server error"},
		})
		return
	}
	c.JSON(http.StatusOK, stats)
}
