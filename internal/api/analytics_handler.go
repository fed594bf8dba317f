package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/panwartanish/SubSentry/internal/core"
)

// AnalyticsHandler handles the derived-data summary endpoint.
type AnalyticsHandler struct {
	analyticsService core.AnalyticsService
	logger           *zap.Logger
}

// NewAnalyticsHandler creates a new AnalyticsHandler.
func NewAnalyticsHandler(as core.AnalyticsService, logger *zap.Logger) *AnalyticsHandler {
	return &AnalyticsHandler{analyticsService: as, logger: logger}
}

// Summary handles GET /analytics/:email.
func (h *AnalyticsHandler) Summary(c *gin.Context) {
	email := c.Param("email")

	stats, err := h.analyticsService.Summary(c.Request.Context(), email)
	if err != nil {
		mapServiceError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"stats": stats})
}
