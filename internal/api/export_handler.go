package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/panwartanish/SubSentry/internal/core"
)

// ExportHandler handles subscription data export.
type ExportHandler struct {
	subscriptionService core.SubscriptionService
	logger              *zap.Logger
}

// NewExportHandler creates a new ExportHandler.
func NewExportHandler(ss core.SubscriptionService, logger *zap.Logger) *ExportHandler {
	return &ExportHandler{subscriptionService: ss, logger: logger}
}

// Export handles GET /export/:email?format=csv|json. CSV rows carry the raw
// stored costs and currencies; no conversion is applied on export.
func (h *ExportHandler) Export(c *gin.Context) {
	email := c.Param("email")
	format := c.DefaultQuery("format", "json")

	subs, err := h.subscriptionService.List(c.Request.Context(), email)
	if err != nil {
		mapServiceError(c, h.logger, err)
		return
	}

	if format == "csv" {
		filename := fmt.Sprintf("subscriptions-%s.csv", time.Now().UTC().Format("2006-01-02"))
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
		c.Data(http.StatusOK, "text/csv", []byte(core.RenderCSV(subs)))
		return
	}

	c.JSON(http.StatusOK, gin.H{"subscriptions": subs})
}
