package api

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/panwartanish/SubSentry/internal/core"
	"github.com/panwartanish/SubSentry/internal/models"
)

// SubscriptionHandler handles subscription CRUD API endpoints.
type SubscriptionHandler struct {
	subscriptionService core.SubscriptionService
	logger              *zap.Logger
}

// NewSubscriptionHandler creates a new SubscriptionHandler.
func NewSubscriptionHandler(ss core.SubscriptionService, logger *zap.Logger) *SubscriptionHandler {
	return &SubscriptionHandler{subscriptionService: ss, logger: logger}
}

// List handles GET /subscriptions/:email. A user with no subscriptions gets
// an empty list, not an error.
func (h *SubscriptionHandler) List(c *gin.Context) {
	email := c.Param("email")

	subs, err := h.subscriptionService.List(c.Request.Context(), email)
	if err != nil {
		mapServiceError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"subscriptions": subs})
}

// Add handles POST /subscriptions/:email.
func (h *SubscriptionHandler) Add(c *gin.Context) {
	email := c.Param("email")

	var draft models.SubscriptionDraft
	if err := c.ShouldBindJSON(&draft); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request payload", Details: err.Error()})
		return
	}

	sub, subs, err := h.subscriptionService.Add(c.Request.Context(), email, draft)
	if err != nil {
		mapServiceError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"subscription":  sub,
		"subscriptions": subs,
	})
}

// Update handles PUT /subscriptions/:email/:id. The body is a typed patch;
// fields outside the patch set are rejected rather than silently merged.
func (h *SubscriptionHandler) Update(c *gin.Context) {
	email := c.Param("email")
	id := c.Param("id")

	decoder := json.NewDecoder(c.Request.Body)
	decoder.DisallowUnknownFields()
	var patch models.SubscriptionPatch
	if err := decoder.Decode(&patch); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request payload", Details: err.Error()})
		return
	}

	sub, subs, err := h.subscriptionService.Update(c.Request.Context(), email, id, patch)
	if err != nil {
		mapServiceError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"subscription":  sub,
		"subscriptions": subs,
	})
}

// Delete handles DELETE /subscriptions/:email/:id.
func (h *SubscriptionHandler) Delete(c *gin.Context) {
	email := c.Param("email")
	id := c.Param("id")

	subs, err := h.subscriptionService.Delete(c.Request.Context(), email, id)
	if err != nil {
		mapServiceError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":       "Subscription deleted",
		"subscriptions": subs,
	})
}

// Clear handles DELETE /subscriptions/:email.
func (h *SubscriptionHandler) Clear(c *gin.Context) {
	email := c.Param("email")

	if err := h.subscriptionService.Clear(c.Request.Context(), email); err != nil {
		mapServiceError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "All subscriptions deleted"})
}
