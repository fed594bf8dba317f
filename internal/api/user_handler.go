package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/panwartanish/SubSentry/internal/core"
)

// UserHandler handles user-profile API endpoints.
type UserHandler struct {
	userService core.UserService
	logger      *zap.Logger
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(us core.UserService, logger *zap.Logger) *UserHandler {
	return &UserHandler{userService: us, logger: logger}
}

// GetUser handles GET /user/:email.
func (h *UserHandler) GetUser(c *gin.Context) {
	email := c.Param("email")

	user, err := h.userService.GetByEmail(c.Request.Context(), email)
	if err != nil {
		mapServiceError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user})
}

// UpdatePreferences handles PUT /user/:email/preferences.
func (h *UserHandler) UpdatePreferences(c *gin.Context) {
	email := c.Param("email")

	var req UpdatePreferencesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request payload", Details: err.Error()})
		return
	}

	user, err := h.userService.UpdatePreferredCurrency(c.Request.Context(), email, req.PreferredCurrency)
	if err != nil {
		mapServiceError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user})
}
