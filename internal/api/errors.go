package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/panwartanish/SubSentry/internal/auth"
	"github.com/panwartanish/SubSentry/internal/core"
)

// mapServiceError maps errors from the core services and the auth gateway
// to HTTP status codes with a structured JSON body. Unknown errors become a
// generic 500 and are logged server-side only.
func mapServiceError(c *gin.Context, logger *zap.Logger, err error) {
	var statusCode int
	var resp ErrorResponse

	switch {
	case errors.Is(err, core.ErrUserExists):
		statusCode = http.StatusConflict
		resp = ErrorResponse{Error: "User already exists. Please login instead."}
	case errors.Is(err, core.ErrUserNotFound):
		statusCode = http.StatusNotFound
		resp = ErrorResponse{Error: "User not found"}
	case errors.Is(err, core.ErrSubscriptionNotFound):
		statusCode = http.StatusNotFound
		resp = ErrorResponse{Error: "Subscription not found"}
	case errors.Is(err, core.ErrInvalidSubscription):
		statusCode = http.StatusBadRequest
		resp = ErrorResponse{Error: "Missing required subscription fields", Details: err.Error()}
	case errors.Is(err, core.ErrUnknownCurrency):
		statusCode = http.StatusBadRequest
		resp = ErrorResponse{Error: "Unknown currency code", Details: err.Error()}
	case errors.Is(err, auth.ErrInvalidCredentials):
		statusCode = http.StatusUnauthorized
		resp = ErrorResponse{Error: "Invalid email or password"}
	case errors.Is(err, auth.ErrInvalidToken):
		statusCode = http.StatusUnauthorized
		resp = ErrorResponse{Error: "Invalid or expired session"}
	default:
		logger.Error("unhandled service error", zap.String("path", c.Request.URL.Path), zap.Error(err))
		statusCode = http.StatusInternalServerError
		resp = ErrorResponse{Error: "Internal server error"}
	}
	c.JSON(statusCode, resp)
}
