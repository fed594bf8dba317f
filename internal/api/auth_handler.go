package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/panwartanish/SubSentry/internal/core"
)

// AuthHandler handles authentication related API endpoints. Credential
// verification itself happens at the identity provider; these handlers
// forward and mirror.
type AuthHandler struct {
	userService core.UserService
	logger      *zap.Logger
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(us core.UserService, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{userService: us, logger: logger}
}

// Signup handles POST /auth/signup.
func (h *AuthHandler) Signup(c *gin.Context) {
	var req SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request payload", Details: err.Error()})
		return
	}
	if req.Name == "" || req.Email == "" || req.Password == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Name, email, and password are required"})
		return
	}

	user, err := h.userService.SignUp(c.Request.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		mapServiceError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"user":    user,
		"message": "Account created successfully",
	})
}

// Login handles POST /auth/login.
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request payload", Details: err.Error()})
		return
	}
	if req.Email == "" || req.Password == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Email and password are required"})
		return
	}

	user, session, err := h.userService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		mapServiceError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"user":         user,
		"session":      session,
		"access_token": session.AccessToken,
	})
}

// GoogleLogin handles POST /auth/google.
func (h *AuthHandler) GoogleLogin(c *gin.Context) {
	var req TokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request payload", Details: err.Error()})
		return
	}
	if req.AccessToken == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Access token is required"})
		return
	}

	user, err := h.userService.GoogleLogin(c.Request.Context(), req.AccessToken)
	if err != nil {
		mapServiceError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"user":         user,
		"access_token": req.AccessToken,
	})
}

// Verify handles POST /auth/verify.
func (h *AuthHandler) Verify(c *gin.Context) {
	var req TokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request payload", Details: err.Error()})
		return
	}
	if req.AccessToken == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Access token is required"})
		return
	}

	user, err := h.userService.VerifySession(c.Request.Context(), req.AccessToken)
	if err != nil {
		mapServiceError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"user":  user,
		"valid": true,
	})
}
