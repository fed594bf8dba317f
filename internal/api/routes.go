package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/panwartanish/SubSentry/internal/config"
	"github.com/panwartanish/SubSentry/internal/core"
	"github.com/panwartanish/SubSentry/internal/middleware"
)

// SetupRoutes configures all application routes. Global middleware
// (logging, recovery, CORS) is applied to the router before this is called,
// typically in main.
func SetupRoutes(
	router *gin.Engine,
	appConfig *config.Config,
	logger *zap.Logger,
	userService core.UserService,
	subscriptionService core.SubscriptionService,
	analyticsService core.AnalyticsService,
) {
	authHandler := NewAuthHandler(userService, logger)
	userHandler := NewUserHandler(userService, logger)
	subscriptionHandler := NewSubscriptionHandler(subscriptionService, logger)
	analyticsHandler := NewAnalyticsHandler(analyticsService, logger)
	exportHandler := NewExportHandler(subscriptionService, logger)

	healthHandler := func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "SubSentry API is running"})
	}
	router.GET("/health", healthHandler)

	// Every route under the prefix requires the fixed public client key.
	apiV1 := router.Group("/api/v1", middleware.ClientKey(appConfig.PublicClientKey))
	{
		apiV1.GET("/health", healthHandler)

		authGroup := apiV1.Group("/auth")
		{
			authGroup.POST("/signup", authHandler.Signup)
			authGroup.POST("/login", authHandler.Login)
			authGroup.POST("/google", authHandler.GoogleLogin)
			authGroup.POST("/verify", authHandler.Verify)
		}

		userGroup := apiV1.Group("/user")
		{
			userGroup.GET("/:email", userHandler.GetUser)
			userGroup.PUT("/:email/preferences", userHandler.UpdatePreferences)
		}

		subscriptionGroup := apiV1.Group("/subscriptions")
		{
			subscriptionGroup.GET("/:email", subscriptionHandler.List)
			subscriptionGroup.POST("/:email", subscriptionHandler.Add)
			subscriptionGroup.PUT("/:email/:id", subscriptionHandler.Update)
			subscriptionGroup.DELETE("/:email/:id", subscriptionHandler.Delete)
			subscriptionGroup.DELETE("/:email", subscriptionHandler.Clear)
		}

		apiV1.GET("/analytics/:email", analyticsHandler.Summary)
		apiV1.GET("/export/:email", exportHandler.Export)
	}

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "Route not found"})
	})

	logger.Info("API routes configured", zap.String("prefix", "/api/v1"))
}
