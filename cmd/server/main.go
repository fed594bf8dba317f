package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/panwartanish/SubSentry/internal/api"
	"github.com/panwartanish/SubSentry/internal/auth"
	"github.com/panwartanish/SubSentry/internal/config"
	"github.com/panwartanish/SubSentry/internal/core"
	"github.com/panwartanish/SubSentry/internal/db"
	"github.com/panwartanish/SubSentry/internal/middleware"
	"github.com/panwartanish/SubSentry/pkg/cache"
	"github.com/panwartanish/SubSentry/pkg/mailer"
	"github.com/panwartanish/SubSentry/pkg/messagequeue"
)

func main() {
	// Load .env file. In production, environment variables are set directly.
	if os.Getenv("GIN_MODE") != "release" {
		if err := godotenv.Load(); err != nil {
			log.Println("Warning: Error loading .env file:", err)
		}
	}

	zapLogger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Failed to initialize Zap logger: %v", err)
	}
	defer zapLogger.Sync()

	appConfig, err := config.LoadConfig()
	if err != nil {
		zapLogger.Fatal("Failed to load application configuration", zap.Error(err))
	}

	// All shared clients are constructed here, once, and passed by
	// reference. Nothing below lazily re-initializes a connection.
	initCtx, cancelInit := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancelInit()
	clients, err := db.InitFirebase(initCtx, appConfig)
	if err != nil {
		zapLogger.Fatal("Failed to initialize Firebase Admin SDK", zap.Error(err))
	}
	defer clients.Close()
	zapLogger.Info("Firebase Admin SDK (Firestore, Auth) initialized")

	kvStore := db.NewFirestoreKeyValueStore(clients.Firestore)
	userRepo := db.NewUserRepository(kvStore)
	subscriptionRepo := db.NewSubscriptionRepository(kvStore)

	authGateway := auth.NewFirebaseGateway(clients.Auth, appConfig.FirebaseWebAPIKey)

	// Optional infrastructure: each piece is enabled only when configured,
	// and the services accept nil for the rest.
	var analyticsCache cache.Cache
	if appConfig.RedisAddress != "" {
		analyticsCache, err = cache.NewRedisCache(cache.NewRedisCacheConfig{
			Address:  appConfig.RedisAddress,
			Password: appConfig.RedisPassword,
			DB:       appConfig.RedisDB,
		})
		if err != nil {
			zapLogger.Fatal("Failed to connect to Redis", zap.Error(err))
		}
	}

	var events messagequeue.MessageQueue
	if appConfig.RabbitMQURL != "" {
		events, err = messagequeue.NewRabbitMQService(messagequeue.NewRabbitMQServiceConfig{URL: appConfig.RabbitMQURL})
		if err != nil {
			zapLogger.Fatal("Failed to connect to RabbitMQ", zap.Error(err))
		}
		defer events.Close()
	}

	var welcomeMailer mailer.Mailer
	if appConfig.SMTPHost != "" {
		welcomeMailer = mailer.NewSMTPMailer(
			appConfig.SMTPHost, appConfig.SMTPPort,
			appConfig.SMTPUser, appConfig.SMTPPass,
			appConfig.MailSender,
		)
	}

	userService := core.NewUserService(userRepo, authGateway, analyticsCache, welcomeMailer, zapLogger)
	subscriptionService := core.NewSubscriptionService(subscriptionRepo, analyticsCache, events, appConfig.AlertQueueName, zapLogger)
	analyticsService := core.NewAnalyticsService(subscriptionRepo, userRepo, analyticsCache, zapLogger)
	zapLogger.Info("Core services initialized")

	if strings.ToLower(appConfig.GinMode) == "release" {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}
	router := gin.New()
	router.Use(middleware.RequestLogger(zapLogger))
	router.Use(middleware.RecoveryMiddleware(zapLogger))
	router.Use(middleware.CORSMiddleware(appConfig.ClientURL))

	api.SetupRoutes(router, appConfig, zapLogger, userService, subscriptionService, analyticsService)

	httpServer := &http.Server{
		Addr:    fmt.Sprintf(":%s", appConfig.Port),
		Handler: router,
	}

	zapLogger.Info("Starting HTTP server", zap.String("address", httpServer.Addr), zap.String("ginMode", gin.Mode()))
	go func() {
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zapLogger.Fatal("Failed to start HTTP server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	zapLogger.Info("Received shutdown signal", zap.String("signal", sig.String()))

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShutdown()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		zapLogger.Fatal("Server forced to shutdown", zap.Error(err))
	}

	zapLogger.Info("Server exiting gracefully")
}
