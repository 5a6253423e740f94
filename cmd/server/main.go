package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/virtualhotel/hotel-backend/internal/config"
	"github.com/virtualhotel/hotel-backend/internal/database"
	"github.com/virtualhotel/hotel-backend/internal/handlers"
	"github.com/virtualhotel/hotel-backend/internal/middleware"
	"github.com/virtualhotel/hotel-backend/internal/router"
	"github.com/virtualhotel/hotel-backend/internal/services"
)

var buildTime = "unknown"

func main() {
	// Initialize logger
	logger := logrus.New()
	logger.SetOutput(os.Stdout)

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("Failed to load configuration: %v", err)
	}

	if cfg.Server.IsProduction() {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	logLevel, err := logrus.ParseLevel(cfg.Server.LogLevel)
	if err != nil {
		logger.Warn("Invalid log level, using INFO")
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)

	logger.Info("Starting Virtual Hotel Management API")
	logger.Infof("Version: %s, Build Time: %s", handlers.Version, buildTime)

	if cfg.Server.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}

	// Initialize database connection
	logger.Info("Connecting to database...")
	db, err := database.NewConnection(cfg.Database)
	if err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := database.Migrate(db.DB); err != nil {
		logger.Fatalf("Failed to migrate database: %v", err)
	}
	logger.Info("Database connection established, schema up to date")

	// Response cache is optional; the API works without Redis
	var cache *middleware.ResponseCache
	var rdb *redis.Client
	if cfg.Cache.Enabled {
		rdb, err = database.NewRedisClient(cfg.Cache)
		if err != nil {
			logger.WithError(err).Warn("Response cache disabled")
		} else {
			cache = middleware.NewResponseCache(rdb, cfg.Cache.TTL, cfg.Cache.Prefix, logger)
			logger.WithField("addr", cfg.Cache.RedisAddr).Info("Response cache enabled")
		}
	}

	// Services are shared by the HTTP API and the background jobs
	svc, err := router.NewServices(cfg, logger, db)
	if err != nil {
		logger.Fatalf("Failed to build services: %v", err)
	}

	var invalidator services.CacheInvalidator
	if cache != nil {
		invalidator = cache
	}
	cronService := services.NewCronService(svc.Bookings, invalidator, logger)

	engine, err := router.New(cfg, logger, db, svc, cache, cronService)
	if err != nil {
		logger.Fatalf("Failed to build router: %v", err)
	}

	if err := cronService.Start(); err != nil {
		logger.Fatalf("Failed to start cron service: %v", err)
	}

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Server.Port),
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Infof("Server starting on port %s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Errorf("Server forced to shutdown: %v", err)
	}

	cronService.Stop()

	if rdb != nil {
		if err := rdb.Close(); err != nil {
			logger.WithError(err).Warn("Failed to close redis client")
		}
	}

	logger.Info("Server exited successfully")
}
