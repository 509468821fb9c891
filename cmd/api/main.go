package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/Knighty7-ciper/Landlord-Management-System--LMS/internal/app"
	"github.com/Knighty7-ciper/Landlord-Management-System--LMS/internal/config"
	"github.com/Knighty7-ciper/Landlord-Management-System--LMS/internal/handlers"
	"github.com/Knighty7-ciper/Landlord-Management-System--LMS/internal/logging"
)

func main() {
	// Load configuration
	configPath := getEnv("CONFIG_PATH", "config/catalog.yaml")
	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config from %s: %v\n", configPath, err)
		os.Exit(1)
	}

	logger := logging.New(logging.Config{Level: cfg.Logging.Level, Format: cfg.Logging.Format})
	logger.Info("Loaded configuration", "path", configPath)

	a, err := app.New(cfg, logger)
	if err != nil {
		logger.Error("Failed to initialize", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := a.Close(); err != nil {
			logger.Warn("Shutdown cleanup failed", "error", err)
		}
	}()

	if err := handlers.RegisterValidators(); err != nil {
		logger.Error("Failed to register validators", "error", err)
		os.Exit(1)
	}

	if err := a.Scheduler.Start(); err != nil {
		logger.Warn("Failed to start scheduler", "error", err)
	}

	// Setup Gin router
	if cfg.Logging.Level != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	r.MaxMultipartMemory = cfg.Images.MaxBytes

	// CORS configuration
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.Server.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE"},
		AllowHeaders:     []string{"Origin", "Content-Type", handlers.CallerHeader, handlers.AdminTokenHeader, handlers.TraceHeader},
		ExposeHeaders:    []string{handlers.TraceHeader, "Retry-After"},
		AllowCredentials: true,
	}))

	r.Static("/media", cfg.Images.RootDir)

	routes := handlers.Routes{
		Properties:  handlers.NewPropertyHandler(a.Catalog),
		Admin:       handlers.NewAdminHandler(a.Catalog, a.Cleanup, a.Scheduler, a.Limiter, a.CleanupDefaults()),
		AdminAccess: cfg.Admin,
		Limiter:     a.Limiter,
		DB:          a.DB,
		Logger:      logger,
		LogRequests: cfg.Logging.LogRequests,
	}
	if a.Search != nil {
		routes.Search = a.Search
	}
	handlers.Register(r, routes)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("Server starting", "port", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Server failed", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownGrace())
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Forced shutdown", "error", err)
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
