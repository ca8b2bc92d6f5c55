package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Karthik0081/smart-exam-ai-genius/internal/ai"
	"github.com/Karthik0081/smart-exam-ai-genius/internal/config"
	"github.com/Karthik0081/smart-exam-ai-genius/internal/credentials"
	"github.com/Karthik0081/smart-exam-ai-genius/internal/logger"
	"github.com/Karthik0081/smart-exam-ai-genius/internal/store"
	"github.com/Karthik0081/smart-exam-ai-genius/internal/telemetry"
	"github.com/Karthik0081/smart-exam-ai-genius/middleware"
	"github.com/Karthik0081/smart-exam-ai-genius/routes"
	"github.com/Karthik0081/smart-exam-ai-genius/services"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	logger.InitLogger(cfg)

	// Tracing is optional; the pipeline works without a collector.
	if cfg.TracingEnabled {
		shutdown, err := telemetry.InitTracer("smart-exam-ai-genius", cfg.OTLPEndpoint)
		if err != nil {
			logger.Warn("Tracing disabled", "error", err)
		} else {
			defer shutdown()
		}
	}

	metrics, err := telemetry.InitMetrics()
	if err != nil {
		logger.Warn("Metrics disabled", "error", err)
	}

	// Pick the remote provider from configured credentials. Running with
	// no provider is valid; generation then uses the local synthesizer.
	creds := credentials.NewConfigStore(cfg)
	provider, err := ai.SelectProvider(creds, cfg)
	switch {
	case errors.Is(err, ai.ErrNoProviderConfigured):
		logger.Warn("No AI provider configured, using local generation only")
	case err != nil:
		logger.Error("Failed to initialize AI provider", "error", err)
		os.Exit(1)
	default:
		logger.Info("AI provider ready", "provider", provider.Name())
		if closer, ok := provider.(interface{ Close() error }); ok {
			defer closer.Close()
		}
	}

	extractor := services.NewPDFExtractor(cfg)
	generator := services.NewGenerator(cfg, provider, metrics)
	exams := store.NewMemoryExamStore()

	// Initialize Gin router
	if cfg.GinMode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.RateLimitMiddleware(cfg))
	if cfg.TracingEnabled {
		router.Use(middleware.TracingMiddleware())
		router.Use(middleware.EnrichTrace())
	}

	// CORS configuration
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = cfg.CORSOrigins
	corsConfig.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "X-Requested-With"}
	router.Use(cors.New(corsConfig))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy", "timestamp": time.Now()})
	})

	// Setup routes
	routes.SetupGenerationRoutes(router, cfg, generator, extractor, metrics)
	routes.SetupExamRoutes(router, exams)

	// Create HTTP server
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	// Start server in a goroutine
	go func() {
		logger.Info("Server starting", "port", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("Failed to start server", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", "error", err)
		os.Exit(1)
	}

	logger.Info("Server exited")
}
