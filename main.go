package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/saagar210/LegalDocsReview/config"
	"github.com/saagar210/LegalDocsReview/handler"
	"github.com/saagar210/LegalDocsReview/middleware"
	"github.com/saagar210/LegalDocsReview/pkg/logger"
	"github.com/saagar210/LegalDocsReview/service"
)

func main() {
	// Load configuration
	cfg, err := config.Load("config.yaml")
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// Initialize logger
	logger.Init(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
	})

	slog.Info("configuration loaded successfully")

	// Initialize services
	registry, err := service.NewRegistry(&cfg.Database)
	if err != nil {
		slog.Error("failed to open registry", "error", err)
		os.Exit(1)
	}

	storageSvc, err := service.NewStorageService(&cfg.Storage)
	if err != nil {
		slog.Error("failed to initialize storage service", "error", err)
		os.Exit(1)
	}
	if err := storageSvc.EnsureBucket(context.Background()); err != nil {
		slog.Error("failed to ensure storage bucket", "error", err)
		os.Exit(1)
	}

	extractorSvc := service.NewExtractorService(&cfg.Extractor)

	newEngine := func(ctx context.Context) (service.Engine, error) {
		return service.BuildEngine(ctx, registry, &cfg.Engine)
	}

	docStore := service.NewDocumentStore(registry)
	documentSvc := service.NewDocumentService(registry, storageSvc, extractorSvc, docStore)
	analyzer := service.NewAnalyzer(registry, newEngine)
	comparisonSvc := service.NewComparisonService(registry, newEngine)
	reportSvc := service.NewReportService(registry, newEngine, cfg.Storage.ReportsDir)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(cfg)
	documentHandler := handler.NewDocumentHandler(documentSvc, docStore, registry)
	analysisHandler := handler.NewAnalysisHandler(analyzer, registry)
	comparisonHandler := handler.NewComparisonHandler(comparisonSvc)
	reportHandler := handler.NewReportHandler(reportSvc)
	templateHandler := handler.NewTemplateHandler(registry)
	settingsHandler := handler.NewSettingsHandler(registry)

	// Setup Gin router
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()

	router.Use(middleware.RequestID())
	router.Use(middleware.Recovery())
	router.Use(middleware.RequestLogger())
	router.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:    []string{"Content-Type", "Authorization", "X-Request-ID"},
		ExposeHeaders:   []string{"X-Request-ID"},
		MaxAge:          12 * time.Hour,
	}))
	router.Use(middleware.RateLimit(cfg.Server.RateLimit))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "ok",
			"timestamp": time.Now().Format(time.RFC3339),
		})
	})

	// Public routes
	api := router.Group("/api")
	{
		api.POST("/auth/login", authHandler.Login)
	}

	// Protected routes
	protected := api.Group("/")
	protected.Use(middleware.AuthMiddleware(&cfg.Auth))
	{
		protected.GET("/auth/me", authHandler.GetCurrentUser)

		protected.POST("/documents/upload", documentHandler.Upload)
		protected.GET("/documents", documentHandler.List)
		protected.GET("/documents/stats", documentHandler.Stats)
		protected.GET("/documents/:id", documentHandler.Get)
		protected.GET("/documents/:id/status", documentHandler.GetStatus)
		protected.POST("/documents/:id/extract", documentHandler.Extract)
		protected.DELETE("/documents/:id", documentHandler.Delete)

		protected.POST("/documents/:id/analyze", analysisHandler.Analyze)
		protected.GET("/documents/:id/extractions", analysisHandler.ListExtractions)
		protected.GET("/extractions/:id", analysisHandler.GetExtraction)
		protected.GET("/documents/:id/risk-assessments", analysisHandler.ListRiskAssessments)
		protected.GET("/analysis/risk-distribution", analysisHandler.RiskDistribution)

		protected.POST("/comparisons", comparisonHandler.Compare)
		protected.POST("/comparisons/template", comparisonHandler.CompareWithTemplate)
		protected.GET("/documents/:id/comparisons", comparisonHandler.History)

		protected.POST("/documents/:id/reports", reportHandler.Generate)
		protected.GET("/documents/:id/reports", reportHandler.List)

		protected.POST("/templates", templateHandler.Create)
		protected.GET("/templates", templateHandler.List)
		protected.GET("/templates/:id", templateHandler.Get)
		protected.DELETE("/templates/:id", templateHandler.Delete)

		protected.GET("/settings", settingsHandler.List)
		protected.GET("/settings/:key", settingsHandler.Get)
		protected.PUT("/settings/:key", settingsHandler.Set)
		protected.DELETE("/settings/:key", settingsHandler.Delete)
	}

	// Create server
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// Start server in goroutine
	go func() {
		slog.Info("server starting", "port", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("failed to start server", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	slog.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server exited gracefully")
}
