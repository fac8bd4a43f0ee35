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
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/dsa-study/backend/internal/data"
	"github.com/dsa-study/backend/internal/handler"
	"github.com/dsa-study/backend/internal/infrastructure"
	"github.com/dsa-study/backend/internal/middleware"
	"github.com/dsa-study/backend/internal/repository"
	"github.com/dsa-study/backend/internal/service"
)

func main() {
	// Load configuration
	config := infrastructure.LoadConfig()

	// Initialize logger
	logger, err := infrastructure.NewLogger(config.Server.Environment, config.Telemetry.ServiceName, config.Log)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer infrastructure.SyncLogger(logger)

	logger.Info("Starting DSA Study API",
		zap.String("db_driver", config.Database.Driver),
		zap.Int("port", config.Server.Port),
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize telemetry
	telemetry, err := infrastructure.NewTelemetry(ctx, &config.Telemetry, config.Server.Environment, logger)
	if err != nil {
		logger.Error("Failed to initialize telemetry", zap.Error(err))
		os.Exit(1)
	}
	defer func() {
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()
		telemetry.Shutdown(shutdownCtx)
	}()

	metrics, err := telemetry.CreateMetrics()
	if err != nil {
		logger.Error("Failed to create metrics", zap.Error(err))
		os.Exit(1)
	}

	// Initialize database
	database, err := infrastructure.NewDatabase(&config.Database, logger)
	if err != nil {
		logger.Error("Failed to connect to database", zap.Error(err))
		os.Exit(1)
	}
	defer database.Close()

	if err := database.AutoMigrate(); err != nil {
		logger.Error("Failed to run migrations", zap.Error(err))
		os.Exit(1)
	}

	// Initialize repositories
	problemRepo := repository.NewProblemRepository(database.DB, database.QueryTimeout())
	progressRepo := repository.NewProgressRepository(database.DB, database.QueryTimeout())
	lessonRepo := repository.NewLessonCompletionRepository(database.DB, database.QueryTimeout())
	resourceRepo := repository.NewResourceRepository(database.DB, database.QueryTimeout())
	noteRepo := repository.NewNoteRepository(database.DB, database.QueryTimeout())

	// Initialize services
	problemService := service.NewProblemService(problemRepo, telemetry.Tracer, logger)
	progressService := service.NewProgressService(progressRepo, telemetry.Tracer, metrics, logger)
	lessonService := service.NewLessonService(lessonRepo, telemetry.Tracer, metrics, logger)
	libraryService := service.NewLibraryService(resourceRepo, noteRepo, telemetry.Tracer, logger)
	importer := data.NewImporter(problemRepo, telemetry.Tracer, metrics, logger)

	// Startup import never blocks the server from coming up
	if config.Catalog.SeedOnStartup {
		if result, err := importer.SeedFromFile(ctx, config.Catalog.Path); err == nil {
			logger.Info("Lesson exercises imported", zap.Int("imported", result.Imported))
		}
	}
	if config.Catalog.Watch {
		watcher := data.NewCatalogWatcher(importer, config.Catalog.Path, config.Catalog.WatchDebounce, logger)
		go func() {
			if err := watcher.Run(ctx); err != nil {
				logger.Warn("Lesson catalog watcher stopped", zap.Error(err))
			}
		}()
	}

	// Setup Gin router
	if config.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	router.Use(middleware.RecoveryMiddleware(logger))
	router.Use(middleware.LoggingMiddleware(logger, "/health"))
	router.Use(middleware.CORSMiddleware(middleware.NewCORSConfig(config.CORS.AllowOrigins)))
	router.Use(middleware.TracingMiddleware(telemetry.Tracer))
	router.Use(middleware.MetricsMiddleware(metrics, "/health", config.Telemetry.MetricsEndpoint))

	router.GET("/health", func(c *gin.Context) {
		if err := database.HealthCheck(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status": "unhealthy",
				"error":  "database connection failed",
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"version": config.Telemetry.ServiceVersion,
		})
	})

	router.GET(config.Telemetry.MetricsEndpoint, gin.WrapH(promhttp.Handler()))

	handler.RegisterRoutes(router.Group("/api"), handler.Handlers{
		Problems: handler.NewProblemHandler(problemService),
		Progress: handler.NewProgressHandler(progressService),
		Lessons:  handler.NewLessonHandler(lessonService, importer),
		Library:  handler.NewLibraryHandler(libraryService),
	})

	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", config.Server.Host, config.Server.Port),
		Handler:      router,
		ReadTimeout:  config.Server.ReadTimeout,
		WriteTimeout: config.Server.WriteTimeout,
	}

	go func() {
		logger.Info("HTTP server starting",
			zap.String("address", server.Addr),
		)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exited")
}
