// @title Pricing Service API
// @version 1.0
// @description Import and export of rental prices with per-row reconciliation reports.
// @BasePath /api
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

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/KGG-Code/mybooking-prueba-tecnica/config"
	_ "github.com/KGG-Code/mybooking-prueba-tecnica/docs"
	"github.com/KGG-Code/mybooking-prueba-tecnica/internal/database"
	"github.com/KGG-Code/mybooking-prueba-tecnica/internal/handlers"
	"github.com/KGG-Code/mybooking-prueba-tecnica/internal/jobs"
	"github.com/KGG-Code/mybooking-prueba-tecnica/internal/logging"
	"github.com/KGG-Code/mybooking-prueba-tecnica/internal/middleware"
	"github.com/KGG-Code/mybooking-prueba-tecnica/internal/storage"
	"github.com/KGG-Code/mybooking-prueba-tecnica/internal/telemetry"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}
	logger := logging.New(cfg.Logging, cfg.Telemetry.ServiceName)

	logger.Info().Msg("Starting pricing service")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownTelemetry, err := telemetry.Init(ctx, cfg.Telemetry)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to initialize telemetry")
	}

	dbURL := config.GetDatabaseURL()
	if dbURL == "" {
		logger.Fatal().Msg("DATABASE_URL not set")
	}

	if err := database.Connect(ctx, dbURL, cfg.Database); err != nil {
		logger.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer database.Close()

	logger.Info().Msg("Database connected")

	pool := database.Pool()
	if err := database.Migrate(ctx, pool); err != nil {
		logger.Fatal().Err(err).Msg("Failed to apply schema")
	}

	runs := database.NewPostgresImportRunStore(pool)
	if n, err := runs.MarkInterruptedRuns(ctx); err != nil {
		logger.Warn().Err(err).Msg("Failed to handle interrupted runs")
	} else if n > 0 {
		logger.Info().Int64("count", n).Msg("Marked interrupted import runs")
	}

	var (
		store   storage.Storage
		archive *storage.Archive
	)
	if cfg.Import.ArchiveUploads {
		store, err = storage.New(cfg.Storage.Type, cfg.Storage.BasePath)
		if err != nil {
			logger.Fatal().Err(err).Msg("Failed to initialize storage")
		}
		archive = storage.NewArchive(store)
	}

	cleanup := jobs.NewCleanupManager(cfg.Retention, runs, store, logger)
	cleanup.Start(ctx)

	refs := database.NewPostgresReferenceStore(pool)
	pricing := handlers.NewPricingHandler(handlers.PricingDeps{
		References:     refs,
		Prices:         database.NewPostgresPriceRepository(pool),
		Runs:           runs,
		Export:         refs,
		Archive:        archive,
		NoSeasonLabel:  cfg.Import.NoSeasonLabel,
		MaxUploadBytes: cfg.Import.MaxUploadBytes,
		Logger:         logger,
	})

	router := newRouter(ctx, cfg, logger, pricing)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		logger.Info().Str("addr", addr).Msg("Server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	<-ctx.Done()
	logger.Info().Msg("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("Server forced to shutdown")
	}
	cleanup.Stop()
	if err := shutdownTelemetry(shutdownCtx); err != nil {
		logger.Warn().Err(err).Msg("Failed to flush telemetry")
	}

	logger.Info().Msg("Server exited")
}

func newRouter(ctx context.Context, cfg *config.Config, logger zerolog.Logger, pricing *handlers.PricingHandler) *gin.Engine {
	if cfg.Logging.Level == "debug" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger(logger))

	router.GET("/health", handlers.HealthCheck(database.Status, database.Stats))
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	handlers.RegisterDocs(router)

	api := router.Group("/api")
	if cfg.RateLimit.Enabled {
		api.Use(middleware.RateLimit(ctx, middleware.RateLimiterConfig{
			RequestsPerSecond: float64(cfg.RateLimit.RequestsPerSecond),
			BurstSize:         cfg.RateLimit.Burst,
		}))
	}
	pricing.Register(api, cfg.Import.MaxConcurrentRuns)

	return router
}
