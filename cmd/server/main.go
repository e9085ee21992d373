package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/AppFusion-boop/StructoUrlShortener/internal/config"
	"github.com/AppFusion-boop/StructoUrlShortener/internal/handlers"
	"github.com/AppFusion-boop/StructoUrlShortener/internal/models"
	"github.com/AppFusion-boop/StructoUrlShortener/internal/repository"
	"github.com/AppFusion-boop/StructoUrlShortener/internal/services"

	"github.com/gin-gonic/gin"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := Run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func Run(ctx context.Context) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	var handler slog.Handler
	if cfg.AppEnv == "production" {
		handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})
	} else {
		handler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug})
	}
	logger := slog.New(handler)
	slog.SetDefault(logger)

	db, err := repository.InitDB(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}

	// The redirect cache is optional; redirects fall back to the DB.
	rdb, err := repository.InitRedis(cfg.RedisURL)
	if err != nil {
		logger.Warn("Failed to connect to Redis, running without redirect cache", "error", err)
		rdb = nil
	}

	if strings.HasPrefix(cfg.DatabaseURL, "postgres") {
		logger.Info("Running database migrations...")
		if err := repository.RunMigrations(cfg.DatabaseURL, ""); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
	} else {
		if err := db.AutoMigrate(&models.User{}, &models.ShortLink{}, &models.ClickEvent{}, &models.AuditLog{}); err != nil {
			return fmt.Errorf("auto-migration failed: %w", err)
		}
	}

	links := repository.NewLinkRepository(db)
	clicks := repository.NewClickRepository(db)

	auditService := services.NewAuditService(db, logger)
	geoIPService := services.NewGeoIPService(logger)
	tracker := services.NewClickTracker(clicks, links, geoIPService, logger)
	shortenerService := services.NewShortenerService(links, auditService, logger, cfg.CodeLength, cfg.MaxRetries)
	analyticsService := services.NewAnalyticsService(clicks)
	qrService := services.NewQRService()
	rateLimiter := services.NewIPRateLimiter(5, 10, logger)

	h := handlers.NewHandler(cfg, logger, db, rdb, links, shortenerService, tracker, analyticsService, auditService, qrService)

	if cfg.AppEnv == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := h.SetupRouter(rateLimiter)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	// Workers outlive the listener slightly so in-flight clicks drain.
	workerCtx, workerCancel := context.WithCancel(context.Background())
	defer workerCancel()

	go auditService.Start(workerCtx)
	go tracker.Start(workerCtx)
	geoIPService.Open(cfg.GeoIPDBPath)
	defer geoIPService.Close()
	rateLimiter.StartCleanup(workerCtx, 10*time.Minute)

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("Starting server", "port", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case err := <-serverErr:
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
		logger.Info("Shutting down server...")
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server forced to shutdown", "error", err)
	}

	workerCancel()
	time.Sleep(100 * time.Millisecond)

	logger.Info("Server exiting")
	return nil
}
