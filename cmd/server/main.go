package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	sentryfiber "github.com/getsentry/sentry-go/fiber"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"

	"github.com/ahmetcoskunkizilkaya/job-portal/internal/cache"
	"github.com/ahmetcoskunkizilkaya/job-portal/internal/config"
	"github.com/ahmetcoskunkizilkaya/job-portal/internal/database"
	"github.com/ahmetcoskunkizilkaya/job-portal/internal/handlers"
	"github.com/ahmetcoskunkizilkaya/job-portal/internal/listing"
	"github.com/ahmetcoskunkizilkaya/job-portal/internal/logging"
	"github.com/ahmetcoskunkizilkaya/job-portal/internal/routes"
	"github.com/ahmetcoskunkizilkaya/job-portal/internal/services"
	"github.com/ahmetcoskunkizilkaya/job-portal/internal/uploads"
)

func main() {
	// Structured logging (JSON to stdout)
	logging.Setup()

	cfg := config.Load()

	if cfg.JWTSecret == "" {
		slog.Error("JWT_SECRET environment variable is required")
		os.Exit(1)
	}
	if cfg.DBPassword == "" {
		slog.Error("DB_PASSWORD environment variable is required")
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Database
	if err := database.Connect(cfg); err != nil {
		slog.Error("database connection failed", "error", err)
		os.Exit(1)
	}
	if err := database.Migrate(database.DB); err != nil {
		slog.Error("migration failed", "error", err)
		os.Exit(1)
	}

	// PostgreSQL log handler (ERROR+ async batch)
	pgLogHandler := logging.NewPGHandler(database.DB)
	slog.SetDefault(slog.New(logging.NewMultiHandler(
		logging.NewJSONHandler(os.Stdout),
		pgLogHandler,
	)))

	// Filter options cache (optional)
	var rdb *redis.Client
	if cfg.RedisURL != "" {
		client, err := cache.NewRedisClient(ctx, cfg.RedisURL)
		if err != nil {
			slog.Error("redis unavailable, filter options will be read from the database", "error", err)
		} else {
			rdb = client
			slog.Info("redis connected")
		}
	}
	options := cache.NewOptions(database.DB, rdb, cfg.CacheTTL)

	// Services
	store := uploads.NewDiskStore(cfg.MediaRoot)
	accountService := services.NewAccountService(database.DB, cfg)
	profileService := services.NewProfileService(database.DB, store)
	toggleService := services.NewToggleService(database.DB)
	catalogService := services.NewCatalogService(database.DB, options, store)
	listingService := listing.NewService(database.DB)

	// Housekeeping (log retention, dead sessions)
	maintenance := services.NewMaintenance(database.DB, accountService, cfg.LogRetention, cfg.MaintenanceCron)
	if err := maintenance.Start(ctx); err != nil {
		slog.Error("maintenance scheduling failed", "error", err)
		os.Exit(1)
	}

	// Sentry error tracking
	var first []fiber.Handler
	if dsn := os.Getenv("SENTRY_DSN"); dsn != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:              dsn,
			EnableTracing:    true,
			TracesSampleRate: 0.2,
			Environment:      cfg.AppEnv,
		}); err != nil {
			slog.Error("sentry init failed", "error", err)
		} else {
			defer sentry.Flush(2 * time.Second)
			first = append(first, sentryfiber.New(sentryfiber.Options{
				Repanic:         true,
				WaitForDelivery: false,
			}))
		}
	}

	app := routes.NewApp(cfg, first...)
	routes.Setup(app, cfg, accountService, routes.Handlers{
		Auth:    handlers.NewAuthHandler(accountService, cfg),
		Profile: handlers.NewProfileHandler(profileService),
		Listing: handlers.NewListingHandler(listingService, options, toggleService),
		Admin:   handlers.NewAdminHandler(catalogService),
		Health:  handlers.NewHealthHandler(database.DB, rdb),
	})

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("server starting", "port", cfg.Port)
		if err := app.Listen(":" + cfg.Port); err != nil {
			slog.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	<-quit
	slog.Info("shutting down server...")

	if err := app.Shutdown(); err != nil {
		slog.Error("server shutdown error", "error", err)
	}

	cancel()
	maintenance.Stop()
	pgLogHandler.Stop()
	sentry.Flush(2 * time.Second)

	if rdb != nil {
		if err := rdb.Close(); err != nil {
			slog.Error("redis close error", "error", err)
		}
	}

	// Close database connections
	if sqlDB, err := database.DB.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			slog.Error("database close error", "error", err)
		}
	}

	slog.Info("server stopped")
}
