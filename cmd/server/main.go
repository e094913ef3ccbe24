package main

import (
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	sentryfiber "github.com/getsentry/sentry-go/fiber"

	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/roadwatch/roadwatch-backend/internal/classify"
	"github.com/roadwatch/roadwatch-backend/internal/config"
	"github.com/roadwatch/roadwatch-backend/internal/database"
	"github.com/roadwatch/roadwatch-backend/internal/handlers"
	"github.com/roadwatch/roadwatch-backend/internal/logging"
	"github.com/roadwatch/roadwatch-backend/internal/middleware"
	"github.com/roadwatch/roadwatch-backend/internal/routes"
	"github.com/roadwatch/roadwatch-backend/internal/services"
	"github.com/roadwatch/roadwatch-backend/internal/storage"
)

func main() {
	// Structured logging (JSON to stdout)
	logging.Setup()

	cfg := config.Load()

	if cfg.JWTSecret == "" {
		slog.Error("JWT_SECRET environment variable is required")
		os.Exit(1)
	}

	store, pgLogHandler, cleanupDone := openStore(cfg)

	// Services
	classifier := classify.NewStatic(cfg.ClassifyDelay)
	contentFilter := services.NewContentFilter()
	reportService := services.NewReportService(store, classifier, contentFilter)
	volunteerService := services.NewVolunteerService(store, cfg)

	// Handlers
	reportHandler := handlers.NewReportHandler(reportService)
	volunteerHandler := handlers.NewVolunteerHandler(volunteerService)
	healthHandler := handlers.NewHealthHandler(store)

	// Sentry error tracking
	if dsn := os.Getenv("SENTRY_DSN"); dsn != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:              dsn,
			EnableTracing:    true,
			TracesSampleRate: 0.2,
			Environment:      os.Getenv("APP_ENV"),
		}); err != nil {
			slog.Error("sentry init failed", "error", err)
		} else {
			defer sentry.Flush(2 * time.Second)
		}
	}

	// Fiber app
	app := fiber.New(fiber.Config{
		BodyLimit:    8 * 1024 * 1024, // embedded photo payloads
		ErrorHandler: customErrorHandler,
	})

	// Sentry middleware
	app.Use(sentryfiber.New(sentryfiber.Options{
		Repanic:         true,
		WaitForDelivery: false,
	}))

	// Global middleware
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(fiberlogger.New(fiberlogger.Config{
		Format: "${time} | ${status} | ${latency} | ${ip} | ${method} | ${path}\n",
	}))
	app.Use(middleware.CORS(cfg))
	app.Use(func(c *fiber.Ctx) error {
		c.Set("X-Content-Type-Options", "nosniff")
		c.Set("X-Frame-Options", "DENY")
		return c.Next()
	})

	// Routes
	routes.Setup(app, cfg, store, reportHandler, volunteerHandler, healthHandler)

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		caps := store.Capabilities()
		slog.Info("server starting", "port", cfg.Port, "store", caps.Driver, "durable", caps.Durable)
		if err := app.Listen(":" + cfg.Port); err != nil {
			slog.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	<-quit
	slog.Info("shutting down server...")

	if cleanupDone != nil {
		close(cleanupDone)
	}
	if pgLogHandler != nil {
		pgLogHandler.Stop()
	}
	sentry.Flush(2 * time.Second)

	if err := app.Shutdown(); err != nil {
		slog.Error("server shutdown error", "error", err)
	}

	if database.DB != nil {
		if sqlDB, err := database.DB.DB(); err == nil {
			if err := sqlDB.Close(); err != nil {
				slog.Error("database close error", "error", err)
			}
		}
	}

	slog.Info("server stopped")
}

// openStore opens the configured record store. When the medium cannot be
// opened and the memory fallback is allowed, the server degrades with a
// logged warning and /api/health exposes durable=false; the degradation
// is never silent.
func openStore(cfg *config.Config) (storage.Store, *logging.PGHandler, chan struct{}) {
	switch cfg.StoreDriver {
	case "postgres":
		if err := database.Connect(cfg); err != nil {
			return fallbackStore(cfg, err)
		}
		if err := database.Migrate(); err != nil {
			slog.Error("migration failed", "error", err)
			os.Exit(1)
		}

		// PostgreSQL log handler (ERROR+ async batch) and 30-day retention
		pgLogHandler := logging.NewPGHandler(database.DB)
		slog.SetDefault(slog.New(logging.NewMultiHandler(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}),
			pgLogHandler,
		)))
		cleanupDone := make(chan struct{})
		logging.StartCleanup(database.DB, cleanupDone)

		return storage.NewGormStore(database.DB), pgLogHandler, cleanupDone

	case "file":
		store, err := storage.NewFileStore(cfg.DataDir)
		if err != nil {
			return fallbackStore(cfg, err)
		}
		return store, nil, nil

	case "memory":
		return storage.NewMemoryStore(), nil, nil

	default:
		slog.Error("unknown STORE_DRIVER", "driver", cfg.StoreDriver)
		os.Exit(1)
		return nil, nil, nil
	}
}

func fallbackStore(cfg *config.Config, cause error) (storage.Store, *logging.PGHandler, chan struct{}) {
	if !cfg.StoreFallbackMemory {
		slog.Error("store unavailable and memory fallback disabled", "driver", cfg.StoreDriver, "error", cause)
		os.Exit(1)
	}
	slog.Warn("store unavailable, degrading to in-memory store", "driver", cfg.StoreDriver, "error", cause)
	return storage.NewMemoryStore(), nil, nil
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal server error"
	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		message = e.Message
	}

	// Only expose error details for client errors (4xx), not server errors (5xx)
	if code >= 500 {
		slog.Error("unhandled server error", "method", c.Method(), "path", c.Path(), "error", err.Error())
		message = "Internal server error"
	}

	return c.Status(code).JSON(fiber.Map{
		"error":   true,
		"message": message,
	})
}
