package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/caarlos0/env"
	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/sparrow-trajon/order-processing-system/cmd"
	httpserver "github.com/sparrow-trajon/order-processing-system/internal/adapters/in/http"
	"github.com/sparrow-trajon/order-processing-system/internal/adapters/out/eventlog"
	"github.com/sparrow-trajon/order-processing-system/internal/adapters/out/postgres"
	"github.com/sparrow-trajon/order-processing-system/internal/adapters/out/rabbitmq"
	"github.com/sparrow-trajon/order-processing-system/internal/core/ports"
	"github.com/sparrow-trajon/order-processing-system/internal/jobs"
	"github.com/sparrow-trajon/order-processing-system/internal/pkg/metrics"
	"github.com/sparrow-trajon/order-processing-system/internal/seed"
)

func main() {
	// Best effort: a missing .env file just means plain environment variables.
	_ = godotenv.Load(".env")

	config := cmd.Config{}
	if err := env.Parse(&config); err != nil {
		log.Fatalf("Failed to parse configuration: %v", err)
	}

	logger := newLogger(config.LogLevel)
	ctx := context.Background()

	gormDB, err := gorm.Open(gormpostgres.Open(config.DSN()), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := postgres.Migrate(gormDB); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	publisher, closePublisher := newPublisher(config, logger)
	defer closePublisher()

	root, err := cmd.NewCompositionRoot(config, gormDB, publisher, logger)
	if err != nil {
		log.Fatalf("Failed to build composition root: %v", err)
	}

	if err := seed.Run(ctx, root.UnitOfWorkFactory(), logger); err != nil {
		log.Fatalf("Failed to seed workflow catalog: %v", err)
	}

	jobManager := jobs.NewJobManager(
		root.CreateAdvanceOrdersCommandHandler(),
		root.AdvanceRouting(),
		metrics.NewJobMetrics(),
		config.AdvanceInterval,
		logger,
	)
	if err := jobManager.StartAll(); err != nil {
		log.Fatalf("Failed to start jobs: %v", err)
	}
	defer jobManager.StopAll()

	e := newEcho(root)

	go func() {
		if err := e.Start(fmt.Sprintf("0.0.0.0:%s", config.HTTPPort)); err != nil {
			logger.Info("HTTP server stopped", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP shutdown failed", "error", err)
	}
}

func newLogger(level string) *slog.Logger {
	var logLevel slog.Level
	switch strings.ToLower(level) {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel}))
}

// newPublisher picks the event transport: RabbitMQ when configured, the
// structured log otherwise.
func newPublisher(config cmd.Config, logger *slog.Logger) (ports.EventPublisher, func()) {
	if config.RabbitURL == "" {
		return eventlog.NewPublisher(logger), func() {}
	}

	publisher, err := rabbitmq.NewPublisher(config.RabbitURL, logger)
	if err != nil {
		log.Fatalf("Failed to connect to RabbitMQ: %v", err)
	}
	return publisher, func() {
		if err := publisher.Close(); err != nil {
			logger.Error("Failed to close RabbitMQ connection", "error", err)
		}
	}
}

func newEcho(root *cmd.CompositionRoot) *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	serverMetrics := metrics.NewServerMetrics()
	e.Use(httpserver.MetricsMiddleware(serverMetrics))

	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})
	e.GET("/metrics", echo.WrapHandler(metrics.Handler()))

	server := httpserver.NewServer(
		root.CreateCreateOrderCommandHandler(),
		root.CreateChangeOrderStatusCommandHandler(),
		root.CreateCancelOrderCommandHandler(),
		root.CreateAddOrderItemCommandHandler(),
		root.CreateRemoveOrderItemCommandHandler(),
		root.CreateRecordPaymentCommandHandler(),
		root.CreateCreateStatusCommandHandler(),
		root.CreateUpdateStatusCommandHandler(),
		root.CreateCreateTransitionCommandHandler(),
		root.CreateGetOrderQueryHandler(),
		root.CreateGetOrdersByStatusQueryHandler(),
		root.CreateGetAllStatusesQueryHandler(),
		root.CreateGetTransitionsFromQueryHandler(),
	)
	server.RegisterRoutes(e)

	return e
}
