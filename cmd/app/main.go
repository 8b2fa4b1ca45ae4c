package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"docflow/cmd"
	httpapi "docflow/internal/adapters/in/http"
	"docflow/internal/adapters/out/otel"
	"docflow/internal/adapters/out/postgres"
	"docflow/internal/jobs"
	"docflow/internal/pkg/metrics"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := run(); err != nil {
		slog.Error("Application stopped", "error", err)
		os.Exit(1)
	}
}

func run() error {
	// .env is optional; real deployments set the environment directly.
	if err := godotenv.Load(".env"); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("load .env: %w", err)
	}

	configs, err := cmd.LoadConfig()
	if err != nil {
		return err
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: configs.SlogLevel()}))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := otel.Setup(ctx, otel.Config{
		ServiceName:    configs.OtelServiceName,
		ServiceVersion: "0.1.0",
		Environment:    configs.OtelEnvironment,
		Exporter:       configs.OtelExporter,
		Insecure:       configs.OtelEnvironment == "development",
	})
	if err != nil {
		return err
	}
	defer func() {
		flushCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if shutdownErr := shutdownTracing(flushCtx); shutdownErr != nil {
			logger.Error("Tracing shutdown failed", "error", shutdownErr)
		}
	}()

	gormDB, err := gorm.Open(gormpostgres.Open(configs.DSN()), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	if err = postgres.Migrate(ctx, gormDB); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	app := cmd.NewCompositionRoot(gormDB, metrics.NewMetrics(registry), logger)

	jobManager := jobs.NewJobManager(app.CreateSweepExpirationsCommandHandler(), configs.SweepSchedule, logger)
	if err = jobManager.StartAll(); err != nil {
		return err
	}
	defer jobManager.StopAll()

	return startWebServer(ctx, &app, registry, configs.HTTPPort, logger)
}

func startWebServer(
	ctx context.Context,
	app *cmd.CompositionRoot,
	registry *prometheus.Registry,
	port string,
	logger *slog.Logger,
) error {
	e := echo.New()
	e.HideBanner = true
	e.Logger.SetLevel(log.INFO)
	e.Use(middleware.Recover())

	server := httpapi.NewServer(httpapi.Handlers{
		CreateDocument:     app.CreateCreateDocumentCommandHandler(),
		ApplyTransition:    app.CreateApplyTransitionCommandHandler(),
		CreateVersion:      app.CreateCreateVersionCommandHandler(),
		ActivateVersion:    app.CreateActivateVersionCommandHandler(),
		SweepExpirations:   app.CreateSweepExpirationsCommandHandler(),
		CanTransition:      app.CreateCanTransitionQueryHandler(),
		GetLineage:         app.CreateGetLineageQueryHandler(),
		GetDocumentHistory: app.CreateGetDocumentHistoryQueryHandler(),
	}, logger)
	httpapi.RegisterRoutes(e, server, registry)

	errCh := make(chan error, 1)
	go func() {
		errCh <- e.Start(fmt.Sprintf("0.0.0.0:%s", port))
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	logger.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}
