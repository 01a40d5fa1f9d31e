package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpadapter "resume-builder/internal/adapter/http"
	repo "resume-builder/internal/adapter/repository"
	"resume-builder/internal/config"
	"resume-builder/internal/infrastructure/migration"
	"resume-builder/internal/logger"
	"resume-builder/internal/metrics"
	"resume-builder/internal/usecase"
	infra "resume-builder/pkg/infrastructure"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

func main() {
	if err := run(); err != nil {
		slog.Error("server exited", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	log := logger.SetupDefault(os.Stdout, cfg.LogLevel)

	ctx := context.Background()

	// infra setup
	pool, err := infra.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer pool.Close()

	if err := migration.RunMigrations(ctx, pool); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	if err := os.MkdirAll(cfg.UploadDir, 0o755); err != nil {
		return fmt.Errorf("create upload dir: %w", err)
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	collector := metrics.NewCollector(reg)

	renderer := collector.InstrumentRenderer(infra.NewChromedpRenderer(cfg.ChromePath, cfg.RenderTimeout))

	accounts := usecase.NewAccounts(repo.NewAccountRepo(pool))
	resumes := usecase.NewResumes(repo.NewResumeRepo(pool))
	exporter := usecase.NewExporter(renderer, cfg.MaxUploadBytes)

	h := httpadapter.NewHandler(accounts, resumes, exporter, pool, httpadapter.Settings{
		Environment: cfg.Environment,
		Development: cfg.IsDevelopment(),
		Version:     cfg.Version,
		UploadDir:   cfg.UploadDir,
	})
	app := httpadapter.NewApp(h, httpadapter.AppConfig{
		AllowedOrigins:   cfg.CORSAllowedOrigins,
		StaticDir:        cfg.StaticDir,
		RenderRatePerMin: cfg.RenderRatePerMin,
		Logger:           log,
		Metrics:          collector,
		Gatherer:         reg,
	})

	listenErr := make(chan error, 1)
	go func() {
		log.Info("server starting", "port", cfg.Port, "environment", cfg.Environment)
		listenErr <- app.Listen(":" + cfg.Port)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-listenErr:
		return fmt.Errorf("server failed: %w", err)
	case sig := <-quit:
		log.Info("shutting down", "signal", sig.String())
	}

	// the whole shutdown, listener and pool, must finish in time; the
	// listener gets a little less so the pool is closed before the deadline
	forced := time.AfterFunc(cfg.ShutdownTimeout, func() {
		log.Error("graceful shutdown timed out, forcing exit", "timeout", cfg.ShutdownTimeout)
		os.Exit(1)
	})
	defer forced.Stop()

	if err := app.ShutdownWithTimeout(cfg.DrainTimeout()); err != nil {
		log.Error("http shutdown", "error", err)
	}
	pool.Close()
	log.Info("database connection closed")
	return nil
}
