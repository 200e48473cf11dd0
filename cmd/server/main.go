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

	"github.com/joho/godotenv"

	"github.com/recallio/pace-api/internal/api"
	"github.com/recallio/pace-api/internal/config"
	"github.com/recallio/pace-api/internal/ml"
	"github.com/recallio/pace-api/internal/planner"
	"github.com/recallio/pace-api/internal/platform/logger"
	"github.com/recallio/pace-api/internal/platform/postgres"
	"github.com/recallio/pace-api/internal/scheduler"
	planservice "github.com/recallio/pace-api/internal/service/plan"
	reviewservice "github.com/recallio/pace-api/internal/service/review"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "server failed: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Missing .env is fine; real deployments use environment variables.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	log := logger.Setup(cfg.Server)
	log.Info("configuration loaded",
		slog.Int("port", cfg.Server.Port),
		slog.String("log_level", cfg.Server.LogLevel),
		slog.Bool("retrain_enabled", cfg.Retrain.Enabled))

	db, err := setupDatabase(cfg, log)
	if err != nil {
		return err
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("failed to close database", slog.String("error", err.Error()))
		}
	}()

	if err := runMigrations(db, log); err != nil {
		return err
	}

	// Stores.
	profileStore := postgres.NewPostgresProfileStore(db, log)
	stateStore := postgres.NewPostgresStateStore(db, log)
	reviewLogStore := postgres.NewPostgresReviewLogStore(db, log)
	analyticsStore := postgres.NewPostgresAnalyticsStore(db, log)
	sampleStore := postgres.NewPostgresSampleStore(db, log)

	// Estimation stack. The learned estimator serves predictions only after
	// the retrain job has installed a validated model; until then every
	// estimate takes the deterministic path.
	registry := ml.NewRegistry()
	estimator := ml.NewLearned(registry, log)
	trainer := ml.NewTrainer(sampleStore, registry, log)

	retrainScheduler := startRetrainJob(cfg.Retrain, trainer, log)
	if retrainScheduler != nil {
		defer retrainScheduler.Stop()
	}

	// Services.
	reviewSvc := reviewservice.NewService(
		db, stateStore, reviewLogStore, profileStore, analyticsStore,
		sampleStore, estimator, log)

	assembler := planner.NewAssembler(scheduler.NewClusterer(), scheduler.NewOptimizer(), log)
	planSvc := planservice.NewService(
		assembler, stateStore, profileStore, analyticsStore, reviewLogStore,
		time.Duration(cfg.Plan.TimeoutSeconds)*time.Second, log)

	// HTTP surface.
	router := setupRouter(
		api.NewReviewHandler(reviewSvc, log),
		api.NewPlanHandler(planSvc, log))

	return serve(cfg, router, log)
}

// serve runs the HTTP server until SIGINT or SIGTERM, then shuts it down
// gracefully within the configured timeout.
func serve(cfg *config.Config, handler http.Handler, log *slog.Logger) error {
	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("starting server", slog.Int("port", cfg.Server.Port))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	shutdownCh := make(chan os.Signal, 1)
	signal.Notify(shutdownCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	case sig := <-shutdownCh:
		log.Info("shutdown signal received", slog.String("signal", sig.String()))
	}

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeoutSeconds)*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	log.Info("server shutdown completed")
	return nil
}
