package main

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/recallio/pace-api/internal/config"
	"github.com/recallio/pace-api/internal/ml"
)

// startRetrainJob schedules the periodic interval-model retraining and
// returns the scheduler so the caller can stop it on shutdown. Returns nil
// when the job is disabled.
func startRetrainJob(cfg config.RetrainConfig, trainer *ml.Trainer, logger *slog.Logger) *gocron.Scheduler {
	if !cfg.Enabled {
		logger.Info("interval model retraining disabled, running deterministic only")
		return nil
	}

	jobLogger := logger.With(slog.String("component", "retrain_job"))
	s := gocron.NewScheduler(time.UTC)

	_, err := s.Every(cfg.IntervalMinutes).Minutes().Do(func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()

		if _, err := trainer.Retrain(ctx); err != nil {
			if errors.Is(err, ml.ErrInsufficientSamples) {
				return
			}
			jobLogger.Error("interval model retraining failed", slog.String("error", err.Error()))
		}
	})
	if err != nil {
		jobLogger.Error("failed to schedule retrain job", slog.String("error", err.Error()))
		return nil
	}

	s.StartAsync()
	jobLogger.Info("retrain job scheduled", slog.Int("interval_minutes", cfg.IntervalMinutes))
	return s
}
