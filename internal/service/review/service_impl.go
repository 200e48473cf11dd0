package review

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/recallio/pace-api/internal/domain"
	"github.com/recallio/pace-api/internal/domain/srs"
	"github.com/recallio/pace-api/internal/ml"
	"github.com/recallio/pace-api/internal/platform/logger"
	"github.com/recallio/pace-api/internal/scheduler"
	"github.com/recallio/pace-api/internal/store"
)

// SampleRecorder captures training data as reviews are graded. Recording is
// best-effort; a failure must never fail the review itself.
type SampleRecorder interface {
	Record(ctx context.Context, userID, topicID uuid.UUID, features ml.Features, intervalDays int, score float64) error
}

// Verify interface compliance at compile time
var _ Service = (*serviceImpl)(nil)

// serviceImpl implements the Service interface.
type serviceImpl struct {
	db        *sql.DB
	states    store.StateStore
	log       store.ReviewLogStore
	profiles  store.ProfileStore
	analytics store.AnalyticsStore
	samples   SampleRecorder
	estimator ml.Estimator
	logger    *slog.Logger
}

// NewService creates a new review Service implementation. The samples
// recorder may be nil, which disables training-data capture.
func NewService(
	db *sql.DB,
	states store.StateStore,
	reviewLog store.ReviewLogStore,
	profiles store.ProfileStore,
	analytics store.AnalyticsStore,
	samples SampleRecorder,
	estimator ml.Estimator,
	log *slog.Logger,
) Service {
	if db == nil {
		panic("db cannot be nil")
	}
	if states == nil {
		panic("states cannot be nil")
	}
	if reviewLog == nil {
		panic("reviewLog cannot be nil")
	}
	if profiles == nil {
		panic("profiles cannot be nil")
	}
	if analytics == nil {
		panic("analytics cannot be nil")
	}
	if estimator == nil {
		panic("estimator cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}

	return &serviceImpl{
		db:        db,
		states:    states,
		log:       reviewLog,
		profiles:  profiles,
		analytics: analytics,
		samples:   samples,
		estimator: estimator,
		logger:    log.With(slog.String("component", "review_service")),
	}
}

// SubmitReview implements Service.SubmitReview.
func (s *serviceImpl) SubmitReview(ctx context.Context, sub Submission) (*Outcome, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if sub.Score < 0 || sub.Score > 100 {
		return nil, domain.NewValidationError("score",
			"must be between 0 and 100", domain.ErrInvalidScore)
	}
	if !sub.Topic.Difficulty.IsValid() {
		return nil, domain.NewValidationError("difficulty",
			fmt.Sprintf("unknown difficulty %q", sub.Topic.Difficulty), domain.ErrInvalidDifficulty)
	}

	now := time.Now().UTC()
	profile := s.loadProfile(ctx, sub.UserID, log)
	analytics := s.loadAnalytics(ctx, sub.UserID, log)

	difficultyScore := sub.Topic.DifficultyScore
	if difficultyScore <= 0 {
		difficultyScore = sub.Topic.Difficulty.CognitiveLoad()
	}

	rev := srs.Review{
		UserID:          sub.UserID,
		TopicID:         sub.Topic.ID,
		Score:           sub.Score,
		Difficulty:      sub.Topic.Difficulty,
		DifficultyScore: difficultyScore,
		MemoryCoef:      profile.MemoryCoefficient,
		Now:             now,
	}

	var (
		outcome      Outcome
		features     ml.Features
		prevInterval int
	)
	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		states := s.states.WithTx(tx)
		reviewLog := s.log.WithTx(tx)

		prev, err := states.GetForUpdate(ctx, sub.UserID, sub.Topic.ID)
		if err != nil && !store.IsNotFoundError(err) {
			return fmt.Errorf("failed to get repetition state: %w", err)
		}
		if prev != nil {
			prevInterval = prev.IntervalDays
		}

		features = ml.BuildFeatures(profile, prev, analytics, sub.Score, sub.Topic.Difficulty, now)

		next, result := s.estimator.Estimate(ml.EstimateInput{
			Review:   rev,
			State:    prev,
			Features: features,
		})

		record, err := domain.NewReviewRecord(
			sub.UserID, sub.Topic.ID, sub.Score, sub.Topic.Difficulty,
			result.IntervalDays, result.EaseFactor, now,
		)
		if err != nil {
			return fmt.Errorf("failed to build review record: %w", err)
		}
		if err := reviewLog.Append(ctx, record); err != nil {
			return fmt.Errorf("failed to append review record: %w", err)
		}

		if prev == nil {
			if err := states.Create(ctx, next); err != nil {
				return fmt.Errorf("failed to create repetition state: %w", err)
			}
		} else {
			if err := states.Update(ctx, next); err != nil {
				return fmt.Errorf("failed to update repetition state: %w", err)
			}
		}

		outcome = Outcome{
			IntervalDays: result.IntervalDays,
			NextReviewAt: result.NextReviewAt,
			EaseFactor:   result.EaseFactor,
			Confidence:   result.Confidence,
		}
		return nil
	})
	if err != nil {
		log.Error("failed to submit review",
			slog.String("error", err.Error()),
			slog.String("user_id", sub.UserID.String()),
			slog.String("topic_id", sub.Topic.ID.String()))
		return nil, fmt.Errorf("failed to submit review: %w", err)
	}

	// Training-data capture happens after commit and never affects the
	// review outcome.
	if s.samples != nil && prevInterval > 0 {
		if err := s.samples.Record(ctx, sub.UserID, sub.Topic.ID, features, prevInterval, sub.Score); err != nil {
			log.Warn("failed to record training sample",
				slog.String("error", err.Error()),
				slog.String("user_id", sub.UserID.String()))
		}
	}

	log.Debug("review submitted",
		slog.String("user_id", sub.UserID.String()),
		slog.String("topic_id", sub.Topic.ID.String()),
		slog.Float64("score", sub.Score),
		slog.Int("interval_days", outcome.IntervalDays),
		slog.Float64("ease_factor", outcome.EaseFactor))
	return &outcome, nil
}

// TopicsDue implements Service.TopicsDue.
func (s *serviceImpl) TopicsDue(
	ctx context.Context,
	userID uuid.UUID,
	topics []domain.Topic,
) ([]scheduler.DueTopic, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	states, err := s.states.ListByUser(ctx, userID)
	if err != nil {
		log.Error("failed to list repetition states",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, fmt.Errorf("failed to list repetition states: %w", err)
	}

	profile := s.loadProfile(ctx, userID, log)
	prioritizer := scheduler.NewPrioritizer(profile.MemoryCoefficient)
	return prioritizer.Rank(topics, states, time.Now().UTC()), nil
}

// loadProfile fetches the learner profile, degrading to defaults when it is
// missing or the store is unreachable.
func (s *serviceImpl) loadProfile(ctx context.Context, userID uuid.UUID, log *slog.Logger) *domain.UserProfile {
	profile, err := s.profiles.Get(ctx, userID)
	if err != nil {
		if !errors.Is(err, store.ErrProfileNotFound) {
			log.Warn("profile store unavailable, using defaults",
				slog.String("error", err.Error()),
				slog.String("user_id", userID.String()))
		}
		return domain.DefaultProfile(userID)
	}
	return profile
}

// loadAnalytics fetches the latest analytics snapshot, degrading to
// defaults when none exists or the store is unreachable.
func (s *serviceImpl) loadAnalytics(ctx context.Context, userID uuid.UUID, log *slog.Logger) *domain.AnalyticsSnapshot {
	snap, err := s.analytics.Latest(ctx, userID)
	if err != nil {
		if !errors.Is(err, store.ErrAnalyticsNotFound) {
			log.Warn("analytics store unavailable, using defaults",
				slog.String("error", err.Error()),
				slog.String("user_id", userID.String()))
		}
		return domain.DefaultAnalytics(userID)
	}
	return snap
}
