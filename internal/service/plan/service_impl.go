package plan

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/recallio/pace-api/internal/domain"
	"github.com/recallio/pace-api/internal/planner"
	"github.com/recallio/pace-api/internal/platform/logger"
	"github.com/recallio/pace-api/internal/store"
)

// Verify interface compliance at compile time
var _ Service = (*serviceImpl)(nil)

// serviceImpl implements the Service interface.
type serviceImpl struct {
	assembler *planner.Assembler
	states    store.StateStore
	profiles  store.ProfileStore
	analytics store.AnalyticsStore
	reviewLog store.ReviewLogStore
	timeout   time.Duration
	logger    *slog.Logger
}

// NewService creates a new plan Service implementation. The timeout bounds
// a single generation; on expiry the fallback plan is returned.
func NewService(
	assembler *planner.Assembler,
	states store.StateStore,
	profiles store.ProfileStore,
	analytics store.AnalyticsStore,
	reviewLog store.ReviewLogStore,
	timeout time.Duration,
	log *slog.Logger,
) Service {
	if assembler == nil {
		panic("assembler cannot be nil")
	}
	if states == nil {
		panic("states cannot be nil")
	}
	if profiles == nil {
		panic("profiles cannot be nil")
	}
	if analytics == nil {
		panic("analytics cannot be nil")
	}
	if reviewLog == nil {
		panic("reviewLog cannot be nil")
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	if log == nil {
		log = slog.Default()
	}

	return &serviceImpl{
		assembler: assembler,
		states:    states,
		profiles:  profiles,
		analytics: analytics,
		reviewLog: reviewLog,
		timeout:   timeout,
		logger:    log.With(slog.String("component", "plan_service")),
	}
}

// GeneratePlan implements Service.GeneratePlan.
func (s *serviceImpl) GeneratePlan(ctx context.Context, req Request) (*domain.StudyPlan, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)
	now := time.Now().UTC()

	if !req.TargetDate.After(now) {
		return nil, domain.NewValidationError("target_date",
			"must be in the future", domain.ErrTargetDateInPast)
	}
	if len(req.Topics) == 0 {
		return nil, domain.NewValidationError("topics",
			"at least one topic is required", domain.ErrNoTopics)
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	profile := req.Overrides
	if profile == nil {
		profile = s.loadProfile(ctx, req.UserID, log)
	}

	states, err := s.states.ListByUser(ctx, req.UserID)
	if err != nil {
		log.Warn("state store unavailable, planning without review state",
			slog.String("error", err.Error()),
			slog.String("user_id", req.UserID.String()))
		states = nil
	}

	history, err := s.reviewLog.ListByUser(ctx, req.UserID, time.Time{})
	if err != nil {
		log.Warn("review log unavailable, planning without history",
			slog.String("error", err.Error()),
			slog.String("user_id", req.UserID.String()))
		history = nil
	}

	analytics := s.loadAnalytics(ctx, req.UserID, log)

	plan := s.assembler.Assemble(ctx, planner.PlanInput{
		UserID:     req.UserID,
		Profile:    profile,
		Topics:     req.Topics,
		States:     states,
		Analytics:  analytics,
		History:    history,
		TargetDate: req.TargetDate,
		Now:        now,
	})

	if plan.Fallback {
		log.Warn("generated fallback study plan",
			slog.String("user_id", req.UserID.String()),
			slog.Int("topics", len(req.Topics)))
	} else {
		log.Info("generated study plan",
			slog.String("user_id", req.UserID.String()),
			slog.Int("topics", len(req.Topics)),
			slog.Int("days", len(plan.Days)),
			slog.Float64("confidence", plan.Confidence))
	}
	return plan, nil
}

// loadProfile fetches the learner profile, degrading to defaults.
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

// loadAnalytics fetches the latest analytics snapshot, degrading to defaults.
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
