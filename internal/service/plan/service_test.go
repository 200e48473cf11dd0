package plan

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/recallio/pace-api/internal/domain"
	"github.com/recallio/pace-api/internal/mocks"
	"github.com/recallio/pace-api/internal/planner"
	"github.com/recallio/pace-api/internal/scheduler"
)

type serviceFixture struct {
	svc       Service
	states    *mocks.MockStateStore
	profiles  *mocks.MockProfileStore
	analytics *mocks.MockAnalyticsStore
	reviewLog *mocks.MockReviewLogStore
}

func newFixture(t *testing.T) *serviceFixture {
	t.Helper()

	f := &serviceFixture{
		states:    mocks.NewMockStateStore(),
		profiles:  mocks.NewMockProfileStore(),
		analytics: mocks.NewMockAnalyticsStore(),
		reviewLog: mocks.NewMockReviewLogStore(),
	}
	assembler := planner.NewAssembler(scheduler.NewClusterer(), scheduler.NewOptimizer(), slog.Default())
	f.svc = NewService(assembler, f.states, f.profiles, f.analytics, f.reviewLog, 5*time.Second, nil)
	return f
}

func planRequest(days int) Request {
	return Request{
		UserID: uuid.New(),
		Topics: []domain.Topic{
			{
				ID: uuid.New(), Name: "limits", Subject: "calculus",
				Difficulty: domain.DifficultyHard, DifficultyScore: 0.8, EstimatedHours: 4,
			},
			{
				ID: uuid.New(), Name: "waves", Subject: "physics",
				Difficulty: domain.DifficultyMedium, DifficultyScore: 0.5, EstimatedHours: 2,
			},
		},
		TargetDate: time.Now().UTC().AddDate(0, 0, days),
	}
}

func TestGeneratePlanRejectsPastTargetDate(t *testing.T) {
	t.Parallel()
	f := newFixture(t)

	req := planRequest(7)
	req.TargetDate = time.Now().UTC().AddDate(0, 0, -1)

	_, err := f.svc.GeneratePlan(context.Background(), req)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrTargetDateInPast)
}

func TestGeneratePlanRejectsEmptyTopics(t *testing.T) {
	t.Parallel()
	f := newFixture(t)

	req := planRequest(7)
	req.Topics = nil

	_, err := f.svc.GeneratePlan(context.Background(), req)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrNoTopics)
}

func TestGeneratePlanFullPipeline(t *testing.T) {
	t.Parallel()
	f := newFixture(t)

	req := planRequest(10)
	plan, err := f.svc.GeneratePlan(context.Background(), req)
	require.NoError(t, err)
	require.NotNil(t, plan)

	assert.False(t, plan.Fallback)
	assert.Equal(t, req.UserID, plan.UserID)
	assert.NotEmpty(t, plan.Days)
	assert.Len(t, plan.Milestones, 4)
	assert.NotEmpty(t, plan.LearningObjectives)
}

func TestGeneratePlanStoreFailuresDegrade(t *testing.T) {
	t.Parallel()
	f := newFixture(t)

	f.states.ListError = errors.New("states unavailable")
	f.reviewLog.ListError = errors.New("log unavailable")
	f.profiles.GetError = errors.New("profiles unavailable")
	f.analytics.LatestError = errors.New("analytics unavailable")

	plan, err := f.svc.GeneratePlan(context.Background(), planRequest(7))
	require.NoError(t, err)
	require.NotNil(t, plan)
	assert.False(t, plan.Fallback)
	assert.NotEmpty(t, plan.Days)
}

func TestGeneratePlanProfileOverrides(t *testing.T) {
	t.Parallel()
	f := newFixture(t)

	req := planRequest(7)
	req.Overrides = domain.DefaultProfile(req.UserID)
	req.Overrides.DailyStudyMinutes = 180
	req.Overrides.MaxSessionsPerDay = 2

	plan, err := f.svc.GeneratePlan(context.Background(), req)
	require.NoError(t, err)

	for _, day := range plan.Days {
		assert.LessOrEqual(t, len(day.Blocks), 2)
	}
}

func TestGeneratePlanUsesStoredProfile(t *testing.T) {
	t.Parallel()
	f := newFixture(t)

	req := planRequest(7)
	stored := domain.DefaultProfile(req.UserID)
	stored.MaxSessionsPerDay = 1
	f.profiles.Profiles[req.UserID] = stored

	plan, err := f.svc.GeneratePlan(context.Background(), req)
	require.NoError(t, err)

	for _, day := range plan.Days {
		assert.LessOrEqual(t, len(day.Blocks), 1)
	}
}
