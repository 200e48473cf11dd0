package review

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/recallio/pace-api/internal/domain"
	"github.com/recallio/pace-api/internal/ml"
	"github.com/recallio/pace-api/internal/mocks"
)

type serviceFixture struct {
	svc       Service
	states    *mocks.MockStateStore
	reviewLog *mocks.MockReviewLogStore
	profiles  *mocks.MockProfileStore
	analytics *mocks.MockAnalyticsStore
	samples   *mocks.MockSampleRecorder
}

func newFixture(t *testing.T) *serviceFixture {
	t.Helper()

	f := &serviceFixture{
		states:    mocks.NewMockStateStore(),
		reviewLog: mocks.NewMockReviewLogStore(),
		profiles:  mocks.NewMockProfileStore(),
		analytics: mocks.NewMockAnalyticsStore(),
		samples:   mocks.NewMockSampleRecorder(),
	}
	db := mocks.NewDB()
	t.Cleanup(func() { _ = db.Close() })

	f.svc = NewService(
		db, f.states, f.reviewLog, f.profiles, f.analytics,
		f.samples, ml.NewDeterministic(), nil,
	)
	return f
}

func submission(score float64) Submission {
	return Submission{
		UserID: uuid.New(),
		Topic: TopicRef{
			ID:         uuid.New(),
			Difficulty: domain.DifficultyMedium,
		},
		Score: score,
	}
}

func TestSubmitReviewRejectsBadScore(t *testing.T) {
	t.Parallel()
	f := newFixture(t)

	for _, score := range []float64{-1, 100.5, 200} {
		_, err := f.svc.SubmitReview(context.Background(), submission(score))
		require.Error(t, err)

		var vErr *domain.ValidationError
		require.ErrorAs(t, err, &vErr)
		assert.ErrorIs(t, err, domain.ErrInvalidScore)
	}
}

func TestSubmitReviewRejectsBadDifficulty(t *testing.T) {
	t.Parallel()
	f := newFixture(t)

	sub := submission(80)
	sub.Topic.Difficulty = "impossible"

	_, err := f.svc.SubmitReview(context.Background(), sub)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidDifficulty)
}

func TestSubmitReviewFirstReviewCreatesState(t *testing.T) {
	t.Parallel()
	f := newFixture(t)

	sub := submission(95)
	outcome, err := f.svc.SubmitReview(context.Background(), sub)
	require.NoError(t, err)

	assert.Equal(t, 1, outcome.IntervalDays)
	assert.Equal(t, 2.6, outcome.EaseFactor)

	assert.Equal(t, 1, f.states.CreateCalls)
	assert.Zero(t, f.states.UpdateCalls)

	require.Len(t, f.reviewLog.Records, 1)
	record := f.reviewLog.Records[0]
	assert.Equal(t, sub.UserID, record.UserID)
	assert.Equal(t, sub.Topic.ID, record.TopicID)
	assert.Equal(t, 95.0, record.Score)

	// No prior interval means no training sample.
	assert.Empty(t, f.samples.Samples)
}

func TestSubmitReviewRepeatUpdatesStateAndRecordsSample(t *testing.T) {
	t.Parallel()
	f := newFixture(t)

	sub := submission(85)
	now := time.Now().UTC()
	f.states.Put(&domain.RepetitionState{
		UserID:             sub.UserID,
		TopicID:            sub.Topic.ID,
		Repetitions:        2,
		EaseFactor:         2.5,
		IntervalDays:       6,
		LastReviewedAt:     now.AddDate(0, 0, -6),
		NextReviewAt:       now,
		PerformanceHistory: []float64{80, 85},
		CreatedAt:          now.AddDate(0, 0, -20),
		UpdatedAt:          now.AddDate(0, 0, -6),
	})

	outcome, err := f.svc.SubmitReview(context.Background(), sub)
	require.NoError(t, err)

	// base floor(6*2.5) = 15, good multiplier: int(15*1.2) = 18.
	assert.Equal(t, 18, outcome.IntervalDays)
	assert.Equal(t, 2.5, outcome.EaseFactor)
	assert.Equal(t, 1, f.states.UpdateCalls)

	require.Len(t, f.samples.Samples, 1)
	sample := f.samples.Samples[0]
	assert.Equal(t, 6, sample.IntervalDays)
	assert.Equal(t, 85.0, sample.Score)
}

func TestSubmitReviewSampleFailureDoesNotFailReview(t *testing.T) {
	t.Parallel()
	f := newFixture(t)

	f.samples.RecordError = errors.New("training store down")

	sub := submission(85)
	now := time.Now().UTC()
	f.states.Put(&domain.RepetitionState{
		UserID:       sub.UserID,
		TopicID:      sub.Topic.ID,
		Repetitions:  2,
		EaseFactor:   2.5,
		IntervalDays: 6,
		NextReviewAt: now,
		CreatedAt:    now,
		UpdatedAt:    now,
	})

	_, err := f.svc.SubmitReview(context.Background(), sub)
	assert.NoError(t, err)
}

func TestSubmitReviewStateStoreFailureFailsReview(t *testing.T) {
	t.Parallel()
	f := newFixture(t)

	f.states.GetError = errors.New("connection reset")

	_, err := f.svc.SubmitReview(context.Background(), submission(80))
	require.Error(t, err)
	assert.Empty(t, f.reviewLog.Records)
}

func TestSubmitReviewMissingProfileUsesDefaults(t *testing.T) {
	t.Parallel()
	f := newFixture(t)

	// Nothing seeded: profile and analytics lookups both miss, the review
	// still succeeds with the neutral defaults.
	outcome, err := f.svc.SubmitReview(context.Background(), submission(70))
	require.NoError(t, err)
	assert.Equal(t, 1, outcome.IntervalDays)
}

func TestTopicsDue(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	now := time.Now().UTC()
	userID := uuid.New()

	reviewed := domain.Topic{
		ID: uuid.New(), Name: "reviewed", Subject: "math",
		Difficulty: domain.DifficultyMedium, DifficultyScore: 0.5, EstimatedHours: 1,
	}
	unseen := domain.Topic{
		ID: uuid.New(), Name: "unseen", Subject: "math",
		Difficulty: domain.DifficultyMedium, DifficultyScore: 0.5, EstimatedHours: 1,
	}

	f.states.Put(&domain.RepetitionState{
		UserID:         userID,
		TopicID:        reviewed.ID,
		Repetitions:    5,
		EaseFactor:     2.8,
		IntervalDays:   30,
		LastReviewedAt: now.AddDate(0, 0, -1),
		NextReviewAt:   now.AddDate(0, 0, 29),
		CreatedAt:      now,
		UpdatedAt:      now,
	})

	due, err := f.svc.TopicsDue(context.Background(), userID, []domain.Topic{reviewed, unseen})
	require.NoError(t, err)
	require.Len(t, due, 2)

	// The never-reviewed topic is critical and ranks first.
	assert.Equal(t, unseen.ID, due[0].Topic.ID)
	assert.Equal(t, domain.UrgencyCritical, due[0].Tier)
	assert.Equal(t, domain.UrgencyLow, due[1].Tier)
}

func TestTopicsDueListFailure(t *testing.T) {
	t.Parallel()
	f := newFixture(t)

	f.states.ListError = errors.New("database gone")

	_, err := f.svc.TopicsDue(context.Background(), uuid.New(), planTopics())
	require.Error(t, err)
}

func planTopics() []domain.Topic {
	return []domain.Topic{{
		ID: uuid.New(), Name: "t", Subject: "s",
		Difficulty: domain.DifficultyEasy, EstimatedHours: 1,
	}}
}
