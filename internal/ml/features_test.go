package ml

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/recallio/pace-api/internal/domain"
)

func TestBuildFeaturesWithNilContext(t *testing.T) {
	t.Parallel()

	f := BuildFeatures(nil, nil, nil, 85, domain.DifficultyHard, time.Now().UTC())

	assert.Equal(t, 0.85, f.NormalizedScore)
	assert.Equal(t, 0.9, f.DifficultyCode)
	assert.Equal(t, 0.5, f.AttentionSpan)
	assert.Equal(t, 0.5, f.RecentMean)
	assert.Zero(t, f.ReviewCount)
	assert.Zero(t, f.DaysSinceReview)
}

func TestBuildFeaturesFromState(t *testing.T) {
	t.Parallel()
	now := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)

	state := &domain.RepetitionState{
		UserID:             uuid.New(),
		TopicID:            uuid.New(),
		Repetitions:        4,
		EaseFactor:         2.5,
		IntervalDays:       12,
		LastReviewedAt:     now.AddDate(0, 0, -12),
		PerformanceHistory: []float64{70, 80, 90},
	}

	f := BuildFeatures(nil, state, nil, 90, domain.DifficultyEasy, now)

	assert.Equal(t, 3.0, f.ReviewCount)
	assert.InDelta(t, 0.8, f.RecentMean, 1e-9)
	assert.InDelta(t, 12.0, f.DaysSinceReview, 1e-9)
	assert.InDelta(t, 0.4, f.TopicFamiliarity, 1e-9)
}

func TestVectorRoundTrip(t *testing.T) {
	t.Parallel()

	f := Features{
		NormalizedScore:  0.85,
		DifficultyCode:   0.6,
		ReviewCount:      7,
		RecentMean:       0.82,
		RecentVariance:   0.004,
		DaysSinceReview:  9.5,
		AttentionSpan:    0.75,
		LearningStyle:    0.8,
		TopicFamiliarity: 0.7,
		RetentionRate:    0.72,
		ImprovementRate:  0.1,
	}

	assert.Equal(t, f, FromVector(f.Vector()))
}
