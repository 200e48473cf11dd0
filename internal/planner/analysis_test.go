package planner

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/recallio/pace-api/internal/domain"
	"github.com/recallio/pace-api/internal/scheduler"
)

func recordsWithScores(scores []float64, hour int) []domain.ReviewRecord {
	userID, topicID := uuid.New(), uuid.New()
	base := time.Date(2026, 5, 1, hour, 0, 0, 0, time.UTC)

	out := make([]domain.ReviewRecord, 0, len(scores))
	for i, s := range scores {
		out = append(out, domain.ReviewRecord{
			ID:           uuid.New(),
			UserID:       userID,
			TopicID:      topicID,
			Score:        s,
			Difficulty:   domain.DifficultyMedium,
			IntervalDays: 1,
			EaseFactor:   2.5,
			ReviewedAt:   base.AddDate(0, 0, i),
		})
	}
	return out
}

func TestAnalyzePatternsEmptyHistory(t *testing.T) {
	t.Parallel()

	p := AnalyzePatterns(nil)

	assert.Equal(t, 0.7, p.Velocity)
	assert.Equal(t, 0.5, p.Consistency)
	assert.Empty(t, p.TimeOfDay)
}

func TestAnalyzePatternsImprovingScores(t *testing.T) {
	t.Parallel()

	// Scores climbing 5 points per review: slope 5, velocity caps at 1.
	p := AnalyzePatterns(recordsWithScores([]float64{60, 65, 70, 75, 80}, 10))

	assert.Equal(t, 1.0, p.Velocity)
}

func TestAnalyzePatternsDecliningScores(t *testing.T) {
	t.Parallel()

	// Slope -5: 0.5 - 0.5 = 0, floored at 0.1.
	p := AnalyzePatterns(recordsWithScores([]float64{90, 85, 80, 75, 70}, 10))

	assert.InDelta(t, 0.1, p.Velocity, 1e-9)
}

func TestAnalyzePatternsFlatScoresAreNeutral(t *testing.T) {
	t.Parallel()

	p := AnalyzePatterns(recordsWithScores([]float64{80, 80, 80, 80}, 10))

	assert.InDelta(t, 0.5, p.Velocity, 1e-9)
	// Mean 80 with zero variance earns the full low-variance bonus.
	assert.InDelta(t, 1.0, p.Consistency, 1e-9)
}

func TestAnalyzePatternsUsesTrailingWindow(t *testing.T) {
	t.Parallel()

	// Twelve reviews; only the last ten should feed the trend. The first
	// two catastrophic scores must not drag the velocity down.
	scores := append([]float64{10, 10}, []float64{80, 80, 80, 80, 80, 80, 80, 80, 80, 80}...)
	p := AnalyzePatterns(recordsWithScores(scores, 10))

	assert.InDelta(t, 0.5, p.Velocity, 1e-9)
	assert.InDelta(t, 1.0, p.Consistency, 1e-9)
}

func TestAnalyzePatternsTimeOfDayBuckets(t *testing.T) {
	t.Parallel()

	morning := recordsWithScores([]float64{90, 70}, 9)
	evening := recordsWithScores([]float64{60}, 20)

	p := AnalyzePatterns(append(morning, evening...))

	assert.InDelta(t, 80.0, p.TimeOfDay[scheduler.Morning], 1e-9)
	assert.InDelta(t, 60.0, p.TimeOfDay[scheduler.Evening], 1e-9)
	assert.NotContains(t, p.TimeOfDay, scheduler.Afternoon)
}

func TestSlope(t *testing.T) {
	t.Parallel()

	assert.InDelta(t, 2.0, slope([]float64{0, 2, 4, 6}), 1e-9)
	assert.InDelta(t, 0.0, slope([]float64{5, 5, 5}), 1e-9)
	assert.Zero(t, slope([]float64{7}))
}
