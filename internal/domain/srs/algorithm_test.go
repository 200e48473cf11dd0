package srs

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/recallio/pace-api/internal/domain"
)

func seedState(t *testing.T, userID, topicID uuid.UUID, now time.Time) *domain.RepetitionState {
	t.Helper()
	s, err := domain.NewRepetitionState(userID, topicID, now)
	if err != nil {
		t.Fatalf("failed to build state: %v", err)
	}
	return s
}

func testReview(score float64, now time.Time) Review {
	return Review{
		UserID:          uuid.New(),
		TopicID:         uuid.New(),
		Score:           score,
		Difficulty:      domain.DifficultyMedium,
		DifficultyScore: domain.DifficultyMedium.CognitiveLoad(),
		MemoryCoef:      1.0,
		Now:             now,
	}
}

func TestNextStateFirstReview(t *testing.T) {
	t.Parallel()
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

	next, result := NextState(nil, testReview(95, now), 0, nil)

	if result.IntervalDays != 1 {
		t.Errorf("first review interval = %d, expected 1", result.IntervalDays)
	}
	if result.EaseFactor != 2.6 {
		t.Errorf("ease after excellent first review = %v, expected 2.6", result.EaseFactor)
	}
	if next.Repetitions != 1 {
		t.Errorf("repetitions = %d, expected 1", next.Repetitions)
	}
	if !next.NextReviewAt.Equal(now.AddDate(0, 0, 1)) {
		t.Errorf("next review at = %v, expected one day out", next.NextReviewAt)
	}
	if len(next.PerformanceHistory) != 1 || next.PerformanceHistory[0] != 95 {
		t.Errorf("performance history = %v, expected [95]", next.PerformanceHistory)
	}
}

func TestNextStateFirstReviewFailingScore(t *testing.T) {
	t.Parallel()
	now := time.Now().UTC()

	// Even a failed first review schedules one day out; there is no
	// earlier slot to fall back to.
	next, result := NextState(nil, testReview(20, now), 0, nil)

	if result.IntervalDays != 1 {
		t.Errorf("interval = %d, expected 1", result.IntervalDays)
	}
	if next.Repetitions != 0 {
		t.Errorf("repetitions = %d, expected 0 after a lapse", next.Repetitions)
	}
	if result.EaseFactor != 2.3 {
		t.Errorf("ease = %v, expected 2.3", result.EaseFactor)
	}
}

func TestNextStateSecondReview(t *testing.T) {
	t.Parallel()
	now := time.Now().UTC()

	rev := testReview(85, now)
	prev := seedState(t, rev.UserID, rev.TopicID, now.AddDate(0, 0, -1))
	prev.Repetitions = 1
	prev.EaseFactor = 2.6
	prev.IntervalDays = 1

	next, result := NextState(prev, rev, 0, nil)

	if result.IntervalDays != 6 {
		t.Errorf("second successful review interval = %d, expected 6", result.IntervalDays)
	}
	if result.EaseFactor != 2.6 {
		t.Errorf("good bucket must leave ease unchanged, got %v", result.EaseFactor)
	}
	if next.Repetitions != 2 {
		t.Errorf("repetitions = %d, expected 2", next.Repetitions)
	}
}

func TestNextStateMatureTopic(t *testing.T) {
	t.Parallel()
	now := time.Now().UTC()

	rev := testReview(95, now)
	prev := seedState(t, rev.UserID, rev.TopicID, now.AddDate(0, 0, -6))
	prev.Repetitions = 2
	prev.EaseFactor = 2.5
	prev.IntervalDays = 6
	prev.PerformanceHistory = []float64{85, 88}

	next, result := NextState(prev, rev, 0, nil)

	// ease moves first (2.5 -> 2.6), base = floor(6*2.6) = 15, then the
	// excellent multiplier: int(15*1.5) = 22.
	if result.IntervalDays != 22 {
		t.Errorf("interval = %d, expected 22", result.IntervalDays)
	}
	if result.EaseFactor != 2.6 {
		t.Errorf("ease = %v, expected 2.6", result.EaseFactor)
	}
	if next.Repetitions != 3 {
		t.Errorf("repetitions = %d, expected 3", next.Repetitions)
	}
}

func TestNextStateLapseResetsRepetitions(t *testing.T) {
	t.Parallel()
	now := time.Now().UTC()

	rev := testReview(30, now)
	prev := seedState(t, rev.UserID, rev.TopicID, now.AddDate(0, 0, -14))
	prev.Repetitions = 5
	prev.EaseFactor = 2.5
	prev.IntervalDays = 14

	next, result := NextState(prev, rev, 0, nil)

	if next.Repetitions != 0 {
		t.Errorf("repetitions = %d, expected 0 after a lapse", next.Repetitions)
	}
	// ease drops to 2.3, base = floor(14*2.3) = 32, fail multiplier 0.5.
	if result.IntervalDays != 16 {
		t.Errorf("interval = %d, expected 16", result.IntervalDays)
	}
	if result.EaseFactor != 2.3 {
		t.Errorf("ease = %v, expected 2.3", result.EaseFactor)
	}
}

func TestNextStateEaseFloor(t *testing.T) {
	t.Parallel()
	now := time.Now().UTC()

	rev := testReview(10, now)
	prev := seedState(t, rev.UserID, rev.TopicID, now.AddDate(0, 0, -1))
	prev.Repetitions = 0
	prev.EaseFactor = domain.MinEaseFactor
	prev.IntervalDays = 1

	_, result := NextState(prev, rev, 0, nil)

	if result.EaseFactor != domain.MinEaseFactor {
		t.Errorf("ease = %v, must never drop below %v", result.EaseFactor, domain.MinEaseFactor)
	}
}

func TestNextStateNoEaseCeiling(t *testing.T) {
	t.Parallel()
	now := time.Now().UTC()

	rev := testReview(100, now)
	prev := seedState(t, rev.UserID, rev.TopicID, now.AddDate(0, 0, -30))
	prev.Repetitions = 10
	prev.EaseFactor = 4.0
	prev.IntervalDays = 30

	_, result := NextState(prev, rev, 0, nil)

	if result.EaseFactor != 4.1 {
		t.Errorf("ease = %v, expected 4.1; an excellent streak keeps growing", result.EaseFactor)
	}
}

func TestNextStateIntervalClamp(t *testing.T) {
	t.Parallel()
	now := time.Now().UTC()

	rev := testReview(95, now)
	prev := seedState(t, rev.UserID, rev.TopicID, now.AddDate(0, 0, -300))
	prev.Repetitions = 12
	prev.EaseFactor = 3.0
	prev.IntervalDays = 300

	_, result := NextState(prev, rev, 0, nil)

	if result.IntervalDays != domain.MaxIntervalDays {
		t.Errorf("interval = %d, expected clamp at %d", result.IntervalDays, domain.MaxIntervalDays)
	}
}

func TestNextStateCandidateBase(t *testing.T) {
	t.Parallel()
	now := time.Now().UTC()

	rev := testReview(85, now)
	prev := seedState(t, rev.UserID, rev.TopicID, now.AddDate(0, 0, -10))
	prev.Repetitions = 3
	prev.EaseFactor = 2.5
	prev.IntervalDays = 10

	// A supplied base replaces the deterministic one; the performance
	// multiplier still applies on top: int(20*1.2) = 24.
	_, result := NextState(prev, rev, 20, nil)

	if result.IntervalDays != 24 {
		t.Errorf("interval = %d, expected 24", result.IntervalDays)
	}
}

func TestNextStateDoesNotMutatePrev(t *testing.T) {
	t.Parallel()
	now := time.Now().UTC()

	rev := testReview(95, now)
	prev := seedState(t, rev.UserID, rev.TopicID, now.AddDate(0, 0, -6))
	prev.Repetitions = 2
	prev.EaseFactor = 2.5
	prev.IntervalDays = 6
	prev.PerformanceHistory = []float64{80}

	before := *prev
	beforeHistory := append([]float64(nil), prev.PerformanceHistory...)

	NextState(prev, rev, 0, nil)

	if prev.Repetitions != before.Repetitions ||
		prev.EaseFactor != before.EaseFactor ||
		prev.IntervalDays != before.IntervalDays {
		t.Error("previous state was mutated")
	}
	if len(prev.PerformanceHistory) != len(beforeHistory) {
		t.Error("previous performance history was mutated")
	}
}

func TestNextStateConfidenceRamp(t *testing.T) {
	t.Parallel()
	now := time.Now().UTC()

	_, first := NextState(nil, testReview(85, now), 0, nil)
	if first.Confidence != 0.55 {
		t.Errorf("confidence after one review = %v, expected 0.55", first.Confidence)
	}

	rev := testReview(85, now)
	prev := seedState(t, rev.UserID, rev.TopicID, now)
	prev.Repetitions = 5
	prev.EaseFactor = 2.5
	prev.IntervalDays = 30
	for i := 0; i < 20; i++ {
		prev.PerformanceHistory = append(prev.PerformanceHistory, 85)
	}

	_, deep := NextState(prev, rev, 0, nil)
	if deep.Confidence != 0.95 {
		t.Errorf("confidence = %v, expected cap 0.95", deep.Confidence)
	}
}

func TestNextStateFirstReviewSeedsValidState(t *testing.T) {
	t.Parallel()
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	rev := testReview(95, now)

	next, _ := NextState(nil, rev, 0, nil)

	if err := next.Validate(); err != nil {
		t.Fatalf("first-review state failed validation: %v", err)
	}
	if next.UserID != rev.UserID || next.TopicID != rev.TopicID {
		t.Errorf("state keyed to %v/%v, expected %v/%v",
			next.UserID, next.TopicID, rev.UserID, rev.TopicID)
	}
	if !next.CreatedAt.Equal(now) {
		t.Errorf("created at = %v, expected %v", next.CreatedAt, now)
	}

	// A review with nil IDs still yields a state, and validation at the
	// persistence boundary is what rejects it.
	bad := testReview(95, now)
	bad.UserID = uuid.Nil
	broken, _ := NextState(nil, bad, 0, nil)
	if err := broken.Validate(); err == nil {
		t.Error("expected validation failure for nil user ID")
	}
}
