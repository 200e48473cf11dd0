package scheduler

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/recallio/pace-api/internal/domain"
)

func makeTopic(name string) domain.Topic {
	return domain.Topic{
		ID:              uuid.New(),
		Name:            name,
		Subject:         "math",
		Difficulty:      domain.DifficultyMedium,
		DifficultyScore: 0.6,
		EstimatedHours:  2,
	}
}

func stateFor(t domain.Topic, userID uuid.UUID, lastReviewed, nextReview time.Time, reps int, ease float64) *domain.RepetitionState {
	return &domain.RepetitionState{
		UserID:             userID,
		TopicID:            t.ID,
		Repetitions:        reps,
		EaseFactor:         ease,
		IntervalDays:       7,
		LastReviewedAt:     lastReviewed,
		NextReviewAt:       nextReview,
		PerformanceHistory: []float64{80},
		CreatedAt:          lastReviewed,
		UpdatedAt:          lastReviewed,
	}
}

func TestRankNeverReviewedIsCritical(t *testing.T) {
	t.Parallel()

	topic := makeTopic("limits")
	ranked := NewPrioritizer(1.0).Rank([]domain.Topic{topic}, nil, time.Now().UTC())

	require.Len(t, ranked, 1)
	assert.Equal(t, domain.UrgencyCritical, ranked[0].Tier)
	assert.Equal(t, 1.0, ranked[0].Urgency)
	assert.Zero(t, ranked[0].RetentionProbability)
}

func TestRankOverdueTopicOutranksFreshOne(t *testing.T) {
	t.Parallel()
	now := time.Date(2026, 6, 1, 10, 0, 0, 0, time.UTC)
	userID := uuid.New()

	overdue := makeTopic("derivatives")
	fresh := makeTopic("integrals")

	states := map[uuid.UUID]*domain.RepetitionState{
		// Reviewed ten days ago, due three days ago.
		overdue.ID: stateFor(overdue, userID, now.AddDate(0, 0, -10), now.AddDate(0, 0, -3), 1, 1.5),
		// Reviewed yesterday, not due for a week.
		fresh.ID: stateFor(fresh, userID, now.AddDate(0, 0, -1), now.AddDate(0, 0, 7), 4, 2.8),
	}

	ranked := NewPrioritizer(1.0).Rank([]domain.Topic{fresh, overdue}, states, now)

	require.Len(t, ranked, 2)
	assert.Equal(t, overdue.ID, ranked[0].Topic.ID)
	assert.Equal(t, 3, ranked[0].DaysOverdue)
	assert.True(t, ranked[0].Urgency > ranked[1].Urgency)
	assert.Equal(t, domain.UrgencyLow, ranked[1].Tier)
}

func TestRankUrgencyIncludesOverduePenalty(t *testing.T) {
	t.Parallel()
	now := time.Date(2026, 6, 1, 10, 0, 0, 0, time.UTC)
	userID := uuid.New()

	topic := makeTopic("series")
	topic.DifficultyScore = 0.9

	// Weak trace, three days overdue: forgetting alone is high and the
	// 0.1/day penalty pushes urgency past the critical cut.
	states := map[uuid.UUID]*domain.RepetitionState{
		topic.ID: stateFor(topic, userID, now.AddDate(0, 0, -10), now.AddDate(0, 0, -3), 0, 1.3),
	}

	ranked := NewPrioritizer(1.0).Rank([]domain.Topic{topic}, states, now)

	require.Len(t, ranked, 1)
	got := ranked[0]
	assert.Equal(t, domain.UrgencyCritical, got.Tier)
	assert.InDelta(t, (1-got.RetentionProbability)+0.3, got.Urgency, 1e-9)
}

func TestRankOrderIsDeterministic(t *testing.T) {
	t.Parallel()
	now := time.Now().UTC()

	topics := make([]domain.Topic, 6)
	for i := range topics {
		topics[i] = makeTopic("topic")
	}

	p := NewPrioritizer(1.0)
	first := p.Rank(topics, nil, now)
	second := p.Rank(topics, nil, now)

	require.Len(t, second, len(first))
	for i := range first {
		// All share tier and urgency; topic ID breaks the tie the same
		// way every time.
		assert.Equal(t, first[i].Topic.ID, second[i].Topic.ID)
	}
	for i := 1; i < len(first); i++ {
		assert.Less(t, first[i-1].Topic.ID.String(), first[i].Topic.ID.String())
	}
}

func TestNewPrioritizerNeutralCoefficient(t *testing.T) {
	t.Parallel()

	p := NewPrioritizer(0)
	assert.Equal(t, 1.0, p.memoryCoef)
}
