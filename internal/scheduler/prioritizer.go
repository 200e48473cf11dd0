// Package scheduler contains the planning pipeline stages: ranking topics
// by review urgency, clustering a subject's topics into effort groups, and
// packing clusters into time-budgeted daily sessions.
package scheduler

import (
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/recallio/pace-api/internal/domain"
	"github.com/recallio/pace-api/internal/domain/srs"
)

// Urgency tier cut points over the urgency score.
const (
	criticalUrgency = 0.8
	highUrgency     = 0.6
	mediumUrgency   = 0.4

	// overduePerDay is the urgency added per day a review is overdue.
	overduePerDay = 0.1
)

// DueTopic is one ranked entry of the topics-due listing.
type DueTopic struct {
	Topic                domain.Topic       `json:"topic"`
	Tier                 domain.UrgencyTier `json:"urgency_tier"`
	Urgency              float64            `json:"urgency"`
	RetentionProbability float64            `json:"retention_probability"`
	DaysOverdue          int                `json:"days_overdue"`
}

// Prioritizer ranks topics by how badly they need review.
type Prioritizer struct {
	memoryCoef float64
}

// NewPrioritizer creates a Prioritizer using the learner's memory
// coefficient for retention estimates; pass 0 to use the neutral 1.0.
func NewPrioritizer(memoryCoef float64) *Prioritizer {
	if memoryCoef <= 0 {
		memoryCoef = 1.0
	}
	return &Prioritizer{memoryCoef: memoryCoef}
}

// Rank scores every topic and returns them in a strict total order: tier by
// severity, then urgency descending, then lower retention first, then topic
// ID. The order is stable across calls for a fixed state snapshot.
//
// urgency = forgetting_probability + 0.1 * days_overdue. Topics with no
// repetition state have never been reviewed and are critical by definition.
func (p *Prioritizer) Rank(
	topics []domain.Topic,
	states map[uuid.UUID]*domain.RepetitionState,
	now time.Time,
) []DueTopic {
	ranked := make([]DueTopic, 0, len(topics))
	for _, t := range topics {
		ranked = append(ranked, p.score(t, states[t.ID], now))
	}

	sort.Slice(ranked, func(i, j int) bool {
		a, b := ranked[i], ranked[j]
		if a.Tier.Rank() != b.Tier.Rank() {
			return a.Tier.Rank() < b.Tier.Rank()
		}
		if a.Urgency != b.Urgency {
			return a.Urgency > b.Urgency
		}
		if a.RetentionProbability != b.RetentionProbability {
			return a.RetentionProbability < b.RetentionProbability
		}
		return a.Topic.ID.String() < b.Topic.ID.String()
	})
	return ranked
}

// score computes the urgency entry for a single topic.
func (p *Prioritizer) score(t domain.Topic, state *domain.RepetitionState, now time.Time) DueTopic {
	if state == nil {
		return DueTopic{
			Topic:                t,
			Tier:                 domain.UrgencyCritical,
			Urgency:              1.0,
			RetentionProbability: 0,
			DaysOverdue:          0,
		}
	}

	elapsed := 0.0
	if !state.LastReviewedAt.IsZero() {
		elapsed = now.Sub(state.LastReviewedAt).Hours() / 24
	}
	strength := srs.MemoryStrength(state.Repetitions, state.EaseFactor, p.memoryCoef, t.DifficultyScore)
	retention := srs.Retention(elapsed, strength)
	forgetting := 1 - retention

	daysOverdue := 0
	if now.After(state.NextReviewAt) {
		daysOverdue = int(now.Sub(state.NextReviewAt).Hours() / 24)
	}

	urgency := forgetting + overduePerDay*float64(daysOverdue)

	return DueTopic{
		Topic:                t,
		Tier:                 tierFor(urgency),
		Urgency:              urgency,
		RetentionProbability: retention,
		DaysOverdue:          daysOverdue,
	}
}

// tierFor buckets an urgency score into its discrete tier.
func tierFor(urgency float64) domain.UrgencyTier {
	switch {
	case urgency > criticalUrgency:
		return domain.UrgencyCritical
	case urgency > highUrgency:
		return domain.UrgencyHigh
	case urgency > mediumUrgency:
		return domain.UrgencyMedium
	default:
		return domain.UrgencyLow
	}
}
