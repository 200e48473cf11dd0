package srs

import (
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/recallio/pace-api/internal/domain"
)

// Review carries the inputs of one graded review.
type Review struct {
	UserID          uuid.UUID
	TopicID         uuid.UUID
	Score           float64
	Difficulty      domain.Difficulty
	DifficultyScore float64 // intrinsic 0-1 topic difficulty for the decay model
	MemoryCoef      float64 // learner memory coefficient, 1.0 when unknown
	Now             time.Time
}

// Result is the scheduling outcome of a graded review.
type Result struct {
	IntervalDays int       `json:"interval_days"`
	NextReviewAt time.Time `json:"next_review_at"`
	EaseFactor   float64   `json:"ease_factor"`
	Confidence   float64   `json:"confidence"`
}

// performanceMultiplier maps a 0-100 score onto the interval multiplier for
// its bucket.
func performanceMultiplier(score float64, p *Params) float64 {
	switch {
	case score >= ExcellentScore:
		return p.ExcellentMultiplier
	case score >= GoodScore:
		return p.GoodMultiplier
	case score >= PassScore:
		return p.FairMultiplier
	case score >= PoorScore:
		return p.PoorMultiplier
	default:
		return p.FailMultiplier
	}
}

// nextEaseFactor applies the per-bucket ease delta and enforces the 1.3
// floor. Scores in the good bucket leave the factor unchanged.
func nextEaseFactor(current, score float64, p *Params) float64 {
	switch {
	case score >= ExcellentScore:
		current += p.ExcellentEaseDelta
	case score >= GoodScore:
		// unchanged
	case score >= PassScore:
		current += p.FairEaseDelta
	default:
		current += p.FailEaseDelta
	}
	if current < domain.MinEaseFactor {
		current = domain.MinEaseFactor
	}
	return current
}

// ClampInterval bounds an interval to the documented 1-365 day range.
func ClampInterval(days int) int {
	if days < domain.MinIntervalDays {
		return domain.MinIntervalDays
	}
	if days > domain.MaxIntervalDays {
		return domain.MaxIntervalDays
	}
	return days
}

// confidence grows with history depth from the base toward the cap.
func confidence(historyDepth int, p *Params) float64 {
	c := p.ConfidenceBase + p.ConfidenceStep*float64(historyDepth)
	if c > p.ConfidenceCap {
		c = p.ConfidenceCap
	}
	if c < p.ConfidenceBase {
		c = p.ConfidenceBase
	}
	return c
}

// NextState computes the successor RepetitionState and scheduling Result for
// a graded review, following the immutable update pattern: prev is never
// modified.
//
// candidateBase is the pre-multiplier base interval to use for a mature
// topic (two or more prior reviews). Pass a non-positive value to use the
// deterministic baseline floor(previousInterval x easeFactor); a learned
// predictor supplies its raw prediction here instead. The first and second
// review rules and the performance multiplier apply identically either way.
func NextState(prev *domain.RepetitionState, rev Review, candidateBase float64, p *Params) (*domain.RepetitionState, Result) {
	if p == nil {
		p = DefaultParams()
	}
	now := rev.Now.UTC()
	pass := rev.Score >= PassScore

	var next *domain.RepetitionState
	var prevEase float64
	if prev == nil {
		seed, err := domain.NewRepetitionState(rev.UserID, rev.TopicID, now)
		if err != nil {
			// Nil IDs; the state is rejected at the persistence boundary.
			seed = &domain.RepetitionState{
				UserID:     rev.UserID,
				TopicID:    rev.TopicID,
				EaseFactor: domain.InitialEaseFactor,
				CreatedAt:  now,
				UpdatedAt:  now,
			}
		}
		next = seed
		prevEase = seed.EaseFactor
	} else {
		next = prev.Clone()
		prevEase = prev.EaseFactor
	}

	ease := nextEaseFactor(prevEase, rev.Score, p)

	var interval int
	switch {
	case prev == nil:
		// First-ever review: one day regardless of score.
		interval = p.FirstInterval
	case prev.Repetitions == 1 && pass:
		interval = p.SecondInterval
	default:
		base := candidateBase
		if base <= 0 {
			base = math.Floor(float64(prev.IntervalDays) * ease)
		}
		interval = ClampInterval(int(base * performanceMultiplier(rev.Score, p)))
	}

	if pass {
		if prev == nil {
			next.Repetitions = 1
		} else {
			next.Repetitions = prev.Repetitions + 1
		}
	} else {
		next.Repetitions = 0
	}

	next.EaseFactor = ease
	next.IntervalDays = interval
	next.LastReviewedAt = now
	next.NextReviewAt = now.AddDate(0, 0, interval)
	next.PerformanceHistory = append(next.PerformanceHistory, rev.Score)
	// Immediately after a review nothing has been forgotten yet.
	next.ForgettingProbability = ForgettingProbability(0,
		MemoryStrength(next.Repetitions, ease, rev.MemoryCoef, rev.DifficultyScore))
	next.UpdatedAt = now

	return next, Result{
		IntervalDays: interval,
		NextReviewAt: next.NextReviewAt,
		EaseFactor:   ease,
		Confidence:   confidence(len(next.PerformanceHistory), p),
	}
}
