// Package review implements the graded-review use case: applying a review
// score to a topic's repetition state and listing topics due for review.
package review

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/recallio/pace-api/internal/domain"
	"github.com/recallio/pace-api/internal/scheduler"
)

// TopicRef identifies the topic being reviewed along with its intrinsic
// difficulty, which the engine does not store itself.
type TopicRef struct {
	ID              uuid.UUID
	Difficulty      domain.Difficulty
	DifficultyScore float64 // 0-1, optional; derived from the tag when zero
}

// Submission is one graded review to apply.
type Submission struct {
	UserID uuid.UUID
	Topic  TopicRef
	Score  float64
}

// Outcome is what the learner gets back after a graded review.
type Outcome struct {
	IntervalDays int       `json:"interval_days"`
	NextReviewAt time.Time `json:"next_review_at"`
	EaseFactor   float64   `json:"ease_factor"`
	Confidence   float64   `json:"confidence"`
}

// Service applies graded reviews and reports what is due.
type Service interface {
	// SubmitReview validates the submission, computes the next schedule for
	// the topic, appends the review to the history log, and upserts the
	// repetition state, all atomically. Concurrent submissions for the same
	// user and topic serialize on a row lock.
	//
	// Returns a domain.ValidationError wrapping domain.ErrInvalidScore or
	// domain.ErrInvalidDifficulty for bad input.
	SubmitReview(ctx context.Context, sub Submission) (*Outcome, error)

	// TopicsDue ranks the given topics by review urgency for the user.
	// Topics never reviewed rank as critical. The returned order is the
	// strict total order of the prioritizer.
	TopicsDue(ctx context.Context, userID uuid.UUID, topics []domain.Topic) ([]scheduler.DueTopic, error)
}
