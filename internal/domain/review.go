package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Review-specific validation errors
var (
	// ErrReviewUserIDEmpty is returned when a review's user ID is empty or nil.
	ErrReviewUserIDEmpty = errors.New("review user ID cannot be empty")

	// ErrReviewTopicIDEmpty is returned when a review's topic ID is empty or nil.
	ErrReviewTopicIDEmpty = errors.New("review topic ID cannot be empty")
)

// ReviewRecord is one append-only row of the review history log. Records are
// never updated or deleted; the ease factor and interval captured here are
// the values that resulted from this review.
type ReviewRecord struct {
	ID           uuid.UUID  `json:"id"`
	UserID       uuid.UUID  `json:"user_id"`
	TopicID      uuid.UUID  `json:"topic_id"`
	Score        float64    `json:"score"`
	Difficulty   Difficulty `json:"difficulty"`
	IntervalDays int        `json:"interval_days"`
	EaseFactor   float64    `json:"ease_factor"`
	ReviewedAt   time.Time  `json:"reviewed_at"`
}

// NewReviewRecord creates a review log entry with a fresh ID.
// Returns an error if validation fails.
func NewReviewRecord(
	userID, topicID uuid.UUID,
	score float64,
	difficulty Difficulty,
	intervalDays int,
	easeFactor float64,
	reviewedAt time.Time,
) (*ReviewRecord, error) {
	r := &ReviewRecord{
		ID:           uuid.New(),
		UserID:       userID,
		TopicID:      topicID,
		Score:        score,
		Difficulty:   difficulty,
		IntervalDays: intervalDays,
		EaseFactor:   easeFactor,
		ReviewedAt:   reviewedAt,
	}
	if err := r.Validate(); err != nil {
		return nil, err
	}
	return r, nil
}

// Validate checks if the ReviewRecord has valid data.
func (r *ReviewRecord) Validate() error {
	if r.UserID == uuid.Nil {
		return ErrReviewUserIDEmpty
	}
	if r.TopicID == uuid.Nil {
		return ErrReviewTopicIDEmpty
	}
	if r.Score < 0 || r.Score > 100 {
		return ErrInvalidScore
	}
	if !r.Difficulty.IsValid() {
		return ErrInvalidDifficulty
	}
	return nil
}
