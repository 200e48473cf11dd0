package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Spaced repetition bounds enforced on every code path.
const (
	MinEaseFactor     = 1.3
	InitialEaseFactor = 2.5
	MinIntervalDays   = 1
	MaxIntervalDays   = 365
)

// Common validation errors for RepetitionState
var (
	ErrStateUserIDEmpty   = errors.New("repetition state user ID cannot be empty")
	ErrStateTopicIDEmpty  = errors.New("repetition state topic ID cannot be empty")
	ErrInvalidInterval    = errors.New("interval must be between 1 and 365 days")
	ErrInvalidEaseFactor  = errors.New("ease factor must be at least 1.3")
	ErrInvalidForgetting  = errors.New("forgetting probability must be between 0 and 1")
	ErrInvalidRepetitions = errors.New("repetitions cannot be negative")
)

// RepetitionState tracks a learner's spaced repetition schedule for one
// topic. There is at most one state per user x topic pair; it is created
// lazily on the first graded review, mutated only by review completion,
// and never deleted.
type RepetitionState struct {
	UserID                uuid.UUID `json:"user_id"`
	TopicID               uuid.UUID `json:"topic_id"`
	Repetitions           int       `json:"repetitions"`
	EaseFactor            float64   `json:"ease_factor"`
	IntervalDays          int       `json:"interval_days"`
	LastReviewedAt        time.Time `json:"last_reviewed_at"`
	NextReviewAt          time.Time `json:"next_review_at"`
	ForgettingProbability float64   `json:"forgetting_probability"`
	PerformanceHistory    []float64 `json:"performance_history"`
	CreatedAt             time.Time `json:"created_at"`
	UpdatedAt             time.Time `json:"updated_at"`
}

// NewRepetitionState creates the initial state for a user and topic.
// The topic is due immediately and the ease factor starts at the SM-2
// default of 2.5.
func NewRepetitionState(userID, topicID uuid.UUID, now time.Time) (*RepetitionState, error) {
	s := &RepetitionState{
		UserID:                userID,
		TopicID:               topicID,
		Repetitions:           0,
		EaseFactor:            InitialEaseFactor,
		IntervalDays:          MinIntervalDays,
		LastReviewedAt:        time.Time{},
		NextReviewAt:          now,
		ForgettingProbability: 1.0,
		PerformanceHistory:    nil,
		CreatedAt:             now,
		UpdatedAt:             now,
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// Validate checks if the RepetitionState honors its documented invariants.
func (s *RepetitionState) Validate() error {
	if s.UserID == uuid.Nil {
		return ErrStateUserIDEmpty
	}
	if s.TopicID == uuid.Nil {
		return ErrStateTopicIDEmpty
	}
	if s.Repetitions < 0 {
		return ErrInvalidRepetitions
	}
	if s.EaseFactor < MinEaseFactor {
		return ErrInvalidEaseFactor
	}
	if s.IntervalDays < MinIntervalDays || s.IntervalDays > MaxIntervalDays {
		return ErrInvalidInterval
	}
	if s.ForgettingProbability < 0 || s.ForgettingProbability > 1 {
		return ErrInvalidForgetting
	}
	return nil
}

// Clone returns a deep copy of the state. Review completion follows the
// immutable update pattern: compute a new state, persist it, leave the
// input untouched.
func (s *RepetitionState) Clone() *RepetitionState {
	dup := *s
	dup.PerformanceHistory = make([]float64, len(s.PerformanceHistory))
	copy(dup.PerformanceHistory, s.PerformanceHistory)
	return &dup
}

// RecentScores returns up to the last n performance scores, oldest first.
func (s *RepetitionState) RecentScores(n int) []float64 {
	if len(s.PerformanceHistory) <= n {
		return s.PerformanceHistory
	}
	return s.PerformanceHistory[len(s.PerformanceHistory)-n:]
}
