package domain

import (
	"errors"

	"github.com/google/uuid"
)

// Difficulty is the coarse difficulty tag attached to topics and reviews.
type Difficulty string

// Possible difficulty values
const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// Topic-specific validation errors
var (
	// ErrTopicIDEmpty is returned when a topic ID is empty or nil.
	ErrTopicIDEmpty = errors.New("topic ID cannot be empty")

	// ErrTopicNameEmpty is returned when a topic name is empty.
	ErrTopicNameEmpty = errors.New("topic name cannot be empty")

	// ErrTopicHoursNegative is returned when estimated hours are negative.
	ErrTopicHoursNegative = errors.New("estimated hours cannot be negative")
)

// Topic represents a unit of curriculum that can be studied and reviewed.
// DifficultyScore is the intrinsic 0-1 difficulty used by the memory decay
// model; Difficulty is the coarse tag used for scheduling and cognitive load.
type Topic struct {
	ID              uuid.UUID   `json:"id"`
	Name            string      `json:"name"`
	Subject         string      `json:"subject"`
	Difficulty      Difficulty  `json:"difficulty"`
	DifficultyScore float64     `json:"difficulty_score"`
	EstimatedHours  float64     `json:"estimated_hours"`
	Prerequisites   []uuid.UUID `json:"prerequisites,omitempty"`
}

// Validate checks if the Topic has valid data.
func (t *Topic) Validate() error {
	if t.ID == uuid.Nil {
		return ErrTopicIDEmpty
	}
	if t.Name == "" {
		return ErrTopicNameEmpty
	}
	if !t.Difficulty.IsValid() {
		return ErrInvalidDifficulty
	}
	if t.EstimatedHours < 0 {
		return ErrTopicHoursNegative
	}
	return nil
}

// IsValid reports whether the difficulty tag is one of the known values.
func (d Difficulty) IsValid() bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return true
	default:
		return false
	}
}

// Numeric maps the difficulty tag onto the 1-3 scale used for clustering.
func (d Difficulty) Numeric() float64 {
	switch d {
	case DifficultyEasy:
		return 1
	case DifficultyHard:
		return 3
	default:
		return 2
	}
}

// CognitiveLoad maps the difficulty tag onto the 0-1 cognitive load scale
// used to sequence work within a day.
func (d Difficulty) CognitiveLoad() float64 {
	switch d {
	case DifficultyEasy:
		return 0.3
	case DifficultyHard:
		return 0.9
	default:
		return 0.6
	}
}
