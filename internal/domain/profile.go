package domain

import (
	"errors"

	"github.com/google/uuid"
)

// LearningStyle tags how a learner prefers to absorb material. It selects
// the time-of-day efficiency curve used by the schedule optimizer.
type LearningStyle string

// Possible learning style values
const (
	LearningStyleVisual      LearningStyle = "visual"
	LearningStyleAuditory    LearningStyle = "auditory"
	LearningStyleKinesthetic LearningStyle = "kinesthetic"
	LearningStyleReading     LearningStyle = "reading"
)

// Profile-specific validation errors
var (
	// ErrProfileUserIDEmpty is returned when a profile's user ID is empty or nil.
	ErrProfileUserIDEmpty = errors.New("profile user ID cannot be empty")

	// ErrProfileBudgetInvalid is returned when the daily study budget is not positive.
	ErrProfileBudgetInvalid = errors.New("daily study minutes must be positive")

	// ErrProfileSessionInvalid is returned when the preferred session length is not positive.
	ErrProfileSessionInvalid = errors.New("preferred session minutes must be positive")

	// ErrProfilePeakHourInvalid is returned when a peak hour is outside 0-23.
	ErrProfilePeakHourInvalid = errors.New("peak hours must be between 0 and 23")
)

// UserProfile captures a learner's study preferences and measured traits.
// It is read-only input to the scheduling core; the profile store owns it.
type UserProfile struct {
	UserID                  uuid.UUID     `json:"user_id"`
	LearningStyle           LearningStyle `json:"learning_style"`
	AttentionSpanMinutes    int           `json:"attention_span_minutes"`
	DifficultyPreference    Difficulty    `json:"difficulty_preference"`
	PeakHours               []int         `json:"peak_hours"`
	DailyStudyMinutes       int           `json:"daily_study_minutes"`
	PreferredSessionMinutes int           `json:"preferred_session_minutes"`
	BreakMinutes            int           `json:"break_minutes"`
	MaxSessionsPerDay       int           `json:"max_sessions_per_day"`
	MemoryCoefficient       float64       `json:"memory_coefficient"`
	RetentionRate           float64       `json:"retention_rate"`
}

// DefaultProfile returns the documented defaults used whenever a learner has
// no stored profile or the profile store is unreachable.
func DefaultProfile(userID uuid.UUID) *UserProfile {
	return &UserProfile{
		UserID:                  userID,
		LearningStyle:           LearningStyleVisual,
		AttentionSpanMinutes:    30,
		DifficultyPreference:    DifficultyMedium,
		PeakHours:               []int{9, 10, 11, 14, 15, 16},
		DailyStudyMinutes:       120,
		PreferredSessionMinutes: 25,
		BreakMinutes:            5,
		MaxSessionsPerDay:       6,
		MemoryCoefficient:       1.0,
		RetentionRate:           0.7,
	}
}

// Validate checks if the UserProfile has valid data.
func (p *UserProfile) Validate() error {
	if p.UserID == uuid.Nil {
		return ErrProfileUserIDEmpty
	}
	if p.DailyStudyMinutes <= 0 {
		return ErrProfileBudgetInvalid
	}
	if p.PreferredSessionMinutes <= 0 {
		return ErrProfileSessionInvalid
	}
	for _, h := range p.PeakHours {
		if h < 0 || h > 23 {
			return ErrProfilePeakHourInvalid
		}
	}
	return nil
}

// MaxBlockMinutes returns the per-block duration cap: the smaller of the
// preferred session length and the learner's attention span.
func (p *UserProfile) MaxBlockMinutes() int {
	if p.AttentionSpanMinutes > 0 && p.AttentionSpanMinutes < p.PreferredSessionMinutes {
		return p.AttentionSpanMinutes
	}
	return p.PreferredSessionMinutes
}

// StyleCode maps the learning style onto the numeric code fed to the
// interval predictor.
func (s LearningStyle) StyleCode() float64 {
	switch s {
	case LearningStyleVisual:
		return 0.8
	case LearningStyleAuditory:
		return 0.6
	case LearningStyleKinesthetic:
		return 0.4
	case LearningStyleReading:
		return 0.9
	default:
		return 0.7
	}
}
