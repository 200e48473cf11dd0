// Package api provides HTTP handlers for the API.
package api

import (
	"time"

	"github.com/google/uuid"

	"github.com/recallio/pace-api/internal/domain"
)

// TopicPayload is the wire form of a topic. Topic catalogs live with the
// caller; requests carry the topics they want scheduled.
type TopicPayload struct {
	ID              string   `json:"id"               validate:"required,uuid"`
	Name            string   `json:"name"             validate:"required"`
	Subject         string   `json:"subject"          validate:"required"`
	Difficulty      string   `json:"difficulty"       validate:"required,oneof=easy medium hard"`
	DifficultyScore float64  `json:"difficulty_score" validate:"gte=0,lte=1"`
	EstimatedHours  float64  `json:"estimated_hours"  validate:"gte=0"`
	Prerequisites   []string `json:"prerequisites"    validate:"dive,uuid"`
}

// SubmitReviewRequest is the payload for POST /reviews.
type SubmitReviewRequest struct {
	UserID          string  `json:"user_id"          validate:"required,uuid"`
	TopicID         string  `json:"topic_id"         validate:"required,uuid"`
	Score           float64 `json:"score"            validate:"gte=0,lte=100"`
	Difficulty      string  `json:"difficulty"       validate:"required,oneof=easy medium hard"`
	DifficultyScore float64 `json:"difficulty_score" validate:"gte=0,lte=1"`
}

// SubmitReviewResponse is the scheduling outcome returned from POST /reviews.
type SubmitReviewResponse struct {
	IntervalDays int     `json:"interval_days"`
	NextReviewAt string  `json:"next_review_at"` // ISO-8601 UTC
	EaseFactor   float64 `json:"ease_factor"`
	Confidence   float64 `json:"confidence"`
}

// TopicsDueRequest is the payload for POST /topics/due.
type TopicsDueRequest struct {
	UserID string         `json:"user_id" validate:"required,uuid"`
	Topics []TopicPayload `json:"topics"  validate:"required,min=1,dive"`
}

// DueTopicResponse is one ranked entry of the topics-due listing.
type DueTopicResponse struct {
	TopicID              string  `json:"topic_id"`
	Name                 string  `json:"name"`
	Subject              string  `json:"subject"`
	UrgencyTier          string  `json:"urgency_tier"`
	Urgency              float64 `json:"urgency"`
	RetentionProbability float64 `json:"retention_probability"`
	DaysOverdue          int     `json:"days_overdue"`
}

// PreferencesPayload optionally overrides the stored profile for one plan
// generation without persisting anything.
type PreferencesPayload struct {
	LearningStyle           string  `json:"learning_style"            validate:"omitempty,oneof=visual auditory kinesthetic reading"`
	AttentionSpanMinutes    int     `json:"attention_span_minutes"    validate:"omitempty,gt=0"`
	DifficultyPreference    string  `json:"difficulty_preference"     validate:"omitempty,oneof=easy medium hard"`
	PeakHours               []int   `json:"peak_hours"                validate:"omitempty,dive,gte=0,lte=23"`
	DailyStudyMinutes       int     `json:"daily_study_minutes"       validate:"omitempty,gt=0"`
	PreferredSessionMinutes int     `json:"preferred_session_minutes" validate:"omitempty,gt=0"`
	BreakMinutes            int     `json:"break_minutes"             validate:"omitempty,gte=0"`
	MaxSessionsPerDay       int     `json:"max_sessions_per_day"      validate:"omitempty,gt=0"`
	MemoryCoefficient       float64 `json:"memory_coefficient"        validate:"omitempty,gt=0"`
	RetentionRate           float64 `json:"retention_rate"            validate:"omitempty,gt=0,lte=1"`
}

// GeneratePlanRequest is the payload for POST /plans.
type GeneratePlanRequest struct {
	UserID      string              `json:"user_id"     validate:"required,uuid"`
	TargetDate  string              `json:"target_date" validate:"required"` // ISO-8601
	Topics      []TopicPayload      `json:"topics"      validate:"required,min=1,dive"`
	Preferences *PreferencesPayload `json:"preferences" validate:"omitempty"`
}

// topicFromPayload converts a wire topic into its domain form. The payload
// has already passed struct validation, so the UUID parses.
func topicFromPayload(p TopicPayload) domain.Topic {
	prereqs := make([]uuid.UUID, 0, len(p.Prerequisites))
	for _, raw := range p.Prerequisites {
		if id, err := uuid.Parse(raw); err == nil {
			prereqs = append(prereqs, id)
		}
	}
	return domain.Topic{
		ID:              uuid.MustParse(p.ID),
		Name:            p.Name,
		Subject:         p.Subject,
		Difficulty:      domain.Difficulty(p.Difficulty),
		DifficultyScore: p.DifficultyScore,
		EstimatedHours:  p.EstimatedHours,
		Prerequisites:   prereqs,
	}
}

// profileFromPreferences builds a profile override from the payload, using
// the documented defaults for anything unset.
func profileFromPreferences(userID uuid.UUID, p *PreferencesPayload) *domain.UserProfile {
	profile := domain.DefaultProfile(userID)
	if p == nil {
		return profile
	}
	if p.LearningStyle != "" {
		profile.LearningStyle = domain.LearningStyle(p.LearningStyle)
	}
	if p.AttentionSpanMinutes > 0 {
		profile.AttentionSpanMinutes = p.AttentionSpanMinutes
	}
	if p.DifficultyPreference != "" {
		profile.DifficultyPreference = domain.Difficulty(p.DifficultyPreference)
	}
	if len(p.PeakHours) > 0 {
		profile.PeakHours = p.PeakHours
	}
	if p.DailyStudyMinutes > 0 {
		profile.DailyStudyMinutes = p.DailyStudyMinutes
	}
	if p.PreferredSessionMinutes > 0 {
		profile.PreferredSessionMinutes = p.PreferredSessionMinutes
	}
	if p.BreakMinutes > 0 {
		profile.BreakMinutes = p.BreakMinutes
	}
	if p.MaxSessionsPerDay > 0 {
		profile.MaxSessionsPerDay = p.MaxSessionsPerDay
	}
	if p.MemoryCoefficient > 0 {
		profile.MemoryCoefficient = p.MemoryCoefficient
	}
	if p.RetentionRate > 0 {
		profile.RetentionRate = p.RetentionRate
	}
	return profile
}

// parseTargetDate accepts RFC 3339 timestamps or bare dates.
func parseTargetDate(raw string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t.UTC(), nil
	}
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return time.Time{}, err
	}
	// A bare date means end of that day.
	return t.Add(24*time.Hour - time.Second).UTC(), nil
}
