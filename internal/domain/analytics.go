package domain

import "github.com/google/uuid"

// AnalyticsSnapshot is the optional read-only learning analytics record for
// a user. The analytics pipeline that produces it is an external
// collaborator; when no snapshot exists the documented defaults apply.
type AnalyticsSnapshot struct {
	UserID           uuid.UUID `json:"user_id"`
	LearningVelocity float64   `json:"learning_velocity"`
	ForgettingRate   float64   `json:"forgetting_rate"`
	Consistency      float64   `json:"consistency"`
	ImprovementRate  float64   `json:"improvement_rate"`
}

// DefaultAnalytics returns the snapshot used when none has been computed or
// the analytics store is unreachable.
func DefaultAnalytics(userID uuid.UUID) *AnalyticsSnapshot {
	return &AnalyticsSnapshot{
		UserID:           userID,
		LearningVelocity: 0.7,
		ForgettingRate:   0.1,
		Consistency:      0.5,
		ImprovementRate:  0,
	}
}
