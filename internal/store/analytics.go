package store

import (
	"context"

	"github.com/google/uuid"

	"github.com/recallio/pace-api/internal/domain"
)

// AnalyticsStore defines the interface for reading learning analytics
// snapshots. The pipeline producing them is external; this store is
// read-only and optional, and callers degrade to domain.DefaultAnalytics
// when it has nothing.
type AnalyticsStore interface {
	// Latest retrieves the most recent analytics snapshot for a user.
	// Returns ErrAnalyticsNotFound if none has been recorded.
	Latest(ctx context.Context, userID uuid.UUID) (*domain.AnalyticsSnapshot, error)
}
