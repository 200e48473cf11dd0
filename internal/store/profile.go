package store

import (
	"context"

	"github.com/google/uuid"

	"github.com/recallio/pace-api/internal/domain"
)

// ProfileStore defines the interface for learner profile persistence.
type ProfileStore interface {
	// Get retrieves the learning profile for a user.
	// Returns ErrProfileNotFound if no profile has been saved; callers fall
	// back to domain.DefaultProfile in that case.
	Get(ctx context.Context, userID uuid.UUID) (*domain.UserProfile, error)

	// Upsert saves the profile, replacing any existing row for the user.
	// Returns validation errors from the domain UserProfile if data is invalid.
	Upsert(ctx context.Context, profile *domain.UserProfile) error
}
