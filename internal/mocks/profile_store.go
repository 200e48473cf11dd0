package mocks

import (
	"context"

	"github.com/google/uuid"

	"github.com/recallio/pace-api/internal/domain"
	"github.com/recallio/pace-api/internal/store"
)

// MockProfileStore implements store.ProfileStore for testing
type MockProfileStore struct {
	GetFn    func(ctx context.Context, userID uuid.UUID) (*domain.UserProfile, error)
	UpsertFn func(ctx context.Context, profile *domain.UserProfile) error

	Profiles map[uuid.UUID]*domain.UserProfile
	GetError error
}

// NewMockProfileStore creates a new mock store with initialized defaults
func NewMockProfileStore() *MockProfileStore {
	return &MockProfileStore{
		Profiles: make(map[uuid.UUID]*domain.UserProfile),
	}
}

// Get implements the ProfileStore interface
func (m *MockProfileStore) Get(ctx context.Context, userID uuid.UUID) (*domain.UserProfile, error) {
	if m.GetFn != nil {
		return m.GetFn(ctx, userID)
	}
	if m.GetError != nil {
		return nil, m.GetError
	}
	profile, exists := m.Profiles[userID]
	if !exists {
		return nil, store.ErrProfileNotFound
	}
	return profile, nil
}

// Upsert implements the ProfileStore interface
func (m *MockProfileStore) Upsert(ctx context.Context, profile *domain.UserProfile) error {
	if m.UpsertFn != nil {
		return m.UpsertFn(ctx, profile)
	}
	m.Profiles[profile.UserID] = profile
	return nil
}

// Verify interface implementation
var _ store.ProfileStore = (*MockProfileStore)(nil)
