package mocks

import (
	"context"

	"github.com/google/uuid"

	"github.com/recallio/pace-api/internal/domain"
	"github.com/recallio/pace-api/internal/store"
)

// MockAnalyticsStore implements store.AnalyticsStore for testing
type MockAnalyticsStore struct {
	LatestFn func(ctx context.Context, userID uuid.UUID) (*domain.AnalyticsSnapshot, error)

	Snapshots   map[uuid.UUID]*domain.AnalyticsSnapshot
	LatestError error
}

// NewMockAnalyticsStore creates a new mock store with initialized defaults
func NewMockAnalyticsStore() *MockAnalyticsStore {
	return &MockAnalyticsStore{
		Snapshots: make(map[uuid.UUID]*domain.AnalyticsSnapshot),
	}
}

// Latest implements the AnalyticsStore interface
func (m *MockAnalyticsStore) Latest(ctx context.Context, userID uuid.UUID) (*domain.AnalyticsSnapshot, error) {
	if m.LatestFn != nil {
		return m.LatestFn(ctx, userID)
	}
	if m.LatestError != nil {
		return nil, m.LatestError
	}
	snap, exists := m.Snapshots[userID]
	if !exists {
		return nil, store.ErrAnalyticsNotFound
	}
	return snap, nil
}

// Verify interface implementation
var _ store.AnalyticsStore = (*MockAnalyticsStore)(nil)
