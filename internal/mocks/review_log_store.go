package mocks

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/recallio/pace-api/internal/domain"
	"github.com/recallio/pace-api/internal/store"
)

// MockReviewLogStore implements store.ReviewLogStore for testing
type MockReviewLogStore struct {
	AppendFn             func(ctx context.Context, record *domain.ReviewRecord) error
	ListByUserFn         func(ctx context.Context, userID uuid.UUID, since time.Time) ([]domain.ReviewRecord, error)
	ListByUserAndTopicFn func(ctx context.Context, userID, topicID uuid.UUID) ([]domain.ReviewRecord, error)

	Records     []domain.ReviewRecord
	AppendError error
	ListError   error
}

// NewMockReviewLogStore creates a new mock store with initialized defaults
func NewMockReviewLogStore() *MockReviewLogStore {
	return &MockReviewLogStore{}
}

// Append implements the ReviewLogStore interface
func (m *MockReviewLogStore) Append(ctx context.Context, record *domain.ReviewRecord) error {
	if m.AppendFn != nil {
		return m.AppendFn(ctx, record)
	}
	if m.AppendError != nil {
		return m.AppendError
	}
	m.Records = append(m.Records, *record)
	return nil
}

// ListByUser implements the ReviewLogStore interface
func (m *MockReviewLogStore) ListByUser(ctx context.Context, userID uuid.UUID, since time.Time) ([]domain.ReviewRecord, error) {
	if m.ListByUserFn != nil {
		return m.ListByUserFn(ctx, userID, since)
	}
	if m.ListError != nil {
		return nil, m.ListError
	}
	var out []domain.ReviewRecord
	for _, r := range m.Records {
		if r.UserID == userID && (since.IsZero() || !r.ReviewedAt.Before(since)) {
			out = append(out, r)
		}
	}
	return out, nil
}

// ListByUserAndTopic implements the ReviewLogStore interface
func (m *MockReviewLogStore) ListByUserAndTopic(ctx context.Context, userID, topicID uuid.UUID) ([]domain.ReviewRecord, error) {
	if m.ListByUserAndTopicFn != nil {
		return m.ListByUserAndTopicFn(ctx, userID, topicID)
	}
	if m.ListError != nil {
		return nil, m.ListError
	}
	var out []domain.ReviewRecord
	for _, r := range m.Records {
		if r.UserID == userID && r.TopicID == topicID {
			out = append(out, r)
		}
	}
	return out, nil
}

// WithTx implements the ReviewLogStore interface. The mock has no
// transactions, so it returns itself.
func (m *MockReviewLogStore) WithTx(tx *sql.Tx) store.ReviewLogStore {
	return m
}

// Verify interface implementation
var _ store.ReviewLogStore = (*MockReviewLogStore)(nil)
