package mocks

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/recallio/pace-api/internal/domain"
	"github.com/recallio/pace-api/internal/store"
)

type stateKey struct {
	userID  uuid.UUID
	topicID uuid.UUID
}

// MockStateStore implements store.StateStore for testing
type MockStateStore struct {
	CreateFn       func(ctx context.Context, state *domain.RepetitionState) error
	GetFn          func(ctx context.Context, userID, topicID uuid.UUID) (*domain.RepetitionState, error)
	GetForUpdateFn func(ctx context.Context, userID, topicID uuid.UUID) (*domain.RepetitionState, error)
	UpdateFn       func(ctx context.Context, state *domain.RepetitionState) error
	ListByUserFn   func(ctx context.Context, userID uuid.UUID) (map[uuid.UUID]*domain.RepetitionState, error)

	States      map[stateKey]*domain.RepetitionState
	CreateError error
	GetError    error
	UpdateError error
	ListError   error
	CreateCalls int
	UpdateCalls int
}

// NewMockStateStore creates a new mock store with initialized defaults
func NewMockStateStore() *MockStateStore {
	return &MockStateStore{
		States: make(map[stateKey]*domain.RepetitionState),
	}
}

// Put seeds the mock with a state, bypassing Create bookkeeping.
func (m *MockStateStore) Put(state *domain.RepetitionState) {
	m.States[stateKey{state.UserID, state.TopicID}] = state
}

// Create implements the StateStore interface
func (m *MockStateStore) Create(ctx context.Context, state *domain.RepetitionState) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, state)
	}
	if m.CreateError != nil {
		return m.CreateError
	}
	key := stateKey{state.UserID, state.TopicID}
	if _, exists := m.States[key]; exists {
		return store.ErrStateExists
	}
	m.States[key] = state
	m.CreateCalls++
	return nil
}

// Get implements the StateStore interface
func (m *MockStateStore) Get(ctx context.Context, userID, topicID uuid.UUID) (*domain.RepetitionState, error) {
	if m.GetFn != nil {
		return m.GetFn(ctx, userID, topicID)
	}
	if m.GetError != nil {
		return nil, m.GetError
	}
	state, exists := m.States[stateKey{userID, topicID}]
	if !exists {
		return nil, store.ErrStateNotFound
	}
	return state, nil
}

// GetForUpdate implements the StateStore interface. The mock has no row
// locks, so it behaves like Get.
func (m *MockStateStore) GetForUpdate(ctx context.Context, userID, topicID uuid.UUID) (*domain.RepetitionState, error) {
	if m.GetForUpdateFn != nil {
		return m.GetForUpdateFn(ctx, userID, topicID)
	}
	return m.Get(ctx, userID, topicID)
}

// Update implements the StateStore interface
func (m *MockStateStore) Update(ctx context.Context, state *domain.RepetitionState) error {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, state)
	}
	if m.UpdateError != nil {
		return m.UpdateError
	}
	key := stateKey{state.UserID, state.TopicID}
	if _, exists := m.States[key]; !exists {
		return store.ErrStateNotFound
	}
	m.States[key] = state
	m.UpdateCalls++
	return nil
}

// ListByUser implements the StateStore interface
func (m *MockStateStore) ListByUser(ctx context.Context, userID uuid.UUID) (map[uuid.UUID]*domain.RepetitionState, error) {
	if m.ListByUserFn != nil {
		return m.ListByUserFn(ctx, userID)
	}
	if m.ListError != nil {
		return nil, m.ListError
	}
	out := make(map[uuid.UUID]*domain.RepetitionState)
	for key, state := range m.States {
		if key.userID == userID {
			out[key.topicID] = state
		}
	}
	return out, nil
}

// WithTx implements the StateStore interface. The mock has no transactions,
// so it returns itself.
func (m *MockStateStore) WithTx(tx *sql.Tx) store.StateStore {
	return m
}

// Verify interface implementation
var _ store.StateStore = (*MockStateStore)(nil)
