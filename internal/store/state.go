package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/recallio/pace-api/internal/domain"
)

// StateStore defines the interface for repetition state persistence. State
// is keyed by (user, topic), created lazily on the first graded review, and
// mutated only by review completion.
type StateStore interface {
	// Create saves a new repetition state.
	// Returns ErrStateExists if state already exists for the user and topic.
	// Returns validation errors from the domain RepetitionState if data is invalid.
	Create(ctx context.Context, state *domain.RepetitionState) error

	// Get retrieves the state for a user and topic without locking.
	// Returns ErrStateNotFound if the state does not exist.
	Get(ctx context.Context, userID, topicID uuid.UUID) (*domain.RepetitionState, error)

	// GetForUpdate retrieves the state with a SELECT FOR UPDATE row lock.
	// Must be called inside a transaction; use it when the state will be
	// written back, so concurrent reviews of the same topic serialize.
	// Returns ErrStateNotFound if the state does not exist.
	GetForUpdate(ctx context.Context, userID, topicID uuid.UUID) (*domain.RepetitionState, error)

	// Update modifies an existing state, identified by its user and topic IDs.
	// Returns ErrStateNotFound if the state does not exist.
	Update(ctx context.Context, state *domain.RepetitionState) error

	// ListByUser retrieves all repetition states for a user, keyed by topic.
	ListByUser(ctx context.Context, userID uuid.UUID) (map[uuid.UUID]*domain.RepetitionState, error)

	// WithTx returns a StateStore bound to the given transaction.
	WithTx(tx *sql.Tx) StateStore
}
