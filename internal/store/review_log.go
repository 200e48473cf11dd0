package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/recallio/pace-api/internal/domain"
)

// ReviewLogStore defines the interface for the append-only review history.
// Records are never updated or deleted.
type ReviewLogStore interface {
	// Append saves one review record.
	// Returns validation errors from the domain ReviewRecord if data is invalid.
	Append(ctx context.Context, record *domain.ReviewRecord) error

	// ListByUser retrieves a user's review history ordered by review time
	// ascending. A zero since means the full history.
	ListByUser(ctx context.Context, userID uuid.UUID, since time.Time) ([]domain.ReviewRecord, error)

	// ListByUserAndTopic retrieves the review history for one user and topic,
	// ordered by review time ascending.
	ListByUserAndTopic(ctx context.Context, userID, topicID uuid.UUID) ([]domain.ReviewRecord, error)

	// WithTx returns a ReviewLogStore bound to the given transaction, so an
	// append can commit atomically with the matching state update.
	WithTx(tx *sql.Tx) ReviewLogStore
}
