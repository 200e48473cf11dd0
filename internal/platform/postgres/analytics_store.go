package postgres

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/recallio/pace-api/internal/domain"
	"github.com/recallio/pace-api/internal/store"
)

// PostgresAnalyticsStore implements the store.AnalyticsStore interface
// using a PostgreSQL database as the storage backend. Snapshots are written
// by an external analytics pipeline; this store only reads them.
type PostgresAnalyticsStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresAnalyticsStore creates a new PostgreSQL implementation of the
// AnalyticsStore interface. If logger is nil, the default logger is used.
func NewPostgresAnalyticsStore(db store.DBTX, logger *slog.Logger) *PostgresAnalyticsStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &PostgresAnalyticsStore{
		db:     db,
		logger: logger.With(slog.String("component", "analytics_store")),
	}
}

// Ensure PostgresAnalyticsStore implements store.AnalyticsStore interface
var _ store.AnalyticsStore = (*PostgresAnalyticsStore)(nil)

// Latest implements store.AnalyticsStore.Latest
func (s *PostgresAnalyticsStore) Latest(ctx context.Context, userID uuid.UUID) (*domain.AnalyticsSnapshot, error) {
	query := `
		SELECT user_id, learning_velocity, forgetting_rate, consistency, improvement_rate
		FROM learning_analytics
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT 1`

	var snap domain.AnalyticsSnapshot
	err := s.db.QueryRowContext(ctx, query, userID).Scan(
		&snap.UserID,
		&snap.LearningVelocity,
		&snap.ForgettingRate,
		&snap.Consistency,
		&snap.ImprovementRate,
	)
	if err != nil {
		if mapped := MapError(err); store.IsNotFoundError(mapped) {
			return nil, store.ErrAnalyticsNotFound
		}
		return nil, fmt.Errorf("failed to get analytics snapshot: %w", MapError(err))
	}
	return &snap, nil
}
