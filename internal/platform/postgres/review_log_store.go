package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/recallio/pace-api/internal/domain"
	"github.com/recallio/pace-api/internal/store"
)

// PostgresReviewLogStore implements the store.ReviewLogStore interface
// using a PostgreSQL database as the storage backend.
type PostgresReviewLogStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresReviewLogStore creates a new PostgreSQL implementation of the
// ReviewLogStore interface. If logger is nil, the default logger is used.
func NewPostgresReviewLogStore(db store.DBTX, logger *slog.Logger) *PostgresReviewLogStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &PostgresReviewLogStore{
		db:     db,
		logger: logger.With(slog.String("component", "review_log_store")),
	}
}

// Ensure PostgresReviewLogStore implements store.ReviewLogStore interface
var _ store.ReviewLogStore = (*PostgresReviewLogStore)(nil)

// Append implements store.ReviewLogStore.Append
func (s *PostgresReviewLogStore) Append(ctx context.Context, record *domain.ReviewRecord) error {
	if err := record.Validate(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	query := `
		INSERT INTO review_log (
			id, user_id, topic_id, score, difficulty, interval_days, ease_factor, reviewed_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := s.db.ExecContext(ctx, query,
		record.ID,
		record.UserID,
		record.TopicID,
		record.Score,
		record.Difficulty,
		record.IntervalDays,
		record.EaseFactor,
		record.ReviewedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to append review record: %w", MapError(err))
	}
	return nil
}

// ListByUser implements store.ReviewLogStore.ListByUser
func (s *PostgresReviewLogStore) ListByUser(
	ctx context.Context,
	userID uuid.UUID,
	since time.Time,
) ([]domain.ReviewRecord, error) {
	query := `
		SELECT id, user_id, topic_id, score, difficulty, interval_days, ease_factor, reviewed_at
		FROM review_log
		WHERE user_id = $1 AND reviewed_at >= $2
		ORDER BY reviewed_at ASC`

	rows, err := s.db.QueryContext(ctx, query, userID, since)
	if err != nil {
		return nil, fmt.Errorf("failed to list review records: %w", MapError(err))
	}
	defer func() { _ = rows.Close() }()

	return scanReviewRecords(rows)
}

// ListByUserAndTopic implements store.ReviewLogStore.ListByUserAndTopic
func (s *PostgresReviewLogStore) ListByUserAndTopic(
	ctx context.Context,
	userID, topicID uuid.UUID,
) ([]domain.ReviewRecord, error) {
	query := `
		SELECT id, user_id, topic_id, score, difficulty, interval_days, ease_factor, reviewed_at
		FROM review_log
		WHERE user_id = $1 AND topic_id = $2
		ORDER BY reviewed_at ASC`

	rows, err := s.db.QueryContext(ctx, query, userID, topicID)
	if err != nil {
		return nil, fmt.Errorf("failed to list review records: %w", MapError(err))
	}
	defer func() { _ = rows.Close() }()

	return scanReviewRecords(rows)
}

// WithTx implements store.ReviewLogStore.WithTx
func (s *PostgresReviewLogStore) WithTx(tx *sql.Tx) store.ReviewLogStore {
	return &PostgresReviewLogStore{
		db:     tx,
		logger: s.logger,
	}
}

// scanReviewRecords drains a review_log result set.
func scanReviewRecords(rows *sql.Rows) ([]domain.ReviewRecord, error) {
	var records []domain.ReviewRecord
	for rows.Next() {
		var r domain.ReviewRecord
		if err := rows.Scan(
			&r.ID,
			&r.UserID,
			&r.TopicID,
			&r.Score,
			&r.Difficulty,
			&r.IntervalDays,
			&r.EaseFactor,
			&r.ReviewedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan review record: %w", err)
		}
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate review records: %w", err)
	}
	return records, nil
}
