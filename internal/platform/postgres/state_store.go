package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/recallio/pace-api/internal/domain"
	"github.com/recallio/pace-api/internal/store"
)

// stateColumns is the SELECT column list shared by the state queries.
const stateColumns = `user_id, topic_id, repetitions, ease_factor, interval_days,
	last_reviewed_at, next_review_at, forgetting_probability, performance_history,
	created_at, updated_at`

// PostgresStateStore implements the store.StateStore interface using a
// PostgreSQL database as the storage backend.
type PostgresStateStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresStateStore creates a new PostgreSQL implementation of the
// StateStore interface. If logger is nil, the default logger is used.
func NewPostgresStateStore(db store.DBTX, logger *slog.Logger) *PostgresStateStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &PostgresStateStore{
		db:     db,
		logger: logger.With(slog.String("component", "state_store")),
	}
}

// Ensure PostgresStateStore implements store.StateStore interface
var _ store.StateStore = (*PostgresStateStore)(nil)

// Create implements store.StateStore.Create
func (s *PostgresStateStore) Create(ctx context.Context, state *domain.RepetitionState) error {
	if err := state.Validate(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	history, err := json.Marshal(state.PerformanceHistory)
	if err != nil {
		return fmt.Errorf("failed to encode performance history: %w", err)
	}

	query := `
		INSERT INTO repetition_state (
			user_id, topic_id, repetitions, ease_factor, interval_days,
			last_reviewed_at, next_review_at, forgetting_probability,
			performance_history, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	_, err = s.db.ExecContext(ctx, query,
		state.UserID,
		state.TopicID,
		state.Repetitions,
		state.EaseFactor,
		state.IntervalDays,
		nullableTime(state.LastReviewedAt),
		state.NextReviewAt,
		state.ForgettingProbability,
		history,
		state.CreatedAt,
		state.UpdatedAt,
	)
	if err != nil {
		if IsUniqueViolation(err) {
			return store.ErrStateExists
		}
		return fmt.Errorf("failed to create repetition state: %w", MapError(err))
	}
	return nil
}

// Get implements store.StateStore.Get
func (s *PostgresStateStore) Get(ctx context.Context, userID, topicID uuid.UUID) (*domain.RepetitionState, error) {
	query := `SELECT ` + stateColumns + `
		FROM repetition_state
		WHERE user_id = $1 AND topic_id = $2`
	return s.getWithQuery(ctx, query, userID, topicID)
}

// GetForUpdate implements store.StateStore.GetForUpdate
func (s *PostgresStateStore) GetForUpdate(ctx context.Context, userID, topicID uuid.UUID) (*domain.RepetitionState, error) {
	query := `SELECT ` + stateColumns + `
		FROM repetition_state
		WHERE user_id = $1 AND topic_id = $2
		FOR UPDATE`
	return s.getWithQuery(ctx, query, userID, topicID)
}

// getWithQuery runs one of the single-row state queries and scans the result.
func (s *PostgresStateStore) getWithQuery(
	ctx context.Context,
	query string,
	userID, topicID uuid.UUID,
) (*domain.RepetitionState, error) {
	var (
		st          domain.RepetitionState
		lastReview  sql.NullTime
		historyJSON []byte
	)
	err := s.db.QueryRowContext(ctx, query, userID, topicID).Scan(
		&st.UserID,
		&st.TopicID,
		&st.Repetitions,
		&st.EaseFactor,
		&st.IntervalDays,
		&lastReview,
		&st.NextReviewAt,
		&st.ForgettingProbability,
		&historyJSON,
		&st.CreatedAt,
		&st.UpdatedAt,
	)
	if err != nil {
		if mapped := MapError(err); store.IsNotFoundError(mapped) {
			return nil, store.ErrStateNotFound
		}
		return nil, fmt.Errorf("failed to get repetition state: %w", MapError(err))
	}

	if lastReview.Valid {
		st.LastReviewedAt = lastReview.Time
	}
	if err := json.Unmarshal(historyJSON, &st.PerformanceHistory); err != nil {
		return nil, fmt.Errorf("failed to decode performance history: %w", err)
	}
	return &st, nil
}

// Update implements store.StateStore.Update
func (s *PostgresStateStore) Update(ctx context.Context, state *domain.RepetitionState) error {
	if err := state.Validate(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	history, err := json.Marshal(state.PerformanceHistory)
	if err != nil {
		return fmt.Errorf("failed to encode performance history: %w", err)
	}

	query := `
		UPDATE repetition_state SET
			repetitions = $3,
			ease_factor = $4,
			interval_days = $5,
			last_reviewed_at = $6,
			next_review_at = $7,
			forgetting_probability = $8,
			performance_history = $9,
			updated_at = $10
		WHERE user_id = $1 AND topic_id = $2`

	result, err := s.db.ExecContext(ctx, query,
		state.UserID,
		state.TopicID,
		state.Repetitions,
		state.EaseFactor,
		state.IntervalDays,
		nullableTime(state.LastReviewedAt),
		state.NextReviewAt,
		state.ForgettingProbability,
		history,
		state.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update repetition state: %w", MapError(err))
	}
	if err := CheckRowsAffected(result, "repetition state"); err != nil {
		return store.ErrStateNotFound
	}
	return nil
}

// ListByUser implements store.StateStore.ListByUser
func (s *PostgresStateStore) ListByUser(ctx context.Context, userID uuid.UUID) (map[uuid.UUID]*domain.RepetitionState, error) {
	query := `SELECT ` + stateColumns + `
		FROM repetition_state
		WHERE user_id = $1`

	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list repetition states: %w", MapError(err))
	}
	defer func() { _ = rows.Close() }()

	states := make(map[uuid.UUID]*domain.RepetitionState)
	for rows.Next() {
		var (
			st          domain.RepetitionState
			lastReview  sql.NullTime
			historyJSON []byte
		)
		if err := rows.Scan(
			&st.UserID,
			&st.TopicID,
			&st.Repetitions,
			&st.EaseFactor,
			&st.IntervalDays,
			&lastReview,
			&st.NextReviewAt,
			&st.ForgettingProbability,
			&historyJSON,
			&st.CreatedAt,
			&st.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan repetition state: %w", err)
		}
		if lastReview.Valid {
			st.LastReviewedAt = lastReview.Time
		}
		if err := json.Unmarshal(historyJSON, &st.PerformanceHistory); err != nil {
			return nil, fmt.Errorf("failed to decode performance history: %w", err)
		}
		stCopy := st
		states[st.TopicID] = &stCopy
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate repetition states: %w", err)
	}
	return states, nil
}

// WithTx implements store.StateStore.WithTx
func (s *PostgresStateStore) WithTx(tx *sql.Tx) store.StateStore {
	return &PostgresStateStore{
		db:     tx,
		logger: s.logger,
	}
}
