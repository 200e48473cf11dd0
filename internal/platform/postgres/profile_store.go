package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/recallio/pace-api/internal/domain"
	"github.com/recallio/pace-api/internal/store"
)

// PostgresProfileStore implements the store.ProfileStore interface using a
// PostgreSQL database as the storage backend.
type PostgresProfileStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresProfileStore creates a new PostgreSQL implementation of the
// ProfileStore interface. The database handle is initialized and managed by
// the caller. If logger is nil, the default logger is used.
func NewPostgresProfileStore(db store.DBTX, logger *slog.Logger) *PostgresProfileStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &PostgresProfileStore{
		db:     db,
		logger: logger.With(slog.String("component", "profile_store")),
	}
}

// Ensure PostgresProfileStore implements store.ProfileStore interface
var _ store.ProfileStore = (*PostgresProfileStore)(nil)

// Get implements store.ProfileStore.Get
func (s *PostgresProfileStore) Get(ctx context.Context, userID uuid.UUID) (*domain.UserProfile, error) {
	query := `
		SELECT user_id, learning_style, attention_span_minutes, difficulty_preference,
		       peak_hours, daily_study_minutes, preferred_session_minutes, break_minutes,
		       max_sessions_per_day, memory_coefficient, retention_rate
		FROM learning_profiles
		WHERE user_id = $1`

	var (
		p            domain.UserProfile
		peakHoursRaw []byte
	)
	err := s.db.QueryRowContext(ctx, query, userID).Scan(
		&p.UserID,
		&p.LearningStyle,
		&p.AttentionSpanMinutes,
		&p.DifficultyPreference,
		&peakHoursRaw,
		&p.DailyStudyMinutes,
		&p.PreferredSessionMinutes,
		&p.BreakMinutes,
		&p.MaxSessionsPerDay,
		&p.MemoryCoefficient,
		&p.RetentionRate,
	)
	if err != nil {
		if mapped := MapError(err); store.IsNotFoundError(mapped) {
			return nil, store.ErrProfileNotFound
		}
		return nil, fmt.Errorf("failed to get profile: %w", MapError(err))
	}

	if err := json.Unmarshal(peakHoursRaw, &p.PeakHours); err != nil {
		return nil, fmt.Errorf("failed to decode peak hours: %w", err)
	}
	return &p, nil
}

// Upsert implements store.ProfileStore.Upsert
func (s *PostgresProfileStore) Upsert(ctx context.Context, profile *domain.UserProfile) error {
	if err := profile.Validate(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	peakHours, err := json.Marshal(profile.PeakHours)
	if err != nil {
		return fmt.Errorf("failed to encode peak hours: %w", err)
	}

	query := `
		INSERT INTO learning_profiles (
			user_id, learning_style, attention_span_minutes, difficulty_preference,
			peak_hours, daily_study_minutes, preferred_session_minutes, break_minutes,
			max_sessions_per_day, memory_coefficient, retention_rate, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, NOW())
		ON CONFLICT (user_id) DO UPDATE SET
			learning_style = EXCLUDED.learning_style,
			attention_span_minutes = EXCLUDED.attention_span_minutes,
			difficulty_preference = EXCLUDED.difficulty_preference,
			peak_hours = EXCLUDED.peak_hours,
			daily_study_minutes = EXCLUDED.daily_study_minutes,
			preferred_session_minutes = EXCLUDED.preferred_session_minutes,
			break_minutes = EXCLUDED.break_minutes,
			max_sessions_per_day = EXCLUDED.max_sessions_per_day,
			memory_coefficient = EXCLUDED.memory_coefficient,
			retention_rate = EXCLUDED.retention_rate,
			updated_at = NOW()`

	_, err = s.db.ExecContext(ctx, query,
		profile.UserID,
		profile.LearningStyle,
		profile.AttentionSpanMinutes,
		profile.DifficultyPreference,
		peakHours,
		profile.DailyStudyMinutes,
		profile.PreferredSessionMinutes,
		profile.BreakMinutes,
		profile.MaxSessionsPerDay,
		profile.MemoryCoefficient,
		profile.RetentionRate,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert profile: %w", MapError(err))
	}
	return nil
}
