package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/recallio/pace-api/internal/ml"
	"github.com/recallio/pace-api/internal/store"
)

// minSampleScore is the passing-score floor for training data. Only reviews
// the learner actually passed demonstrate that the interval that preceded
// them was a good one.
const minSampleScore = 80

// PostgresSampleStore persists interval-training samples: the feature
// vector captured when a review was graded, paired with the interval that
// preceded it. It feeds the ml.Trainer as its ml.SampleSource.
type PostgresSampleStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresSampleStore creates a new PostgreSQL training sample store.
// If logger is nil, the default logger is used.
func NewPostgresSampleStore(db store.DBTX, logger *slog.Logger) *PostgresSampleStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &PostgresSampleStore{
		db:     db,
		logger: logger.With(slog.String("component", "sample_store")),
	}
}

// Ensure PostgresSampleStore implements ml.SampleSource
var _ ml.SampleSource = (*PostgresSampleStore)(nil)

// Record stores the feature snapshot taken at grading time together with
// the interval that was in effect and the score the learner achieved.
func (s *PostgresSampleStore) Record(
	ctx context.Context,
	userID, topicID uuid.UUID,
	features ml.Features,
	intervalDays int,
	score float64,
) error {
	vector := features.Vector()
	encoded, err := json.Marshal(vector[:])
	if err != nil {
		return fmt.Errorf("failed to encode feature vector: %w", err)
	}

	query := `
		INSERT INTO training_samples (user_id, topic_id, features, interval_days, score)
		VALUES ($1, $2, $3, $4, $5)`

	if _, err := s.db.ExecContext(ctx, query, userID, topicID, encoded, intervalDays, score); err != nil {
		return fmt.Errorf("failed to record training sample: %w", MapError(err))
	}
	return nil
}

// TrainingSamples implements ml.SampleSource. Only samples from passed
// reviews with a real prior interval qualify.
func (s *PostgresSampleStore) TrainingSamples(ctx context.Context) ([]ml.Sample, error) {
	query := `
		SELECT features, interval_days
		FROM training_samples
		WHERE score >= $1 AND interval_days > 0
		ORDER BY created_at ASC`

	rows, err := s.db.QueryContext(ctx, query, minSampleScore)
	if err != nil {
		return nil, fmt.Errorf("failed to load training samples: %w", MapError(err))
	}
	defer func() { _ = rows.Close() }()

	var samples []ml.Sample
	for rows.Next() {
		var (
			encoded  []byte
			interval int
		)
		if err := rows.Scan(&encoded, &interval); err != nil {
			return nil, fmt.Errorf("failed to scan training sample: %w", err)
		}

		var raw []float64
		if err := json.Unmarshal(encoded, &raw); err != nil {
			return nil, fmt.Errorf("failed to decode feature vector: %w", err)
		}
		if len(raw) != ml.FeatureCount {
			// Vector width changed between deployments; skip stale rows.
			continue
		}
		var vector [ml.FeatureCount]float64
		copy(vector[:], raw)

		samples = append(samples, ml.Sample{
			Features: ml.FromVector(vector),
			Interval: float64(interval),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate training samples: %w", err)
	}
	return samples, nil
}
