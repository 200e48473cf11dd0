package ml

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/recallio/pace-api/internal/domain"
	"github.com/recallio/pace-api/internal/domain/srs"
)

func matureInput(score float64) EstimateInput {
	now := time.Date(2026, 4, 2, 8, 0, 0, 0, time.UTC)
	userID, topicID := uuid.New(), uuid.New()

	state := &domain.RepetitionState{
		UserID:                userID,
		TopicID:               topicID,
		Repetitions:           3,
		EaseFactor:            2.5,
		IntervalDays:          10,
		LastReviewedAt:        now.AddDate(0, 0, -10),
		NextReviewAt:          now,
		PerformanceHistory:    []float64{80, 85, 90},
		ForgettingProbability: 0.2,
		CreatedAt:             now.AddDate(0, 0, -30),
		UpdatedAt:             now.AddDate(0, 0, -10),
	}

	return EstimateInput{
		Review: srs.Review{
			UserID:          userID,
			TopicID:         topicID,
			Score:           score,
			Difficulty:      domain.DifficultyMedium,
			DifficultyScore: domain.DifficultyMedium.CognitiveLoad(),
			MemoryCoef:      1.0,
			Now:             now,
		},
		State:    state,
		Features: Features{NormalizedScore: score / 100},
	}
}

func TestLearnedFallsBackWithoutModel(t *testing.T) {
	t.Parallel()

	learned := NewLearned(NewRegistry(), nil)
	baseline := NewDeterministic()

	in := matureInput(85)
	gotState, gotResult := learned.Estimate(in)
	wantState, wantResult := baseline.Estimate(in)

	assert.Equal(t, wantResult, gotResult)
	assert.Equal(t, wantState.IntervalDays, gotState.IntervalDays)
	assert.Equal(t, wantState.EaseFactor, gotState.EaseFactor)
}

func TestLearnedFallsBackOnBadPrediction(t *testing.T) {
	t.Parallel()

	registry := NewRegistry()
	// Negative bias with zero weights predicts a negative interval, which
	// is unusable.
	registry.Swap(&Model{Bias: -4, Samples: 100, TrainedAt: time.Now()})

	learned := NewLearned(registry, nil)
	baseline := NewDeterministic()

	in := matureInput(85)
	_, gotResult := learned.Estimate(in)
	_, wantResult := baseline.Estimate(in)

	assert.Equal(t, wantResult.IntervalDays, gotResult.IntervalDays)
	assert.Equal(t, wantResult.EaseFactor, gotResult.EaseFactor)
}

func TestLearnedUsesModelPrediction(t *testing.T) {
	t.Parallel()

	registry := NewRegistry()
	model := &Model{Bias: 20, Samples: 200, ValMAE: 2, TrainedAt: time.Now()}
	for i := range model.Scales {
		model.Scales[i] = 1
	}
	registry.Swap(model)

	learned := NewLearned(registry, nil)

	// The predicted base of 20 replaces floor(10*2.5); the good-bucket
	// multiplier still applies: int(20*1.2) = 24.
	_, result := learned.Estimate(matureInput(85))
	assert.Equal(t, 24, result.IntervalDays)
}

func TestLearnedKeepsPerformanceMultiplierOnFailure(t *testing.T) {
	t.Parallel()

	registry := NewRegistry()
	model := &Model{Bias: 20, Samples: 200, ValMAE: 2, TrainedAt: time.Now()}
	registry.Swap(model)

	learned := NewLearned(registry, nil)

	// A lapse halves even a learned base: ease drops to 2.3 but the
	// supplied base wins, int(20*0.5) = 10. Repetitions reset regardless
	// of which tier produced the interval.
	state, result := learned.Estimate(matureInput(30))
	assert.Equal(t, 10, result.IntervalDays)
	assert.Equal(t, 0, state.Repetitions)
}

func TestModelPredict(t *testing.T) {
	t.Parallel()

	var nilModel *Model
	_, err := nilModel.Predict(Features{})
	require.ErrorIs(t, err, ErrModelUnavailable)

	bad := &Model{Bias: 0}
	_, err = bad.Predict(Features{})
	require.ErrorIs(t, err, ErrBadPrediction)

	ok := &Model{Bias: 7}
	got, err := ok.Predict(Features{})
	require.NoError(t, err)
	assert.InDelta(t, 7.0, got, 1e-9)
}

func TestModelConfidence(t *testing.T) {
	t.Parallel()

	var nilModel *Model
	assert.Equal(t, 0.5, nilModel.Confidence())

	small := &Model{Samples: 10, ValMAE: 30}
	assert.Equal(t, 0.5, small.Confidence())

	big := &Model{Samples: 5000, ValMAE: 1}
	assert.Equal(t, 0.95, big.Confidence())
}

func TestRegistrySwap(t *testing.T) {
	t.Parallel()

	registry := NewRegistry()
	require.Nil(t, registry.Load())

	m := &Model{Bias: 3}
	registry.Swap(m)
	assert.Same(t, m, registry.Load())

	registry.Swap(nil)
	assert.Nil(t, registry.Load())
}
