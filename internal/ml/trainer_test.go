package ml

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeSampleSource implements SampleSource for testing
type fakeSampleSource struct {
	samples []Sample
	err     error
}

func (f *fakeSampleSource) TrainingSamples(_ context.Context) ([]Sample, error) {
	return f.samples, f.err
}

// linearSamples builds n samples where the good interval is a clean linear
// function of the score feature, so the regression has something to learn.
func linearSamples(n int) []Sample {
	out := make([]Sample, 0, n)
	for i := 0; i < n; i++ {
		score := 0.6 + 0.4*float64(i%20)/20
		out = append(out, Sample{
			Features: Features{
				NormalizedScore:  score,
				DifficultyCode:   0.6,
				ReviewCount:      float64(i % 8),
				RecentMean:       score,
				TopicFamiliarity: float64(i%10) / 10,
			},
			Interval: 5 + 10*score,
		})
	}
	return out
}

func TestRetrainSkipsBelowMinimumSamples(t *testing.T) {
	t.Parallel()

	registry := NewRegistry()
	trainer := NewTrainer(&fakeSampleSource{samples: linearSamples(MinTrainingSamples - 1)}, registry, nil)

	_, err := trainer.Retrain(context.Background())
	require.ErrorIs(t, err, ErrInsufficientSamples)
	assert.Nil(t, registry.Load())
}

func TestRetrainPropagatesSourceError(t *testing.T) {
	t.Parallel()

	sourceErr := errors.New("connection refused")
	trainer := NewTrainer(&fakeSampleSource{err: sourceErr}, NewRegistry(), nil)

	_, err := trainer.Retrain(context.Background())
	require.ErrorIs(t, err, sourceErr)
}

func TestRetrainInstallsFirstModel(t *testing.T) {
	t.Parallel()

	registry := NewRegistry()
	trainer := NewTrainer(&fakeSampleSource{samples: linearSamples(100)}, registry, nil)

	model, err := trainer.Retrain(context.Background())
	require.NoError(t, err)
	require.NotNil(t, model)
	assert.Same(t, model, registry.Load())
	assert.Equal(t, 100, model.Samples)
	assert.False(t, model.TrainedAt.IsZero())

	// The relationship is clean and linear; the fit should land well
	// inside a few days of error.
	assert.Less(t, model.ValMAE, 5.0)

	// The installed model predicts usable intervals for in-range input.
	pred, err := model.Predict(Features{NormalizedScore: 0.8, DifficultyCode: 0.6, RecentMean: 0.8})
	require.NoError(t, err)
	assert.Greater(t, pred, 0.0)
}

func TestRetrainKeepsBetterIncumbent(t *testing.T) {
	t.Parallel()

	registry := NewRegistry()
	incumbent := &Model{Bias: 10, Samples: 500, ValMAE: 0.0001}
	registry.Swap(incumbent)

	trainer := NewTrainer(&fakeSampleSource{samples: linearSamples(100)}, registry, nil)

	model, err := trainer.Retrain(context.Background())
	require.NoError(t, err)
	assert.Nil(t, model)
	assert.Same(t, incumbent, registry.Load())
}

func TestRetrainReplacesWorseIncumbent(t *testing.T) {
	t.Parallel()

	registry := NewRegistry()
	incumbent := &Model{Bias: 10, Samples: 500, ValMAE: 500}
	registry.Swap(incumbent)

	trainer := NewTrainer(&fakeSampleSource{samples: linearSamples(100)}, registry, nil)

	model, err := trainer.Retrain(context.Background())
	require.NoError(t, err)
	require.NotNil(t, model)
	assert.Same(t, model, registry.Load())
}
