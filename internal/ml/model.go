package ml

import (
	"errors"
	"fmt"
	"math"
	"time"
)

// Common predictor errors. None of these may surface past the estimator
// boundary: unavailability always degrades to the deterministic baseline.
var (
	// ErrModelUnavailable is returned when no validated model has been trained.
	ErrModelUnavailable = errors.New("no trained model available")

	// ErrInsufficientSamples is returned when training data is below the minimum.
	ErrInsufficientSamples = errors.New("insufficient training samples")

	// ErrBadPrediction is returned when the model produces a non-finite or
	// non-positive interval.
	ErrBadPrediction = errors.New("model produced an unusable prediction")
)

// Model is an immutable trained linear regression snapshot. Once built it is
// never mutated; retraining produces a new Model that is swapped into the
// Registry after validation.
type Model struct {
	Weights   [FeatureCount]float64
	Bias      float64
	Means     [FeatureCount]float64 // feature standardization
	Scales    [FeatureCount]float64
	Samples   int
	ValMAE    float64 // holdout mean absolute error, days
	TrainedAt time.Time
}

// Predict returns the candidate base interval in days for the given
// features. It returns ErrBadPrediction when the output is not a usable
// interval; callers fall back to the deterministic baseline.
func (m *Model) Predict(f Features) (float64, error) {
	if m == nil {
		return 0, ErrModelUnavailable
	}
	x := f.Vector()
	pred := m.Bias
	for i := 0; i < FeatureCount; i++ {
		scale := m.Scales[i]
		if scale == 0 {
			scale = 1
		}
		pred += m.Weights[i] * (x[i] - m.Means[i]) / scale
	}
	if math.IsNaN(pred) || math.IsInf(pred, 0) || pred <= 0 {
		return 0, fmt.Errorf("%w: %v", ErrBadPrediction, pred)
	}
	return pred, nil
}

// Confidence reports how much to trust this model, derived from training
// volume and holdout error, clamped to [0.5, 0.95].
func (m *Model) Confidence() float64 {
	if m == nil {
		return 0.5
	}
	c := 0.5 + float64(m.Samples)/1000
	if m.ValMAE > 0 {
		c -= m.ValMAE / 100
	}
	if c > 0.95 {
		c = 0.95
	}
	if c < 0.5 {
		c = 0.5
	}
	return c
}
