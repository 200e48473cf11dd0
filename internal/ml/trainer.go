package ml

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"time"
)

// Training hyperparameters. The model is a small standardized linear
// regression fit by gradient descent; the dataset is tiny by ML standards
// so a fixed schedule converges fine.
const (
	// MinTrainingSamples is the floor below which no model is produced and
	// callers stay on the deterministic baseline.
	MinTrainingSamples = 50

	trainEpochs     = 500
	learningRate    = 0.01
	holdoutFraction = 0.2
)

// Sample pairs a feature vector with the realized good interval that
// followed it: the interval after which the learner still passed the next
// review.
type Sample struct {
	Features Features
	Interval float64 // days
}

// SampleSource supplies historical training samples, typically derived from
// the review log by the store layer.
type SampleSource interface {
	TrainingSamples(ctx context.Context) ([]Sample, error)
}

// Trainer fits interval models from historical review data and installs
// them into a Registry once they validate. Training is a batch job; it
// never blocks interval computation.
type Trainer struct {
	source   SampleSource
	registry *Registry
	logger   *slog.Logger
}

// NewTrainer creates a Trainer. The registry receives validated models.
func NewTrainer(source SampleSource, registry *Registry, logger *slog.Logger) *Trainer {
	if source == nil {
		panic("source cannot be nil")
	}
	if registry == nil {
		panic("registry cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Trainer{
		source:   source,
		registry: registry,
		logger:   logger.With(slog.String("component", "interval_trainer")),
	}
}

// Retrain fetches the latest samples, fits a fresh model, validates it on a
// holdout split, and swaps it into the registry only when it beats the
// incumbent (or no incumbent exists). Returns the new model, or nil when
// training was skipped.
func (t *Trainer) Retrain(ctx context.Context) (*Model, error) {
	samples, err := t.source.TrainingSamples(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load training samples: %w", err)
	}
	if len(samples) < MinTrainingSamples {
		t.logger.Debug("skipping retrain, not enough samples",
			slog.Int("samples", len(samples)),
			slog.Int("required", MinTrainingSamples))
		return nil, ErrInsufficientSamples
	}

	model := fit(samples)

	incumbent := t.registry.Load()
	if incumbent != nil && incumbent.ValMAE > 0 && model.ValMAE >= incumbent.ValMAE {
		t.logger.Info("retrained model did not beat incumbent, keeping current",
			slog.Float64("new_val_mae", model.ValMAE),
			slog.Float64("incumbent_val_mae", incumbent.ValMAE))
		return nil, nil
	}

	t.registry.Swap(model)
	t.logger.Info("installed retrained interval model",
		slog.Int("samples", model.Samples),
		slog.Float64("val_mae", model.ValMAE))
	return model, nil
}

// fit trains a standardized linear regression with gradient descent and
// measures holdout MAE. The holdout is the trailing fraction of the sample
// slice; samples arrive in chronological order so this validates on the
// most recent behavior.
func fit(samples []Sample) *Model {
	cut := len(samples) - int(float64(len(samples))*holdoutFraction)
	if cut < 1 {
		cut = 1
	}
	train, holdout := samples[:cut], samples[cut:]

	var means, scales [FeatureCount]float64
	for i := 0; i < FeatureCount; i++ {
		sum := 0.0
		for _, s := range train {
			sum += s.Features.Vector()[i]
		}
		means[i] = sum / float64(len(train))
		varSum := 0.0
		for _, s := range train {
			d := s.Features.Vector()[i] - means[i]
			varSum += d * d
		}
		scales[i] = math.Sqrt(varSum / float64(len(train)))
		if scales[i] == 0 {
			scales[i] = 1
		}
	}

	standardize := func(f Features) [FeatureCount]float64 {
		x := f.Vector()
		for i := range x {
			x[i] = (x[i] - means[i]) / scales[i]
		}
		return x
	}

	var w [FeatureCount]float64
	var b float64
	n := float64(len(train))
	for epoch := 0; epoch < trainEpochs; epoch++ {
		var gradW [FeatureCount]float64
		gradB := 0.0
		for _, s := range train {
			x := standardize(s.Features)
			pred := b
			for i := 0; i < FeatureCount; i++ {
				pred += w[i] * x[i]
			}
			diff := pred - s.Interval
			for i := 0; i < FeatureCount; i++ {
				gradW[i] += diff * x[i]
			}
			gradB += diff
		}
		for i := 0; i < FeatureCount; i++ {
			w[i] -= learningRate * gradW[i] / n
		}
		b -= learningRate * gradB / n
	}

	model := &Model{
		Weights:   w,
		Bias:      b,
		Means:     means,
		Scales:    scales,
		Samples:   len(samples),
		TrainedAt: time.Now().UTC(),
	}

	if len(holdout) > 0 {
		errSum := 0.0
		for _, s := range holdout {
			pred, err := model.Predict(s.Features)
			if err != nil {
				pred = 0
			}
			errSum += math.Abs(pred - s.Interval)
		}
		model.ValMAE = errSum / float64(len(holdout))
	}

	return model
}
