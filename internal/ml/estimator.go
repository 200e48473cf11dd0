package ml

import (
	"log/slog"

	"github.com/recallio/pace-api/internal/domain"
	"github.com/recallio/pace-api/internal/domain/srs"
)

// Estimator computes the next review schedule for one graded review. Both
// variants implement the same contract; the learned one degrades to the
// deterministic one internally, so Estimate can never fail.
type Estimator interface {
	// Estimate returns the successor state and scheduling result. The prior
	// state inside the input may be nil for a first review.
	Estimate(in EstimateInput) (*domain.RepetitionState, srs.Result)
}

// EstimateInput bundles the review together with the learner context the
// learned predictor needs.
type EstimateInput struct {
	Review   srs.Review
	State    *domain.RepetitionState // nil for a first review
	Features Features
}

// Deterministic is the Tier-A estimator: the SM-2 style baseline with no
// learned component.
type Deterministic struct {
	Params *srs.Params
}

// NewDeterministic creates the baseline estimator with default parameters.
func NewDeterministic() *Deterministic {
	return &Deterministic{Params: srs.DefaultParams()}
}

// Estimate implements Estimator using the deterministic baseline only.
func (d *Deterministic) Estimate(in EstimateInput) (*domain.RepetitionState, srs.Result) {
	return srs.NextState(in.State, in.Review, 0, d.Params)
}

// Learned is the Tier-B estimator. When a validated model is loaded its raw
// prediction replaces the deterministic base interval; the performance
// multiplier and clamp still apply. Every failure mode falls back to the
// baseline silently.
type Learned struct {
	registry *Registry
	baseline *Deterministic
	logger   *slog.Logger
}

// NewLearned creates the learned estimator backed by the given registry.
func NewLearned(registry *Registry, logger *slog.Logger) *Learned {
	if registry == nil {
		panic("registry cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Learned{
		registry: registry,
		baseline: NewDeterministic(),
		logger:   logger.With(slog.String("component", "learned_estimator")),
	}
}

// Estimate implements Estimator. Model unavailability or a bad prediction
// is not an error from the caller's perspective; the deterministic result
// is returned instead.
func (l *Learned) Estimate(in EstimateInput) (*domain.RepetitionState, srs.Result) {
	model := l.registry.Load()
	if model == nil {
		return l.baseline.Estimate(in)
	}

	base, err := model.Predict(in.Features)
	if err != nil {
		l.logger.Debug("model prediction unusable, using deterministic baseline",
			slog.String("reason", err.Error()))
		return l.baseline.Estimate(in)
	}

	state, res := srs.NextState(in.State, in.Review, base, l.baseline.Params)
	// A model prediction carries the model's own confidence when it is
	// higher than the history-based ramp.
	if mc := model.Confidence(); mc > res.Confidence {
		res.Confidence = mc
	}
	return state, res
}

// Compile-time interface checks.
var (
	_ Estimator = (*Deterministic)(nil)
	_ Estimator = (*Learned)(nil)
)
