// Package ml holds the learned interval predictor: feature extraction, the
// trained regression model, the atomic model registry, and the batch
// trainer. The predictor is strictly optional; every caller must be able to
// continue on the deterministic baseline when no validated model exists.
package ml

import (
	"math"
	"time"

	"github.com/recallio/pace-api/internal/domain"
)

// FeatureCount is the fixed width of the predictor's input vector.
const FeatureCount = 11

// recentWindow bounds how many trailing scores feed the recent mean and
// variance features.
const recentWindow = 5

// Features is the input vector for the interval predictor, one value per
// documented feature.
type Features struct {
	NormalizedScore  float64 // score / 100
	DifficultyCode   float64 // easy 0.3, medium 0.6, hard 0.9
	ReviewCount      float64
	RecentMean       float64 // mean of last scores, normalized
	RecentVariance   float64 // variance of last scores, normalized
	DaysSinceReview  float64
	AttentionSpan    float64 // normalized to one hour
	LearningStyle    float64
	TopicFamiliarity float64 // repetitions scaled into [0,1]
	RetentionRate    float64
	ImprovementRate  float64
}

// Vector flattens the features in canonical order.
func (f Features) Vector() [FeatureCount]float64 {
	return [FeatureCount]float64{
		f.NormalizedScore,
		f.DifficultyCode,
		f.ReviewCount,
		f.RecentMean,
		f.RecentVariance,
		f.DaysSinceReview,
		f.AttentionSpan,
		f.LearningStyle,
		f.TopicFamiliarity,
		f.RetentionRate,
		f.ImprovementRate,
	}
}

// FromVector rebuilds a Features value from a stored canonical vector.
func FromVector(v [FeatureCount]float64) Features {
	return Features{
		NormalizedScore:  v[0],
		DifficultyCode:   v[1],
		ReviewCount:      v[2],
		RecentMean:       v[3],
		RecentVariance:   v[4],
		DaysSinceReview:  v[5],
		AttentionSpan:    v[6],
		LearningStyle:    v[7],
		TopicFamiliarity: v[8],
		RetentionRate:    v[9],
		ImprovementRate:  v[10],
	}
}

// BuildFeatures assembles the predictor input from whatever context is
// available. Any nil input falls back to its documented default so feature
// extraction can never fail.
func BuildFeatures(
	profile *domain.UserProfile,
	state *domain.RepetitionState,
	analytics *domain.AnalyticsSnapshot,
	score float64,
	difficulty domain.Difficulty,
	now time.Time,
) Features {
	f := Features{
		NormalizedScore: score / 100,
		DifficultyCode:  difficultyCode(difficulty),
	}

	if profile != nil {
		f.AttentionSpan = float64(profile.AttentionSpanMinutes) / 60
		f.LearningStyle = profile.LearningStyle.StyleCode()
		f.RetentionRate = profile.RetentionRate
	} else {
		f.AttentionSpan = 0.5
		f.LearningStyle = 0.7
		f.RetentionRate = 0.7
	}

	if state != nil {
		f.ReviewCount = float64(len(state.PerformanceHistory))
		recent := state.RecentScores(recentWindow)
		f.RecentMean = mean(recent) / 100
		f.RecentVariance = variance(recent) / 10000
		if !state.LastReviewedAt.IsZero() {
			f.DaysSinceReview = now.Sub(state.LastReviewedAt).Hours() / 24
		}
		f.TopicFamiliarity = math.Min(1, float64(state.Repetitions)/10)
	} else {
		f.RecentMean = 0.5
	}

	if analytics != nil {
		f.ImprovementRate = analytics.ImprovementRate
	}

	return f
}

func difficultyCode(d domain.Difficulty) float64 {
	switch d {
	case domain.DifficultyEasy:
		return 0.3
	case domain.DifficultyHard:
		return 0.9
	default:
		return 0.6
	}
}

func mean(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	sum := 0.0
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs))
}

func variance(xs []float64) float64 {
	if len(xs) < 2 {
		return 0
	}
	m := mean(xs)
	sum := 0.0
	for _, x := range xs {
		d := x - m
		sum += d * d
	}
	return sum / float64(len(xs))
}
