// Package planner turns a learner's topics, history, and preferences into a
// complete study plan by orchestrating the scheduling pipeline.
package planner

import (
	"github.com/samber/lo"

	"github.com/recallio/pace-api/internal/domain"
	"github.com/recallio/pace-api/internal/scheduler"
)

// patternWindow is how many trailing reviews feed the trend and variance
// calculations.
const patternWindow = 10

// Patterns summarizes what the review history says about how a learner
// studies. All values are in [0,1]; an empty history yields the neutral
// defaults.
type Patterns struct {
	// Velocity is how quickly scores trend upward over recent reviews.
	Velocity float64
	// Consistency combines recent average score with how little it varies.
	Consistency float64
	// TimeOfDay holds the mean score per slot bucket, for buckets that have
	// at least one review.
	TimeOfDay map[scheduler.TimeOfDay]float64
}

// AnalyzePatterns derives learning patterns from the review log. Velocity is
// the least-squares slope of the last ten scores rescaled onto [0.1, 1];
// consistency is the recent mean score plus a low-variance bonus.
func AnalyzePatterns(records []domain.ReviewRecord) Patterns {
	p := Patterns{
		Velocity:    0.7,
		Consistency: 0.5,
		TimeOfDay:   map[scheduler.TimeOfDay]float64{},
	}
	if len(records) == 0 {
		return p
	}

	recent := records
	if len(recent) > patternWindow {
		recent = recent[len(recent)-patternWindow:]
	}
	scores := lo.Map(recent, func(r domain.ReviewRecord, _ int) float64 { return r.Score })

	if len(scores) >= 2 {
		p.Velocity = clamp(slope(scores)/10+0.5, 0.1, 1)
	}

	mean := lo.Sum(scores) / float64(len(scores))
	variance := 0.0
	for _, s := range scores {
		d := s - mean
		variance += d * d
	}
	variance /= float64(len(scores))
	p.Consistency = clamp(mean/100+maxf(0, 0.2-variance/10000), 0, 1)

	buckets := lo.GroupBy(records, func(r domain.ReviewRecord) scheduler.TimeOfDay {
		return scheduler.TimeOfDayOf(r.ReviewedAt.Hour())
	})
	for bucket, rs := range buckets {
		p.TimeOfDay[bucket] = lo.SumBy(rs, func(r domain.ReviewRecord) float64 { return r.Score }) /
			float64(len(rs))
	}

	return p
}

// slope returns the least-squares linear slope of y over indices 0..n-1.
func slope(y []float64) float64 {
	n := float64(len(y))
	var sumX, sumY, sumXY, sumXX float64
	for i, v := range y {
		x := float64(i)
		sumX += x
		sumY += v
		sumXY += x * v
		sumXX += x * x
	}
	denom := n*sumXX - sumX*sumX
	if denom == 0 {
		return 0
	}
	return (n*sumXY - sumX*sumY) / denom
}

func clamp(v, lower, upper float64) float64 {
	if v < lower {
		return lower
	}
	if v > upper {
		return upper
	}
	return v
}

func maxf(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
