package scheduler

import (
	"sort"
	"time"

	"github.com/samber/lo"

	"github.com/recallio/pace-api/internal/domain"
)

// Scheduling constants.
const (
	// minBlockMinutes is the smallest viable study block; shorter
	// candidates are skipped rather than scheduled.
	minBlockMinutes = 10

	// highLoadThreshold marks blocks that must land on the best peak hour.
	highLoadThreshold = 0.7

	// offPeakEfficiency discounts hours outside the learner's declared peaks.
	offPeakEfficiency = 0.7
)

// TimeOfDay buckets the clock into the three slot categories used by the
// efficiency curves.
type TimeOfDay string

// Slot bucket values
const (
	Morning   TimeOfDay = "morning"   // 06-12
	Afternoon TimeOfDay = "afternoon" // 12-17
	Evening   TimeOfDay = "evening"   // 17-24
)

// TimeOfDayOf classifies an hour into its slot bucket.
func TimeOfDayOf(hour int) TimeOfDay {
	switch {
	case hour >= 6 && hour < 12:
		return Morning
	case hour >= 12 && hour < 17:
		return Afternoon
	default:
		return Evening
	}
}

// efficiencyCurves holds the research-derived learning efficiency per
// learning style and time of day.
var efficiencyCurves = map[domain.LearningStyle]map[TimeOfDay]float64{
	domain.LearningStyleVisual:      {Morning: 0.9, Afternoon: 0.8, Evening: 0.7},
	domain.LearningStyleAuditory:    {Morning: 0.8, Afternoon: 0.9, Evening: 0.8},
	domain.LearningStyleKinesthetic: {Morning: 0.7, Afternoon: 0.9, Evening: 0.6},
	domain.LearningStyleReading:     {Morning: 0.9, Afternoon: 0.7, Evening: 0.8},
}

// styleEfficiency returns the efficiency of studying at the given hour for
// a learning style, including the peak-hour multiplier.
func styleEfficiency(style domain.LearningStyle, hour int, peakHours []int) float64 {
	curve, ok := efficiencyCurves[style]
	if !ok {
		curve = map[TimeOfDay]float64{Morning: 0.7, Afternoon: 0.7, Evening: 0.7}
	}
	eff := curve[TimeOfDayOf(hour)]
	if !lo.Contains(peakHours, hour) {
		eff *= offPeakEfficiency
	}
	return eff
}

// Optimizer packs clustered topics into daily, budget-constrained sessions.
type Optimizer struct{}

// NewOptimizer creates an Optimizer.
func NewOptimizer() *Optimizer {
	return &Optimizer{}
}

// Schedule emits one DailySession per day from start (inclusive) for the
// given number of days, honoring the learner's daily budget, per-block cap,
// break duration, and session ceiling. Clusters are consumed in priority
// order; topics repeat across days with the session-type cadence governing
// what kind of work each day holds.
func (o *Optimizer) Schedule(
	clusters []Cluster,
	profile *domain.UserProfile,
	start time.Time,
	days int,
) []domain.DailySession {
	if days <= 0 || len(clusters) == 0 {
		return nil
	}

	// Flatten clusters into a priority-ordered topic list; each topic
	// carries its cluster's priority tier.
	type candidate struct {
		topic    domain.Topic
		priority domain.Priority
	}
	ordered := make([]candidate, 0)
	sorted := make([]Cluster, len(clusters))
	copy(sorted, clusters)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Priority > sorted[j].Priority
	})
	for _, c := range sorted {
		for _, t := range c.Topics {
			ordered = append(ordered, candidate{topic: t, priority: c.Tier()})
		}
	}

	blockCap := profile.MaxBlockMinutes()
	sessions := make([]domain.DailySession, 0, days)

	for day := 0; day < days; day++ {
		date := start.AddDate(0, 0, day)
		sessionType := cadenceFor(day)

		remaining := profile.DailyStudyMinutes
		var blocks []domain.StudyBlock

		for _, cand := range ordered {
			if remaining <= 0 || len(blocks) >= profile.MaxSessionsPerDay {
				break
			}
			duration := blockCap
			if duration > remaining {
				duration = remaining
			}
			if duration < minBlockMinutes {
				// Too small to be worth sitting down for; try the next topic,
				// which may not shrink any further.
				continue
			}

			blocks = append(blocks, domain.StudyBlock{
				TopicID:         cand.topic.ID,
				TopicName:       cand.topic.Name,
				SessionType:     sessionType,
				DurationMinutes: duration,
				Priority:        cand.priority,
				Difficulty:      cand.topic.Difficulty,
				EstimatedEffort: float64(duration) / 60,
			})
			remaining -= duration + profile.BreakMinutes
		}

		orderWithinDay(blocks)
		assignStartTimes(blocks, profile, date)

		sessions = append(sessions, domain.DailySession{
			Date:   date.Format("2006-01-02"),
			Blocks: blocks,
		})
	}

	return sessions
}

// cadenceFor returns the pedagogical session type for the day offset:
// day 0 introduces new content, every 3rd day reviews, every 5th assesses,
// everything else practices.
func cadenceFor(day int) domain.SessionType {
	switch {
	case day == 0:
		return domain.SessionTypeNewContent
	case day%3 == 0:
		return domain.SessionTypeReview
	case day%5 == 0:
		return domain.SessionTypeAssessment
	default:
		return domain.SessionTypePractice
	}
}

// orderWithinDay sorts blocks by priority tier descending then cognitive
// load ascending, so the hard high-priority work lands first and easy
// material is pushed later in the day.
func orderWithinDay(blocks []domain.StudyBlock) {
	sort.SliceStable(blocks, func(i, j int) bool {
		if blocks[i].Priority != blocks[j].Priority {
			return blocks[i].Priority > blocks[j].Priority
		}
		return blocks[i].Difficulty.CognitiveLoad() < blocks[j].Difficulty.CognitiveLoad()
	})
}

// assignStartTimes walks the day's blocks assigning clock times. The clock
// starts at the first declared peak hour; heavy blocks jump to the peak
// hour with the best style efficiency when it is still ahead of the clock.
func assignStartTimes(blocks []domain.StudyBlock, profile *domain.UserProfile, date time.Time) {
	peaks := profile.PeakHours
	if len(peaks) == 0 {
		peaks = []int{9}
	}

	day := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
	clock := day.Add(time.Duration(peaks[0]) * time.Hour)

	bestPeak := lo.MaxBy(peaks, func(a, b int) bool {
		return styleEfficiency(profile.LearningStyle, a, peaks) >
			styleEfficiency(profile.LearningStyle, b, peaks)
	})
	bestPeakAt := day.Add(time.Duration(bestPeak) * time.Hour)

	for i := range blocks {
		start := clock
		if blocks[i].Difficulty.CognitiveLoad() > highLoadThreshold && bestPeakAt.After(clock) {
			start = bestPeakAt
		}
		blocks[i].StartAt = start
		clock = start.
			Add(time.Duration(blocks[i].DurationMinutes) * time.Minute).
			Add(time.Duration(profile.BreakMinutes) * time.Minute)
	}
}
