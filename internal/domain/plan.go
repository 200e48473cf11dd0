package domain

import (
	"time"

	"github.com/google/uuid"
)

// SessionType classifies the pedagogical purpose of a study block.
type SessionType string

// Possible session type values
const (
	SessionTypeNewContent SessionType = "new_content"
	SessionTypeReview     SessionType = "review"
	SessionTypePractice   SessionType = "practice"
	SessionTypeAssessment SessionType = "assessment"
)

// Priority is the 1-4 scheduling priority tier assigned to study blocks.
type Priority int

// Possible priority values, ascending severity.
const (
	PriorityLow Priority = iota + 1
	PriorityMedium
	PriorityHigh
	PriorityCritical
)

// String returns the lowercase name of the priority tier.
func (p Priority) String() string {
	switch p {
	case PriorityCritical:
		return "critical"
	case PriorityHigh:
		return "high"
	case PriorityMedium:
		return "medium"
	default:
		return "low"
	}
}

// UrgencyTier classifies how badly a topic needs review right now.
type UrgencyTier string

// Possible urgency tiers, most severe first.
const (
	UrgencyCritical UrgencyTier = "critical"
	UrgencyHigh     UrgencyTier = "high"
	UrgencyMedium   UrgencyTier = "medium"
	UrgencyLow      UrgencyTier = "low"
)

// Rank returns the sort rank of the tier; lower ranks sort first.
func (u UrgencyTier) Rank() int {
	switch u {
	case UrgencyCritical:
		return 0
	case UrgencyHigh:
		return 1
	case UrgencyMedium:
		return 2
	default:
		return 3
	}
}

// StudyBlock is one scheduled slice of study time for a single topic.
type StudyBlock struct {
	TopicID         uuid.UUID   `json:"topic_id"`
	TopicName       string      `json:"topic_name"`
	SessionType     SessionType `json:"session_type"`
	DurationMinutes int         `json:"duration_minutes"`
	Priority        Priority    `json:"priority"`
	StartAt         time.Time   `json:"start_at"`
	Difficulty      Difficulty  `json:"difficulty"`
	EstimatedEffort float64     `json:"estimated_effort"`
}

// DailySession is the ordered list of blocks planned for one calendar day.
type DailySession struct {
	Date   string       `json:"date"` // YYYY-MM-DD
	Blocks []StudyBlock `json:"blocks"`
}

// TotalMinutes returns the scheduled study minutes for the day, including
// the inter-block breaks that follow every block but the last.
func (d *DailySession) TotalMinutes(breakMinutes int) int {
	total := 0
	for _, b := range d.Blocks {
		total += b.DurationMinutes
	}
	if len(d.Blocks) > 1 {
		total += (len(d.Blocks) - 1) * breakMinutes
	}
	return total
}

// Milestone is a progress checkpoint within a study plan.
type Milestone struct {
	Day              int    `json:"day"`
	Title            string `json:"title"`
	TargetCompletion string `json:"target_completion"`
	AssessmentDue    bool   `json:"assessment_due"`
}

// AdaptiveRule describes one trigger/action pair the plan consumer should
// apply as the learner progresses.
type AdaptiveRule struct {
	Condition   string `json:"condition"`
	Action      string `json:"action"`
	Description string `json:"description"`
}

// CompletionEstimate summarizes the modeled chance of finishing the plan.
type CompletionEstimate struct {
	Overall          float64 `json:"overall"`
	LearningVelocity float64 `json:"learning_velocity"`
	Consistency      float64 `json:"consistency"`
	TimeAvailability float64 `json:"time_availability"`
}

// StudyPlan is the full schedule from generation time to the target date.
// Plans are regenerated wholesale; a new plan replaces any prior plan for
// the learner.
type StudyPlan struct {
	UserID             uuid.UUID          `json:"user_id"`
	GeneratedAt        time.Time          `json:"generated_at"`
	TargetDate         time.Time          `json:"target_date"`
	Days               []DailySession     `json:"days"`
	LearningObjectives []string           `json:"learning_objectives"`
	Milestones         []Milestone        `json:"milestones"`
	AdaptiveRules      []AdaptiveRule     `json:"adaptive_rules"`
	Completion         CompletionEstimate `json:"completion"`
	Confidence         float64            `json:"confidence"`
	Fallback           bool               `json:"fallback,omitempty"`
}
