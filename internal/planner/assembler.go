package planner

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"

	"github.com/recallio/pace-api/internal/domain"
	"github.com/recallio/pace-api/internal/scheduler"
)

// Plan assembly constants.
const (
	// milestoneCount is the number of progress checkpoints in every plan.
	milestoneCount = 4

	// availabilityCeiling normalizes the daily budget against a three-hour
	// reference when estimating completion probability.
	availabilityCeiling = 180.0

	// fallbackConfidence is the confidence attached to the degraded plan.
	fallbackConfidence = 0.5

	// fallbackBlockMinutes is the fixed session length in the degraded plan.
	fallbackBlockMinutes = 60

	// fallbackStartHour is the fixed afternoon slot for degraded sessions.
	fallbackStartHour = 14
)

// adaptiveCatalog is the fixed set of adjustment rules attached to every
// generated plan.
var adaptiveCatalog = []domain.AdaptiveRule{
	{
		Condition:   "performance_drop_below_70",
		Action:      "reduce_difficulty",
		Description: "Reduce difficulty if performance drops below 70%",
	},
	{
		Condition:   "streak_above_5_days",
		Action:      "increase_challenge",
		Description: "Increase challenge after 5-day streak",
	},
	{
		Condition:   "session_incomplete",
		Action:      "adjust_duration",
		Description: "Adjust session duration if frequently incomplete",
	},
}

// PlanInput carries everything the assembler needs, fetched up front by the
// caller. Nil Profile or Analytics degrade to the documented defaults.
type PlanInput struct {
	UserID     uuid.UUID
	Profile    *domain.UserProfile
	Topics     []domain.Topic
	States     map[uuid.UUID]*domain.RepetitionState
	Analytics  *domain.AnalyticsSnapshot
	History    []domain.ReviewRecord
	TargetDate time.Time
	Now        time.Time
}

// Assembler orchestrates the scheduling pipeline into a full study plan.
// Assemble never fails: collaborator errors degrade to defaults, and a
// panic or context expiry anywhere in the pipeline yields the basic
// fallback plan instead.
type Assembler struct {
	clusterer *scheduler.Clusterer
	optimizer *scheduler.Optimizer
	logger    *slog.Logger
}

// NewAssembler creates an Assembler with its pipeline stages.
// Panics if any dependency is nil, as this indicates a programming error.
func NewAssembler(clusterer *scheduler.Clusterer, optimizer *scheduler.Optimizer, logger *slog.Logger) *Assembler {
	if clusterer == nil {
		panic("clusterer cannot be nil")
	}
	if optimizer == nil {
		panic("optimizer cannot be nil")
	}
	if logger == nil {
		panic("logger cannot be nil")
	}
	return &Assembler{
		clusterer: clusterer,
		optimizer: optimizer,
		logger:    logger.With(slog.String("component", "plan_assembler")),
	}
}

// Assemble builds the study plan for the input. The returned plan is always
// usable; callers must check plan.Fallback to see whether full
// personalization was applied.
func (a *Assembler) Assemble(ctx context.Context, in PlanInput) (plan *domain.StudyPlan) {
	defer func() {
		if r := recover(); r != nil {
			a.logger.Error("plan assembly panicked, emitting fallback plan",
				slog.String("user_id", in.UserID.String()),
				slog.Any("panic", r))
			plan = a.fallback(in)
		}
	}()

	profile := in.Profile
	if profile == nil {
		a.logger.Warn("no profile available, using defaults",
			slog.String("user_id", in.UserID.String()))
		profile = domain.DefaultProfile(in.UserID)
	}
	analytics := in.Analytics
	if analytics == nil {
		analytics = domain.DefaultAnalytics(in.UserID)
	}

	days := daysUntil(in.Now, in.TargetDate)
	patterns := AnalyzePatterns(in.History)

	prioritizer := scheduler.NewPrioritizer(profile.MemoryCoefficient)
	ranked := prioritizer.Rank(in.Topics, in.States, in.Now)
	if ctx.Err() != nil {
		a.logger.Warn("plan deadline hit during prioritization, emitting fallback plan",
			slog.String("user_id", in.UserID.String()))
		return a.fallback(in)
	}

	// Cluster each subject separately, consuming topics in urgency order so
	// the most pressing subjects cluster first.
	orderedTopics := lo.Map(ranked, func(d scheduler.DueTopic, _ int) domain.Topic { return d.Topic })
	bySubject := lo.GroupBy(orderedTopics, func(t domain.Topic) string { return t.Subject })
	subjects := lo.Keys(bySubject)
	sort.Strings(subjects)

	var clusters []scheduler.Cluster
	for _, subject := range subjects {
		clusters = append(clusters, a.clusterer.Group(bySubject[subject])...)
	}
	if ctx.Err() != nil {
		a.logger.Warn("plan deadline hit during clustering, emitting fallback plan",
			slog.String("user_id", in.UserID.String()))
		return a.fallback(in)
	}

	sessions := a.optimizer.Schedule(clusters, profile, in.Now, days)

	completion := a.completionEstimate(profile, analytics, patterns, in)

	return &domain.StudyPlan{
		UserID:             in.UserID,
		GeneratedAt:        in.Now,
		TargetDate:         in.TargetDate,
		Days:               sessions,
		LearningObjectives: objectives(subjects),
		Milestones:         milestones(days),
		AdaptiveRules:      adaptiveCatalog,
		Completion:         completion,
		Confidence:         clamp(completion.Overall, 0.5, 0.95),
	}
}

// completionEstimate models the chance the learner finishes the plan:
// 0.4 x velocity + 0.3 x consistency + 0.3 x time availability. Pattern
// analysis wins over the analytics snapshot when history exists.
func (a *Assembler) completionEstimate(
	profile *domain.UserProfile,
	analytics *domain.AnalyticsSnapshot,
	patterns Patterns,
	in PlanInput,
) domain.CompletionEstimate {
	velocity := analytics.LearningVelocity
	consistency := analytics.Consistency
	if len(in.History) > 0 {
		velocity = patterns.Velocity
		consistency = patterns.Consistency
	}
	velocity = clamp(velocity, 0, 1)
	consistency = clamp(consistency, 0, 1)
	availability := clamp(float64(profile.DailyStudyMinutes)/availabilityCeiling, 0, 1)

	return domain.CompletionEstimate{
		Overall:          clamp(0.4*velocity+0.3*consistency+0.3*availability, 0, 1),
		LearningVelocity: velocity,
		Consistency:      consistency,
		TimeAvailability: availability,
	}
}

// objectives builds the per-subject objective list.
func objectives(subjects []string) []string {
	out := make([]string, 0, 2*len(subjects))
	for _, s := range subjects {
		out = append(out,
			fmt.Sprintf("Master %s fundamentals", s),
			fmt.Sprintf("Apply %s concepts", s),
		)
	}
	return out
}

// milestones spaces four checkpoints evenly across the horizon, each with a
// recommended assessment.
func milestones(days int) []domain.Milestone {
	interval := days / milestoneCount
	if interval < 1 {
		interval = 1
	}
	out := make([]domain.Milestone, 0, milestoneCount)
	for i := 0; i < milestoneCount; i++ {
		out = append(out, domain.Milestone{
			Day:              (i + 1) * interval,
			Title:            fmt.Sprintf("Milestone %d", i+1),
			TargetCompletion: fmt.Sprintf("%d%% of topics", (i+1)*25),
			AssessmentDue:    true,
		})
	}
	return out
}

// fallback produces the basic degraded plan: one fixed-length medium
// session per subject per day at a set afternoon hour. It depends on
// nothing beyond the input topics and therefore cannot fail.
func (a *Assembler) fallback(in PlanInput) *domain.StudyPlan {
	subjects := lo.Uniq(lo.Map(in.Topics, func(t domain.Topic, _ int) string { return t.Subject }))
	sort.Strings(subjects)

	firstBySubject := map[string]domain.Topic{}
	for _, t := range in.Topics {
		if _, ok := firstBySubject[t.Subject]; !ok {
			firstBySubject[t.Subject] = t
		}
	}

	days := daysUntil(in.Now, in.TargetDate)
	sessions := make([]domain.DailySession, 0, days)
	for day := 0; day < days; day++ {
		date := in.Now.AddDate(0, 0, day)
		start := time.Date(date.Year(), date.Month(), date.Day(), fallbackStartHour, 0, 0, 0, time.UTC)

		blocks := make([]domain.StudyBlock, 0, len(subjects))
		for i, subject := range subjects {
			t := firstBySubject[subject]
			blocks = append(blocks, domain.StudyBlock{
				TopicID:         t.ID,
				TopicName:       fmt.Sprintf("%s study session", subject),
				SessionType:     domain.SessionTypePractice,
				DurationMinutes: fallbackBlockMinutes,
				Priority:        domain.PriorityHigh,
				StartAt:         start.Add(time.Duration(i) * time.Hour),
				Difficulty:      domain.DifficultyMedium,
				EstimatedEffort: 1,
			})
		}
		sessions = append(sessions, domain.DailySession{
			Date:   date.Format("2006-01-02"),
			Blocks: blocks,
		})
	}

	return &domain.StudyPlan{
		UserID:             in.UserID,
		GeneratedAt:        in.Now,
		TargetDate:         in.TargetDate,
		Days:               sessions,
		LearningObjectives: []string{"Complete a basic review pass over every subject"},
		Milestones:         milestones(days),
		AdaptiveRules:      nil,
		Completion: domain.CompletionEstimate{
			Overall:          fallbackConfidence,
			LearningVelocity: fallbackConfidence,
			Consistency:      fallbackConfidence,
			TimeAvailability: fallbackConfidence,
		},
		Confidence: fallbackConfidence,
		Fallback:   true,
	}
}

// daysUntil returns the whole-day horizon from now to the target date,
// never less than one.
func daysUntil(now, target time.Time) int {
	days := int(math.Ceil(target.Sub(now).Hours() / 24))
	if days < 1 {
		days = 1
	}
	return days
}
