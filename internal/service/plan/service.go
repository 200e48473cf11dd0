// Package plan implements study plan generation: validating the request,
// gathering the learner's context, and running the plan assembler under the
// configured deadline.
package plan

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/recallio/pace-api/internal/domain"
)

// Request is one plan generation request.
type Request struct {
	UserID     uuid.UUID
	Topics     []domain.Topic
	TargetDate time.Time

	// Overrides replaces the stored profile's preferences when set,
	// letting a caller try a plan without saving new preferences first.
	Overrides *domain.UserProfile
}

// Service generates study plans.
type Service interface {
	// GeneratePlan builds a full study plan from now to the target date.
	//
	// A past target date or an empty topic list is a domain.ValidationError.
	// Everything after validation degrades instead of failing: missing
	// profile or analytics use defaults, and a pipeline panic or deadline
	// expiry yields the basic fallback plan with plan.Fallback set.
	GeneratePlan(ctx context.Context, req Request) (*domain.StudyPlan, error)
}
