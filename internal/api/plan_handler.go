package api

import (
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/recallio/pace-api/internal/api/shared"
	"github.com/recallio/pace-api/internal/domain"
	"github.com/recallio/pace-api/internal/platform/logger"
	"github.com/recallio/pace-api/internal/service/plan"
)

// PlanHandler handles study plan HTTP requests.
type PlanHandler struct {
	planService plan.Service
	logger      *slog.Logger
}

// NewPlanHandler creates a new PlanHandler.
func NewPlanHandler(planService plan.Service, log *slog.Logger) *PlanHandler {
	if planService == nil {
		panic("planService cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}
	return &PlanHandler{
		planService: planService,
		logger:      log.With(slog.String("component", "plan_handler")),
	}
}

// GeneratePlan handles POST /plans requests. The study plan is returned
// directly; a degraded result is flagged with "fallback": true rather than
// reported as an error.
func (h *PlanHandler) GeneratePlan(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req GeneratePlanRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := shared.ValidateRequest(&req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request: "+err.Error())
		return
	}

	targetDate, err := parseTargetDate(req.TargetDate)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest,
			"Invalid target_date: expected RFC 3339 timestamp or YYYY-MM-DD")
		return
	}

	userID := uuid.MustParse(req.UserID)
	topics := make([]domain.Topic, 0, len(req.Topics))
	for _, p := range req.Topics {
		topics = append(topics, topicFromPayload(p))
	}

	var overrides *domain.UserProfile
	if req.Preferences != nil {
		overrides = profileFromPreferences(userID, req.Preferences)
	}

	studyPlan, err := h.planService.GeneratePlan(r.Context(), plan.Request{
		UserID:     userID,
		Topics:     topics,
		TargetDate: targetDate,
		Overrides:  overrides,
	})
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	log.Debug("plan generated",
		slog.String("user_id", req.UserID),
		slog.Int("days", len(studyPlan.Days)),
		slog.Bool("fallback", studyPlan.Fallback))

	shared.RespondWithJSON(w, r, http.StatusOK, studyPlan)
}
