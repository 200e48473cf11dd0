package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/recallio/pace-api/internal/api/shared"
	"github.com/recallio/pace-api/internal/domain"
	"github.com/recallio/pace-api/internal/platform/logger"
	"github.com/recallio/pace-api/internal/service/review"
)

// ReviewHandler handles review-related HTTP requests.
type ReviewHandler struct {
	reviewService review.Service
	logger        *slog.Logger
}

// NewReviewHandler creates a new ReviewHandler.
func NewReviewHandler(reviewService review.Service, log *slog.Logger) *ReviewHandler {
	if reviewService == nil {
		panic("reviewService cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}
	return &ReviewHandler{
		reviewService: reviewService,
		logger:        log.With(slog.String("component", "review_handler")),
	}
}

// SubmitReview handles POST /reviews requests. It grades one review and
// returns the topic's next schedule.
func (h *ReviewHandler) SubmitReview(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req SubmitReviewRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := shared.ValidateRequest(&req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request: "+err.Error())
		return
	}

	outcome, err := h.reviewService.SubmitReview(r.Context(), review.Submission{
		UserID: uuid.MustParse(req.UserID),
		Topic: review.TopicRef{
			ID:              uuid.MustParse(req.TopicID),
			Difficulty:      domain.Difficulty(req.Difficulty),
			DifficultyScore: req.DifficultyScore,
		},
		Score: req.Score,
	})
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	log.Debug("review graded",
		slog.String("user_id", req.UserID),
		slog.String("topic_id", req.TopicID),
		slog.Int("interval_days", outcome.IntervalDays))

	shared.RespondWithJSON(w, r, http.StatusOK, SubmitReviewResponse{
		IntervalDays: outcome.IntervalDays,
		NextReviewAt: outcome.NextReviewAt.UTC().Format(time.RFC3339),
		EaseFactor:   outcome.EaseFactor,
		Confidence:   outcome.Confidence,
	})
}

// TopicsDue handles POST /topics/due requests. The caller supplies the
// topic catalog; the response lists it ranked by review urgency.
func (h *ReviewHandler) TopicsDue(w http.ResponseWriter, r *http.Request) {
	var req TopicsDueRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := shared.ValidateRequest(&req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request: "+err.Error())
		return
	}

	topics := make([]domain.Topic, 0, len(req.Topics))
	for _, p := range req.Topics {
		topics = append(topics, topicFromPayload(p))
	}

	due, err := h.reviewService.TopicsDue(r.Context(), uuid.MustParse(req.UserID), topics)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	resp := make([]DueTopicResponse, 0, len(due))
	for _, d := range due {
		resp = append(resp, DueTopicResponse{
			TopicID:              d.Topic.ID.String(),
			Name:                 d.Topic.Name,
			Subject:              d.Topic.Subject,
			UrgencyTier:          string(d.Tier),
			Urgency:              d.Urgency,
			RetentionProbability: d.RetentionProbability,
			DaysOverdue:          d.DaysOverdue,
		})
	}
	shared.RespondWithJSON(w, r, http.StatusOK, resp)
}
