package api

import (
	"net/http"

	"github.com/recallio/pace-api/internal/api/shared"
	"github.com/recallio/pace-api/internal/domain"
	"github.com/recallio/pace-api/internal/store"
)

// handleServiceError maps a service error onto the HTTP response: domain
// validation failures become 400 with the validation message, missing
// entities become 404, and everything else is a sanitized 500.
func handleServiceError(w http.ResponseWriter, r *http.Request, err error) {
	if domain.IsValidationError(err) {
		shared.RespondWithError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	if store.IsNotFoundError(err) {
		shared.RespondWithErrorAndLog(w, r, http.StatusNotFound, "Resource not found", err)
		return
	}
	shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError,
		"An internal error occurred", err)
}
