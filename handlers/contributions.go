package handlers

import (
	"net/http"

	"github.com/ga-dictionary/api-server-go/models"
	"github.com/ga-dictionary/api-server-go/utils"
)

// handleContributions routes the contribution endpoints
func (h *Handler) handleContributions(w http.ResponseWriter, r *http.Request) {
	parts := pathParts(r.URL.Path, "/api/v1/contributions")

	switch {
	case len(parts) == 0 && r.Method == http.MethodPost:
		h.submitContribution(w, r)
	case len(parts) == 0 && r.Method == http.MethodGet:
		h.listContributions(w, r)
	case len(parts) == 1 && r.Method == http.MethodGet:
		h.getContribution(w, r, parts[0])
	case len(parts) == 2 && parts[1] == "review" && r.Method == http.MethodPost:
		h.reviewContribution(w, r, parts[0])
	default:
		methodNotAllowed(w)
	}
}

// submitContribution handles POST /api/v1/contributions
func (h *Handler) submitContribution(w http.ResponseWriter, r *http.Request) {
	principal, err := utils.RequireAuthentication(r)
	if err != nil {
		utils.RespondWithAPIError(w, err)
		return
	}

	var req models.SubmitContributionRequest
	if !decodeJSONBody(w, r, &req) {
		return
	}

	response, err := h.contributionService.Submit(r.Context(), principal, &req)
	if err != nil {
		utils.RespondWithAPIError(w, err)
		return
	}
	utils.RespondWithSuccess(w, http.StatusCreated, response)
}

// listContributions handles GET /api/v1/contributions. Reviewers see the full
// queue; everyone else sees only their own submissions.
func (h *Handler) listContributions(w http.ResponseWriter, r *http.Request) {
	principal, err := utils.RequireAuthentication(r)
	if err != nil {
		utils.RespondWithAPIError(w, err)
		return
	}

	var status *models.ContributionStatus
	if value := r.URL.Query().Get("status"); value != "" {
		s := models.ContributionStatus(value)
		status = &s
	}

	var userID *string
	if !principal.CanReview() {
		userID = &principal.UserID
	} else if value := r.URL.Query().Get("userId"); value != "" {
		userID = &value
	}

	responses, err := h.contributionService.GetContributions(r.Context(), status, userID)
	if err != nil {
		utils.RespondWithAPIError(w, err)
		return
	}
	utils.RespondWithSuccess(w, http.StatusOK, responses)
}

// getContribution handles GET /api/v1/contributions/{id}
func (h *Handler) getContribution(w http.ResponseWriter, r *http.Request, contributionID string) {
	principal, err := utils.RequireAuthentication(r)
	if err != nil {
		utils.RespondWithAPIError(w, err)
		return
	}

	response, err := h.contributionService.GetContribution(r.Context(), contributionID)
	if err != nil {
		utils.RespondWithAPIError(w, err)
		return
	}

	// Non-reviewers may only see their own contributions
	if !principal.CanReview() && response.UserID != principal.UserID {
		utils.RespondWithError(w, http.StatusForbidden, "insufficient permissions")
		return
	}

	utils.RespondWithSuccess(w, http.StatusOK, response)
}

// reviewContribution handles POST /api/v1/contributions/{id}/review
func (h *Handler) reviewContribution(w http.ResponseWriter, r *http.Request, contributionID string) {
	principal, err := utils.RequireMinimumRole(r, models.RoleModerator)
	if err != nil {
		utils.RespondWithAPIError(w, err)
		return
	}

	var req models.ReviewContributionRequest
	if !decodeJSONBody(w, r, &req) {
		return
	}

	response, err := h.contributionService.Review(r.Context(), principal, contributionID, &req)
	if err != nil {
		utils.RespondWithAPIError(w, err)
		return
	}
	utils.RespondWithSuccess(w, http.StatusOK, response)
}
