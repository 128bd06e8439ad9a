package handlers

import (
	"net/http"

	"github.com/ga-dictionary/api-server-go/models"
	"github.com/ga-dictionary/api-server-go/utils"
)

// handleFlags routes the flag workflow endpoints
func (h *Handler) handleFlags(w http.ResponseWriter, r *http.Request) {
	parts := pathParts(r.URL.Path, "/api/v1/flags")

	switch {
	case len(parts) == 0 && r.Method == http.MethodPost:
		h.fileFlag(w, r)
	case len(parts) == 0 && r.Method == http.MethodGet:
		h.listFlags(w, r)
	case len(parts) == 2 && parts[1] == "resolve" && r.Method == http.MethodPost:
		h.resolveFlag(w, r, parts[0])
	default:
		methodNotAllowed(w)
	}
}

// fileFlag handles POST /api/v1/flags
func (h *Handler) fileFlag(w http.ResponseWriter, r *http.Request) {
	principal, err := utils.RequireAuthentication(r)
	if err != nil {
		utils.RespondWithAPIError(w, err)
		return
	}

	var req models.FileFlagRequest
	if !decodeJSONBody(w, r, &req) {
		return
	}

	response, err := h.flagService.File(r.Context(), principal, &req)
	if err != nil {
		utils.RespondWithAPIError(w, err)
		return
	}
	utils.RespondWithSuccess(w, http.StatusCreated, response)
}

// listFlags handles GET /api/v1/flags, the moderation queue
func (h *Handler) listFlags(w http.ResponseWriter, r *http.Request) {
	if _, err := utils.RequireMinimumRole(r, models.RoleModerator); err != nil {
		utils.RespondWithAPIError(w, err)
		return
	}

	var status *models.FlagStatus
	if value := r.URL.Query().Get("status"); value != "" {
		s := models.FlagStatus(value)
		status = &s
	}

	responses, err := h.flagService.GetFlags(r.Context(), status)
	if err != nil {
		utils.RespondWithAPIError(w, err)
		return
	}
	utils.RespondWithSuccess(w, http.StatusOK, responses)
}

// resolveFlag handles POST /api/v1/flags/{id}/resolve
func (h *Handler) resolveFlag(w http.ResponseWriter, r *http.Request, flagID string) {
	principal, err := utils.RequireMinimumRole(r, models.RoleModerator)
	if err != nil {
		utils.RespondWithAPIError(w, err)
		return
	}

	var req models.ResolveFlagRequest
	if !decodeJSONBody(w, r, &req) {
		return
	}

	response, err := h.flagService.Resolve(r.Context(), principal, flagID, &req)
	if err != nil {
		utils.RespondWithAPIError(w, err)
		return
	}
	utils.RespondWithSuccess(w, http.StatusOK, response)
}
