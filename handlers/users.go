package handlers

import (
	"net/http"

	"github.com/ga-dictionary/api-server-go/models"
	"github.com/ga-dictionary/api-server-go/utils"
)

// handleUsers routes the user administration endpoints
func (h *Handler) handleUsers(w http.ResponseWriter, r *http.Request) {
	parts := pathParts(r.URL.Path, "/api/v1/users")

	switch {
	case len(parts) == 0 && r.Method == http.MethodGet:
		h.listUsers(w, r)
	case len(parts) == 1 && parts[0] == "me" && r.Method == http.MethodGet:
		h.getCurrentUser(w, r)
	case len(parts) == 1 && r.Method == http.MethodGet:
		h.getUser(w, r, parts[0])
	case len(parts) == 2 && parts[1] == "role" && r.Method == http.MethodPut:
		h.updateUserRole(w, r, parts[0])
	default:
		methodNotAllowed(w)
	}
}

// listUsers handles GET /api/v1/users. Restricted to the admin dashboard
// roles, which is an explicit set rather than a rank threshold.
func (h *Handler) listUsers(w http.ResponseWriter, r *http.Request) {
	if _, err := utils.RequireAnyRole(r, models.RoleAdmin, models.RoleModerator); err != nil {
		utils.RespondWithAPIError(w, err)
		return
	}

	responses, err := h.userService.GetAllUsers(r.Context())
	if err != nil {
		utils.RespondWithAPIError(w, err)
		return
	}
	utils.RespondWithSuccess(w, http.StatusOK, responses)
}

// getCurrentUser handles GET /api/v1/users/me
func (h *Handler) getCurrentUser(w http.ResponseWriter, r *http.Request) {
	principal, err := utils.RequireAuthentication(r)
	if err != nil {
		utils.RespondWithAPIError(w, err)
		return
	}

	response, err := h.userService.GetUser(r.Context(), principal.UserID)
	if err != nil {
		utils.RespondWithAPIError(w, err)
		return
	}
	utils.RespondWithSuccess(w, http.StatusOK, response)
}

// getUser handles GET /api/v1/users/{id}
func (h *Handler) getUser(w http.ResponseWriter, r *http.Request, userID string) {
	principal, err := utils.RequireAuthentication(r)
	if err != nil {
		utils.RespondWithAPIError(w, err)
		return
	}

	// Only admins and moderators may look up other users
	if principal.UserID != userID && !principal.HasAnyRole(models.RoleAdmin, models.RoleModerator) {
		utils.RespondWithError(w, http.StatusForbidden, "insufficient permissions")
		return
	}

	response, err := h.userService.GetUser(r.Context(), userID)
	if err != nil {
		utils.RespondWithAPIError(w, err)
		return
	}
	utils.RespondWithSuccess(w, http.StatusOK, response)
}

// updateUserRole handles PUT /api/v1/users/{id}/role. ADMIN only.
func (h *Handler) updateUserRole(w http.ResponseWriter, r *http.Request, userID string) {
	principal, err := utils.RequireAuthentication(r)
	if err != nil {
		utils.RespondWithAPIError(w, err)
		return
	}
	if !principal.IsAdmin() {
		utils.RespondWithError(w, http.StatusForbidden, "insufficient permissions")
		return
	}

	var req models.UpdateUserRoleRequest
	if !decodeJSONBody(w, r, &req) {
		return
	}

	response, err := h.userService.UpdateUserRole(r.Context(), userID, &req)
	if err != nil {
		utils.RespondWithAPIError(w, err)
		return
	}
	utils.RespondWithSuccess(w, http.StatusOK, response)
}
