package handlers

import (
	"net/http"

	"github.com/ga-dictionary/api-server-go/models"
	apierrors "github.com/ga-dictionary/api-server-go/pkg/errors"
	"github.com/ga-dictionary/api-server-go/utils"
)

// handleWords handles the public dictionary read surface
func (h *Handler) handleWords(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}

	parts := pathParts(r.URL.Path, "/api/dictionary/words")

	switch len(parts) {
	case 0:
		// GET /api/dictionary/words?q=&page=&pageSize=
		response, err := h.wordService.GetWords(r.Context(),
			r.URL.Query().Get("q"),
			queryInt(r, "page", 1),
			queryInt(r, "pageSize", models.DefaultPageSize))
		if err != nil {
			utils.RespondWithAPIError(w, err)
			return
		}
		utils.RespondWithSuccess(w, http.StatusOK, response)

	case 1:
		// GET /api/dictionary/words/{wordId}
		response, err := h.wordService.GetWord(r.Context(), parts[0])
		if err != nil {
			utils.RespondWithAPIError(w, err)
			return
		}
		utils.RespondWithSuccess(w, http.StatusOK, response)

	default:
		utils.RespondWithError(w, http.StatusNotFound, "Not found")
	}
}

// handlePhonemeSuggestions proxies the grapheme-to-phoneme service. A failing
// or unreachable service degrades to an unsuccessful suggestion, never an
// error response.
func (h *Handler) handlePhonemeSuggestions(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}

	var req models.PhonemeSuggestionRequest
	if !decodeJSONBody(w, r, &req) {
		return
	}
	if req.Text == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "text is required")
		return
	}

	if h.phonemeClient == nil {
		utils.RespondWithSuccess(w, http.StatusOK, models.PhonemeSuggestionResponse{Success: false})
		return
	}

	response, err := h.phonemeClient.GeneratePhonemes(r.Context(), req.Text)
	if err != nil {
		if apierrors.IsType(err, apierrors.ErrorTypeUpstream) {
			utils.RespondWithSuccess(w, http.StatusOK, models.PhonemeSuggestionResponse{Success: false})
			return
		}
		utils.RespondWithAPIError(w, err)
		return
	}

	utils.RespondWithSuccess(w, http.StatusOK, response)
}
