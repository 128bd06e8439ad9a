package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/ga-dictionary/api-server-go/utils"
)

// pathParts splits the request path after the given prefix into segments
func pathParts(path, prefix string) []string {
	trimmed := strings.Trim(strings.TrimPrefix(path, prefix), "/")
	if trimmed == "" {
		return nil
	}
	return strings.Split(trimmed, "/")
}

// decodeJSONBody decodes the request body into dst, responding with a 400 on
// malformed input. Returns false when a response was already written.
func decodeJSONBody(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return false
	}
	return true
}

// queryInt parses an integer query parameter with a default
func queryInt(r *http.Request, key string, defaultValue int) int {
	if value := r.URL.Query().Get(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

// methodNotAllowed writes the standard 405 response
func methodNotAllowed(w http.ResponseWriter) {
	utils.RespondWithError(w, http.StatusMethodNotAllowed, "Method not allowed")
}
