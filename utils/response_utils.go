package utils

import (
	"encoding/json"
	"log/slog"
	"net/http"

	apierrors "github.com/ga-dictionary/api-server-go/pkg/errors"
)

// RespondWithError sends an error response
func RespondWithError(w http.ResponseWriter, statusCode int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	errorResponse := map[string]interface{}{
		"error": message,
		"code":  http.StatusText(statusCode),
	}

	if err := json.NewEncoder(w).Encode(errorResponse); err != nil {
		slog.Error("Failed to encode error response", "error", err)
	}
}

// RespondWithSuccess sends a success response
func RespondWithSuccess(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("Failed to encode success response", "error", err)
	}
}

// RespondWithAPIError maps a service error to a structured HTTP response.
// Unknown errors become opaque 500s so internals never leak.
func RespondWithAPIError(w http.ResponseWriter, err error) {
	apiErr := apierrors.GetAPIError(err)
	if apiErr == nil {
		slog.Error("Unhandled error in request", "error", err)
		RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(apiErr.HTTPStatus)

	response := map[string]interface{}{
		"error": apiErr,
	}
	if encodeErr := json.NewEncoder(w).Encode(response); encodeErr != nil {
		slog.Error("Failed to encode error response", "error", encodeErr)
	}
}
