package middleware

import (
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/ga-dictionary/api-server-go/utils"
)

// PanicRecovery converts handler panics into 500 responses instead of
// tearing down the connection
func PanicRecovery(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				slog.Error("Panic recovered in handler",
					"panic", rec,
					"path", r.URL.Path,
					"method", r.Method,
					"stack", string(debug.Stack()))
				utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
			}
		}()
		next.ServeHTTP(w, r)
	})
}
