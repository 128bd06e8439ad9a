package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/ga-dictionary/api-server-go/models"
	"github.com/ga-dictionary/api-server-go/utils"
)

// RouteClass is the authorization category a request path belongs to
type RouteClass string

const (
	RouteClassPublic          RouteClass = "PUBLIC"
	RouteClassAuthPage        RouteClass = "AUTH_PAGE"
	RouteClassAdminOnly       RouteClass = "ADMIN_ONLY"
	RouteClassContributorGate RouteClass = "CONTRIBUTOR_GATE"
	RouteClassProtected       RouteClass = "PROTECTED"
)

// DecisionKind is the outcome of an authorization check
type DecisionKind string

const (
	DecisionAllow    DecisionKind = "ALLOW"
	DecisionRedirect DecisionKind = "REDIRECT"
	DecisionDeny     DecisionKind = "DENY"
)

// Decision is an authorization outcome, with a target for redirects
type Decision struct {
	Kind   DecisionKind
	Target string
}

// SignInPath is where unauthorized page navigation is sent
const SignInPath = "/auth/signin"

var publicExactPaths = map[string]bool{
	"/":       true,
	"/browse": true,
	"/about":  true,
	// The bare contribute index is browsable without signing in; only the
	// nested contribution surfaces sit behind the gate.
	"/contribute": true,
}

var publicPrefixes = []string{
	"/api/dictionary",
	"/api/auth",
}

// ClassifyRoute maps a request path to exactly one RouteClass. It is a pure
// function of the path; evaluation order resolves prefix overlaps so the
// same path always lands in the same class.
func ClassifyRoute(path string) RouteClass {
	if path == "" {
		path = "/"
	}
	if len(path) > 1 {
		path = strings.TrimSuffix(path, "/")
	}

	if publicExactPaths[path] {
		return RouteClassPublic
	}
	for _, prefix := range publicPrefixes {
		if strings.HasPrefix(path, prefix) {
			return RouteClassPublic
		}
	}
	if strings.HasPrefix(path, "/auth") {
		return RouteClassAuthPage
	}
	if strings.HasPrefix(path, "/admin") {
		return RouteClassAdminOnly
	}
	if strings.HasPrefix(path, "/contribute/") {
		return RouteClassContributorGate
	}
	return RouteClassProtected
}

// Authorize evaluates whether the principal may access a route of the given
// class. Rules are checked in precedence order, first match wins. It always
// returns a decision and never errors; anonymous requests carry a distinct
// anonymous principal.
func Authorize(principal *models.Principal, class RouteClass) Decision {
	switch class {
	case RouteClassAuthPage:
		// Signed-in users have no business on the sign-in/sign-up surfaces
		if principal.IsAuthenticated() {
			return Decision{Kind: DecisionRedirect, Target: "/"}
		}
		return Decision{Kind: DecisionAllow}

	case RouteClassAdminOnly:
		// Exactly ADMIN; MODERATOR and EXPERT are redirected like anyone else
		if principal.IsAdmin() {
			return Decision{Kind: DecisionAllow}
		}
		return Decision{Kind: DecisionRedirect, Target: SignInPath}

	case RouteClassContributorGate:
		// Despite the name, any authenticated principal passes; there is no
		// minimum-role check here. Tightening this to CONTRIBUTOR would be a
		// product decision, not a code cleanup.
		if principal.IsAuthenticated() {
			return Decision{Kind: DecisionAllow}
		}
		return Decision{Kind: DecisionRedirect, Target: SignInPath}

	case RouteClassPublic:
		return Decision{Kind: DecisionAllow}

	default: // RouteClassProtected
		if principal.IsAuthenticated() {
			return Decision{Kind: DecisionAllow}
		}
		return Decision{Kind: DecisionDeny}
	}
}

// RouteGuard classifies every inbound request and applies the authorization
// decision before any handler logic runs. Page navigation gets redirects;
// data requests under /api get structured rejections.
func RouteGuard(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if shouldSkipGuard(r.URL.Path) {
			next.ServeHTTP(w, r)
			return
		}

		principal := utils.PrincipalFromRequest(r)
		class := ClassifyRoute(r.URL.Path)
		decision := Authorize(principal, class)

		switch decision.Kind {
		case DecisionAllow:
			next.ServeHTTP(w, r)

		case DecisionRedirect:
			if isAPIPath(r.URL.Path) {
				slog.Warn("Request rejected by route guard",
					"path", r.URL.Path,
					"class", class,
					"authenticated", principal.IsAuthenticated())
				utils.RespondWithError(w, http.StatusUnauthorized, "Authentication required")
				return
			}
			http.Redirect(w, r, decision.Target, http.StatusFound)

		default: // DecisionDeny
			if isAPIPath(r.URL.Path) {
				utils.RespondWithError(w, http.StatusUnauthorized, "Authentication required")
				return
			}
			http.Redirect(w, r, SignInPath, http.StatusFound)
		}
	})
}

// shouldSkipGuard exempts operational endpoints from route classification
func shouldSkipGuard(path string) bool {
	skipPaths := []string{
		"/health",
		"/debug",
		"/metrics",
		"/favicon.ico",
	}

	for _, skipPath := range skipPaths {
		if strings.HasPrefix(path, skipPath) {
			return true
		}
	}
	return false
}

// isAPIPath reports whether the path is a data endpoint rather than page navigation
func isAPIPath(path string) bool {
	return strings.HasPrefix(path, "/api/") || strings.HasPrefix(path, "/internal/")
}
