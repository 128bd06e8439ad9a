package utils

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/ga-dictionary/api-server-go/models"
	apierrors "github.com/ga-dictionary/api-server-go/pkg/errors"
)

// AuthContextKey is the key used to store the principal in request context
type AuthContextKey string

const (
	AuthContextKeyPrincipal AuthContextKey = "principal"
)

// ExtractBearerToken extracts the Bearer token from the Authorization header
func ExtractBearerToken(r *http.Request) (string, error) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return "", fmt.Errorf("authorization header is missing")
	}

	if !strings.HasPrefix(authHeader, "Bearer ") {
		return "", fmt.Errorf("authorization header must start with 'Bearer '")
	}

	token := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
	if token == "" {
		return "", fmt.Errorf("bearer token is empty")
	}

	return token, nil
}

// SetPrincipal stores the resolved principal in the request context
func SetPrincipal(ctx context.Context, principal *models.Principal) context.Context {
	return context.WithValue(ctx, AuthContextKeyPrincipal, principal)
}

// PrincipalFromContext retrieves the principal from the context, falling back
// to the anonymous principal when resolution never ran
func PrincipalFromContext(ctx context.Context) *models.Principal {
	principal, ok := ctx.Value(AuthContextKeyPrincipal).(*models.Principal)
	if !ok || principal == nil {
		return models.AnonymousPrincipal()
	}
	return principal
}

// PrincipalFromRequest retrieves the principal for the request
func PrincipalFromRequest(r *http.Request) *models.Principal {
	return PrincipalFromContext(r.Context())
}

// RequireAuthentication returns the principal or an unauthorized error
func RequireAuthentication(r *http.Request) (*models.Principal, error) {
	principal := PrincipalFromRequest(r)
	if !principal.IsAuthenticated() {
		return nil, apierrors.UnauthorizedError("authentication required")
	}
	return principal, nil
}

// RequireMinimumRole checks the monotonic role hierarchy
func RequireMinimumRole(r *http.Request, required models.Role) (*models.Principal, error) {
	principal, err := RequireAuthentication(r)
	if err != nil {
		return nil, err
	}
	if !principal.HasMinimumRole(required) {
		return nil, apierrors.PermissionError()
	}
	return principal, nil
}

// RequireAnyRole checks set membership; used where the hierarchy deliberately
// does not apply (user administration admits MODERATOR and ADMIN only)
func RequireAnyRole(r *http.Request, roles ...models.Role) (*models.Principal, error) {
	principal, err := RequireAuthentication(r)
	if err != nil {
		return nil, err
	}
	if !principal.HasAnyRole(roles...) {
		return nil, apierrors.PermissionError()
	}
	return principal, nil
}
