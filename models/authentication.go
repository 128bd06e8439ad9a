package models

import (
	"github.com/golang-jwt/jwt/v5"
)

// UserClaims represents the JWT claims issued by the identity provider
type UserClaims struct {
	Email string `json:"email"`
	Name  string `json:"name"`
	jwt.RegisteredClaims
}

// Principal represents the actor behind a request. An anonymous request is a
// distinct Principal value, never a nil pointer.
type Principal struct {
	UserID        string `json:"userId,omitempty"`
	IdpUserID     string `json:"idpUserId,omitempty"`
	Email         string `json:"email,omitempty"`
	Name          string `json:"name,omitempty"`
	Role          Role   `json:"role"`
	Authenticated bool   `json:"authenticated"`
}

// AnonymousPrincipal returns the principal used for unauthenticated requests
func AnonymousPrincipal() *Principal {
	return &Principal{Role: RoleUser, Authenticated: false}
}

// NewPrincipal builds an authenticated principal from a user record
func NewPrincipal(user *User) *Principal {
	role := user.Role
	if !role.IsValid() {
		role = RoleUser
	}
	return &Principal{
		UserID:        user.UserID,
		IdpUserID:     user.IdpUserID,
		Email:         user.Email,
		Name:          user.Name,
		Role:          role,
		Authenticated: true,
	}
}

// IsAuthenticated reports whether the principal is a signed-in user
func (p *Principal) IsAuthenticated() bool {
	return p != nil && p.Authenticated
}

// HasMinimumRole is the monotonic hierarchy check: an authenticated principal
// with role R passes any gate at role <= R.
func (p *Principal) HasMinimumRole(required Role) bool {
	return p.IsAuthenticated() && p.Role.AtLeast(required)
}

// HasAnyRole is a set membership check, not a hierarchy check. User
// administration uses it so that EXPERT, despite outranking MODERATOR in the
// hierarchy, is not admitted.
func (p *Principal) HasAnyRole(roles ...Role) bool {
	if !p.IsAuthenticated() {
		return false
	}
	for _, role := range roles {
		if p.Role == role {
			return true
		}
	}
	return false
}

// IsAdmin reports whether the principal holds exactly the ADMIN role
func (p *Principal) IsAdmin() bool {
	return p.IsAuthenticated() && p.Role == RoleAdmin
}

// CanReview reports whether the principal may review contributions and flags
func (p *Principal) CanReview() bool {
	return p.HasMinimumRole(RoleModerator)
}
