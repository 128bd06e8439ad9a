package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

var rolesAscending = []Role{RoleUser, RoleContributor, RoleModerator, RoleExpert, RoleAdmin}

func authenticatedWith(role Role) *Principal {
	return &Principal{UserID: "usr_test", Role: role, Authenticated: true}
}

// The hierarchy is monotonic: access granted at a role is granted to every
// role above it, and an unknown role outranks nothing.
func TestHasMinimumRole(t *testing.T) {
	for i, required := range rolesAscending {
		for j, held := range rolesAscending {
			got := authenticatedWith(held).HasMinimumRole(required)
			assert.Equal(t, j >= i, got, "held=%s required=%s", held, required)
		}
	}

	assert.False(t, authenticatedWith(Role("SUPERUSER")).HasMinimumRole(RoleUser))
	assert.False(t, AnonymousPrincipal().HasMinimumRole(RoleUser))
}

// Set membership is not a hierarchy check: EXPERT outranks MODERATOR but is
// not in the {ADMIN, MODERATOR} administration set.
func TestHasAnyRole(t *testing.T) {
	adminSet := []Role{RoleAdmin, RoleModerator}

	assert.True(t, authenticatedWith(RoleAdmin).HasAnyRole(adminSet...))
	assert.True(t, authenticatedWith(RoleModerator).HasAnyRole(adminSet...))
	assert.False(t, authenticatedWith(RoleExpert).HasAnyRole(adminSet...))
	assert.False(t, authenticatedWith(RoleContributor).HasAnyRole(adminSet...))
	assert.False(t, AnonymousPrincipal().HasAnyRole(adminSet...))
}

func TestIsAdmin(t *testing.T) {
	assert.True(t, authenticatedWith(RoleAdmin).IsAdmin())
	for _, role := range []Role{RoleUser, RoleContributor, RoleModerator, RoleExpert} {
		assert.False(t, authenticatedWith(role).IsAdmin(), "role %s", role)
	}
	assert.False(t, (&Principal{Role: RoleAdmin}).IsAdmin(), "unauthenticated admin role")
}

func TestCanReview(t *testing.T) {
	assert.False(t, authenticatedWith(RoleContributor).CanReview())
	assert.True(t, authenticatedWith(RoleModerator).CanReview())
	assert.True(t, authenticatedWith(RoleExpert).CanReview())
	assert.True(t, authenticatedWith(RoleAdmin).CanReview())
}

func TestNewPrincipal(t *testing.T) {
	user := &User{
		UserID:    "usr_1",
		IdpUserID: "idp_1",
		Email:     "a@example.com",
		Role:      RoleContributor,
	}
	principal := NewPrincipal(user)
	assert.True(t, principal.Authenticated)
	assert.Equal(t, RoleContributor, principal.Role)

	// Unknown stored role degrades to the default, never to elevated access
	user.Role = Role("CORRUPTED")
	principal = NewPrincipal(user)
	assert.Equal(t, RoleUser, principal.Role)
}
