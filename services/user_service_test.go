package services

import (
	"context"
	"fmt"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ga-dictionary/api-server-go/idp"
	"github.com/ga-dictionary/api-server-go/models"
	apierrors "github.com/ga-dictionary/api-server-go/pkg/errors"
)

// fakeUserManager is a canned identity provider management client
type fakeUserManager struct {
	info *idp.UserInfo
	err  error
}

func (f *fakeUserManager) GetUser(ctx context.Context, userID string) (*idp.UserInfo, error) {
	return f.info, f.err
}

func claimsFor(subject string) *models.UserClaims {
	return &models.UserClaims{
		Email: "ama@example.com",
		Name:  "Ama Mensah",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject: subject,
		},
	}
}

func TestResolvePrincipal(t *testing.T) {
	db := setupTestDB(t)
	service := NewUserService(db, nil)

	t.Run("first sign-in creates the record with default role", func(t *testing.T) {
		principal, err := service.ResolvePrincipal(context.Background(), claimsFor("idp-sub-1"))
		require.NoError(t, err)
		assert.True(t, principal.Authenticated)
		assert.Equal(t, models.RoleUser, principal.Role)
		assert.Equal(t, "ama@example.com", principal.Email)

		var count int64
		require.NoError(t, db.Model(&models.User{}).Where("idp_user_id = ?", "idp-sub-1").Count(&count).Error)
		assert.EqualValues(t, 1, count)
	})

	t.Run("repeat sign-in resolves the same user", func(t *testing.T) {
		first, err := service.ResolvePrincipal(context.Background(), claimsFor("idp-sub-2"))
		require.NoError(t, err)

		second, err := service.ResolvePrincipal(context.Background(), claimsFor("idp-sub-2"))
		require.NoError(t, err)
		assert.Equal(t, first.UserID, second.UserID)
	})

	t.Run("role changes survive re-resolution", func(t *testing.T) {
		principal, err := service.ResolvePrincipal(context.Background(), claimsFor("idp-sub-3"))
		require.NoError(t, err)

		_, err = service.UpdateUserRole(context.Background(), principal.UserID, &models.UpdateUserRoleRequest{
			Role: models.RoleModerator,
		})
		require.NoError(t, err)

		resolved, err := service.ResolvePrincipal(context.Background(), claimsFor("idp-sub-3"))
		require.NoError(t, err)
		assert.Equal(t, models.RoleModerator, resolved.Role)
		assert.True(t, resolved.CanReview())
	})
}

func TestGetUser(t *testing.T) {
	db := setupTestDB(t)

	t.Run("without a management client", func(t *testing.T) {
		service := NewUserService(db, nil)
		principal := createTestUser(t, db, models.RoleContributor)

		response, err := service.GetUser(context.Background(), principal.UserID)
		require.NoError(t, err)
		assert.Equal(t, principal.UserID, response.UserID)
	})

	t.Run("profile enrichment from the provider", func(t *testing.T) {
		service := NewUserService(db, &fakeUserManager{
			info: &idp.UserInfo{ID: "x", Email: "fresh@example.com", Name: "Fresh Name"},
		})
		principal := createTestUser(t, db, models.RoleUser)

		response, err := service.GetUser(context.Background(), principal.UserID)
		require.NoError(t, err)
		assert.Equal(t, "fresh@example.com", response.Email)
		assert.Equal(t, "Fresh Name", response.Name)
	})

	t.Run("provider failure does not fail the lookup", func(t *testing.T) {
		service := NewUserService(db, &fakeUserManager{err: fmt.Errorf("scim endpoint down")})
		principal := createTestUser(t, db, models.RoleUser)

		response, err := service.GetUser(context.Background(), principal.UserID)
		require.NoError(t, err)
		assert.Equal(t, "test@example.com", response.Email)
	})

	t.Run("missing user is not found", func(t *testing.T) {
		service := NewUserService(db, nil)
		_, err := service.GetUser(context.Background(), "usr_missing")
		assert.True(t, apierrors.IsType(err, apierrors.ErrorTypeNotFound))
	})
}

func TestGetAllUsers(t *testing.T) {
	db := setupTestDB(t)
	service := NewUserService(db, nil)

	low := createTestUser(t, db, models.RoleUser)
	high := createTestUser(t, db, models.RoleContributor)
	require.NoError(t, db.Model(&models.User{}).Where("user_id = ?", high.UserID).
		UpdateColumn("reputation", 50).Error)

	users, err := service.GetAllUsers(context.Background())
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, high.UserID, users[0].UserID)
	assert.Equal(t, low.UserID, users[1].UserID)
}

func TestUpdateUserRole(t *testing.T) {
	db := setupTestDB(t)
	service := NewUserService(db, nil)
	principal := createTestUser(t, db, models.RoleUser)

	response, err := service.UpdateUserRole(context.Background(), principal.UserID, &models.UpdateUserRoleRequest{
		Role: models.RoleExpert,
	})
	require.NoError(t, err)
	assert.Equal(t, models.RoleExpert, response.Role)

	_, err = service.UpdateUserRole(context.Background(), principal.UserID, &models.UpdateUserRoleRequest{
		Role: models.Role("SUPERUSER"),
	})
	assert.True(t, apierrors.IsType(err, apierrors.ErrorTypeValidation))

	_, err = service.UpdateUserRole(context.Background(), "usr_missing", &models.UpdateUserRoleRequest{
		Role: models.RoleAdmin,
	})
	assert.True(t, apierrors.IsType(err, apierrors.ErrorTypeNotFound))
}
