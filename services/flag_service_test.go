package services

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ga-dictionary/api-server-go/models"
	apierrors "github.com/ga-dictionary/api-server-go/pkg/errors"
)

func TestFileFlag(t *testing.T) {
	db := setupTestDB(t)
	service := NewFlagService(db)
	reporter := createTestUser(t, db, models.RoleUser)
	word := createTestWord(t, db, "tsele", "tsɛlɛ", "to carry")

	t.Run("valid flag opens", func(t *testing.T) {
		response, err := service.File(context.Background(), reporter, &models.FileFlagRequest{
			WordID:      word.WordID,
			Reason:      models.FlagReasonIncorrectMeaning,
			Description: "the meaning given here is wrong",
		})
		require.NoError(t, err)
		assert.Equal(t, models.FlagStatusOpen, response.Status)
		assert.Equal(t, reporter.UserID, response.UserID)
	})

	t.Run("second open flag on the same word is a duplicate", func(t *testing.T) {
		_, err := service.File(context.Background(), reporter, &models.FileFlagRequest{
			WordID:      word.WordID,
			Reason:      models.FlagReasonSpam,
			Description: "reporting this entry a second time",
		})
		assert.True(t, apierrors.IsType(err, apierrors.ErrorTypeDuplicate), "expected duplicate error, got %v", err)
	})

	t.Run("another user may flag the same word", func(t *testing.T) {
		other := createTestUser(t, db, models.RoleContributor)
		_, err := service.File(context.Background(), other, &models.FileFlagRequest{
			WordID:      word.WordID,
			Reason:      models.FlagReasonIncorrectPhoneme,
			Description: "the phoneme does not match local usage",
		})
		assert.NoError(t, err)
	})

	t.Run("anonymous reporter is rejected", func(t *testing.T) {
		_, err := service.File(context.Background(), models.AnonymousPrincipal(), &models.FileFlagRequest{
			WordID:      word.WordID,
			Reason:      models.FlagReasonOther,
			Description: "anonymous reports are not accepted",
		})
		assert.True(t, apierrors.IsType(err, apierrors.ErrorTypeUnauthorized))
	})

	t.Run("unknown reason is rejected", func(t *testing.T) {
		_, err := service.File(context.Background(), reporter, &models.FileFlagRequest{
			WordID:      word.WordID,
			Reason:      models.FlagReason("I_DISAGREE"),
			Description: "this is not a recognized reason",
		})
		assert.True(t, apierrors.IsType(err, apierrors.ErrorTypeValidation))
	})

	t.Run("short description is rejected", func(t *testing.T) {
		_, err := service.File(context.Background(), reporter, &models.FileFlagRequest{
			WordID:      word.WordID,
			Reason:      models.FlagReasonOther,
			Description: "   bad   ",
		})
		assert.True(t, apierrors.IsType(err, apierrors.ErrorTypeValidation))
	})

	t.Run("oversized description is rejected", func(t *testing.T) {
		_, err := service.File(context.Background(), reporter, &models.FileFlagRequest{
			WordID:      word.WordID,
			Reason:      models.FlagReasonOther,
			Description: strings.Repeat("x", models.MaxFlagDescription+1),
		})
		assert.True(t, apierrors.IsType(err, apierrors.ErrorTypeValidation))
	})

	t.Run("flagging a missing word is not found", func(t *testing.T) {
		_, err := service.File(context.Background(), reporter, &models.FileFlagRequest{
			WordID:      "word_missing",
			Reason:      models.FlagReasonOther,
			Description: "this word does not even exist",
		})
		assert.True(t, apierrors.IsType(err, apierrors.ErrorTypeNotFound))
	})
}

func TestResolveFlag(t *testing.T) {
	db := setupTestDB(t)
	service := NewFlagService(db)
	reporter := createTestUser(t, db, models.RoleUser)
	moderator := createTestUser(t, db, models.RoleModerator)

	fileFlag := func(t *testing.T) *models.FlagResponse {
		t.Helper()
		word := createTestWord(t, db, "w-"+t.Name(), "", "meaning")
		response, err := service.File(context.Background(), reporter, &models.FileFlagRequest{
			WordID:      word.WordID,
			Reason:      models.FlagReasonIncorrectMeaning,
			Description: "the meaning looks incorrect",
		})
		require.NoError(t, err)
		return response
	}

	t.Run("resolution records reviewer and outcome", func(t *testing.T) {
		flag := fileFlag(t)
		resolved, err := service.Resolve(context.Background(), moderator, flag.FlagID, &models.ResolveFlagRequest{
			Status:     models.FlagStatusResolved,
			Resolution: models.StringPtr("meaning corrected via contribution"),
		})
		require.NoError(t, err)
		assert.Equal(t, models.FlagStatusResolved, resolved.Status)
		require.NotNil(t, resolved.ResolvedBy)
		assert.Equal(t, moderator.UserID, *resolved.ResolvedBy)
	})

	t.Run("REVIEWED is an intermediate state", func(t *testing.T) {
		flag := fileFlag(t)
		reviewed, err := service.Resolve(context.Background(), moderator, flag.FlagID, &models.ResolveFlagRequest{
			Status: models.FlagStatusReviewed,
		})
		require.NoError(t, err)
		assert.Equal(t, models.FlagStatusReviewed, reviewed.Status)

		// Still resolvable afterwards
		_, err = service.Resolve(context.Background(), moderator, flag.FlagID, &models.ResolveFlagRequest{
			Status: models.FlagStatusDismissed,
		})
		assert.NoError(t, err)
	})

	t.Run("resolving a terminal flag conflicts", func(t *testing.T) {
		flag := fileFlag(t)
		_, err := service.Resolve(context.Background(), moderator, flag.FlagID, &models.ResolveFlagRequest{
			Status: models.FlagStatusDismissed,
		})
		require.NoError(t, err)

		_, err = service.Resolve(context.Background(), moderator, flag.FlagID, &models.ResolveFlagRequest{
			Status: models.FlagStatusResolved,
		})
		assert.True(t, apierrors.IsType(err, apierrors.ErrorTypeConflict))
	})

	t.Run("resolution frees the reporter to flag again", func(t *testing.T) {
		word := createTestWord(t, db, "refiled", "", "meaning")
		first, err := service.File(context.Background(), reporter, &models.FileFlagRequest{
			WordID:      word.WordID,
			Reason:      models.FlagReasonOther,
			Description: "first report on this entry",
		})
		require.NoError(t, err)

		_, err = service.Resolve(context.Background(), moderator, first.FlagID, &models.ResolveFlagRequest{
			Status: models.FlagStatusResolved,
		})
		require.NoError(t, err)

		_, err = service.File(context.Background(), reporter, &models.FileFlagRequest{
			WordID:      word.WordID,
			Reason:      models.FlagReasonOther,
			Description: "the problem has come back",
		})
		assert.NoError(t, err)
	})

	t.Run("reporter cannot resolve", func(t *testing.T) {
		flag := fileFlag(t)
		_, err := service.Resolve(context.Background(), reporter, flag.FlagID, &models.ResolveFlagRequest{
			Status: models.FlagStatusResolved,
		})
		assert.True(t, apierrors.IsType(err, apierrors.ErrorTypeForbidden))
	})

	t.Run("OPEN is not a valid resolution", func(t *testing.T) {
		flag := fileFlag(t)
		_, err := service.Resolve(context.Background(), moderator, flag.FlagID, &models.ResolveFlagRequest{
			Status: models.FlagStatusOpen,
		})
		assert.True(t, apierrors.IsType(err, apierrors.ErrorTypeValidation))
	})

	t.Run("missing flag is not found", func(t *testing.T) {
		_, err := service.Resolve(context.Background(), moderator, "flag_missing", &models.ResolveFlagRequest{
			Status: models.FlagStatusResolved,
		})
		assert.True(t, apierrors.IsType(err, apierrors.ErrorTypeNotFound))
	})
}

func TestGetFlags(t *testing.T) {
	db := setupTestDB(t)
	service := NewFlagService(db)
	reporter := createTestUser(t, db, models.RoleUser)
	moderator := createTestUser(t, db, models.RoleModerator)

	for i := 0; i < 3; i++ {
		word := createTestWord(t, db, "flagged", "", "meaning")
		_, err := service.File(context.Background(), reporter, &models.FileFlagRequest{
			WordID:      word.WordID,
			Reason:      models.FlagReasonOther,
			Description: "something is off about this entry",
		})
		require.NoError(t, err)
	}

	all, err := service.GetFlags(context.Background(), nil)
	require.NoError(t, err)
	require.Len(t, all, 3)

	_, err = service.Resolve(context.Background(), moderator, all[0].FlagID, &models.ResolveFlagRequest{
		Status: models.FlagStatusDismissed,
	})
	require.NoError(t, err)

	open := models.FlagStatusOpen
	remaining, err := service.GetFlags(context.Background(), &open)
	require.NoError(t, err)
	assert.Len(t, remaining, 2)
}
