package services

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ga-dictionary/api-server-go/models"
	apierrors "github.com/ga-dictionary/api-server-go/pkg/errors"
)

// FlagService handles the flag workflow: filing reports against entries and
// resolving them.
type FlagService struct {
	db *gorm.DB
}

// NewFlagService creates a new flag service
func NewFlagService(db *gorm.DB) *FlagService {
	return &FlagService{db: db}
}

// File records a report against an entry. The one-OPEN-flag-per-(word,user)
// invariant is enforced by the store's partial unique index, not by a
// read-then-write check; a constraint violation surfaces as DuplicateError.
func (s *FlagService) File(ctx context.Context, principal *models.Principal, req *models.FileFlagRequest) (*models.FlagResponse, error) {
	if !principal.IsAuthenticated() {
		return nil, apierrors.UnauthorizedError("authentication required")
	}
	if !req.Reason.IsValid() {
		return nil, apierrors.ValidationError("INVALID_REASON", "unknown flag reason")
	}
	description := strings.TrimSpace(req.Description)
	if len(description) < models.MinFlagDescription {
		return nil, apierrors.ValidationErrorWithDetails("DESCRIPTION_TOO_SHORT",
			"description is too short", "minimum length is 10 characters")
	}
	if len(description) > models.MaxFlagDescription {
		return nil, apierrors.ValidationError("DESCRIPTION_TOO_LONG", "description exceeds maximum length")
	}

	var word models.Word
	if err := s.db.WithContext(ctx).First(&word, "word_id = ?", req.WordID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierrors.NotFoundError("word")
		}
		return nil, apierrors.DatabaseError("fetch word", err)
	}

	flag := models.Flag{
		FlagID:      "flag_" + uuid.New().String(),
		WordID:      req.WordID,
		UserID:      principal.UserID,
		Reason:      req.Reason,
		Description: description,
		Status:      models.FlagStatusOpen,
	}
	if err := s.db.WithContext(ctx).Create(&flag).Error; err != nil {
		if isUniqueViolation(err) {
			return nil, apierrors.DuplicateError("an open flag for this word already exists")
		}
		return nil, apierrors.DatabaseError("create flag", err)
	}

	slog.Info("Flag filed",
		"flagId", flag.FlagID,
		"wordId", flag.WordID,
		"reason", flag.Reason,
		"userId", principal.UserID)

	return models.NewFlagResponse(&flag), nil
}

// Resolve applies a reviewer resolution to a flag. RESOLVED and DISMISSED are
// terminal; the transition is guarded by a conditional update so racing
// reviewers cannot both resolve the same flag.
func (s *FlagService) Resolve(ctx context.Context, reviewer *models.Principal, flagID string, req *models.ResolveFlagRequest) (*models.FlagResponse, error) {
	if !reviewer.CanReview() {
		return nil, apierrors.PermissionError()
	}
	if !req.Status.IsResolution() {
		return nil, apierrors.ValidationError("INVALID_STATUS", "status must be REVIEWED, RESOLVED or DISMISSED")
	}

	var flag models.Flag
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&flag, "flag_id = ?", flagID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apierrors.NotFoundError("flag")
			}
			return apierrors.DatabaseError("fetch flag", err)
		}

		if flag.Status.IsTerminal() {
			return apierrors.ConflictError("flag has already been resolved")
		}

		res := tx.Model(&models.Flag{}).
			Where("flag_id = ? AND status IN ?", flagID,
				[]models.FlagStatus{models.FlagStatusOpen, models.FlagStatusReviewed}).
			Updates(map[string]interface{}{
				"status":      req.Status,
				"resolution":  req.Resolution,
				"resolved_by": reviewer.UserID,
			})
		if res.Error != nil {
			return apierrors.DatabaseError("update flag status", res.Error)
		}
		if res.RowsAffected == 0 {
			return apierrors.ConflictError("flag has already been resolved")
		}

		flag.Status = req.Status
		flag.Resolution = req.Resolution
		flag.ResolvedBy = models.StringPtr(reviewer.UserID)
		return nil
	})
	if err != nil {
		return nil, err
	}

	slog.Info("Flag resolved",
		"flagId", flag.FlagID,
		"status", req.Status,
		"reviewerId", reviewer.UserID)

	return models.NewFlagResponse(&flag), nil
}

// GetFlags lists flags for the moderation queue, optionally filtered by status
func (s *FlagService) GetFlags(ctx context.Context, status *models.FlagStatus) ([]models.FlagResponse, error) {
	query := s.db.WithContext(ctx).Model(&models.Flag{})
	if status != nil {
		query = query.Where("status = ?", *status)
	}

	var flags []models.Flag
	if err := query.Order("created_at DESC").Find(&flags).Error; err != nil {
		return nil, apierrors.DatabaseError("fetch flags", err)
	}

	responses := make([]models.FlagResponse, 0, len(flags))
	for i := range flags {
		responses = append(responses, *models.NewFlagResponse(&flags[i]))
	}
	return responses, nil
}

// isUniqueViolation reports whether the error is a uniqueness constraint
// violation, across the GORM translation and both supported dialects.
func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "duplicate key value")
}
