package services

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ga-dictionary/api-server-go/models"
	apierrors "github.com/ga-dictionary/api-server-go/pkg/errors"
)

// ContributionService governs the contribution lifecycle: submission by
// contributors, review by moderators, and the atomic application of approved
// payloads to dictionary entries.
type ContributionService struct {
	db *gorm.DB
}

// NewContributionService creates a new contribution service
func NewContributionService(db *gorm.DB) *ContributionService {
	return &ContributionService{db: db}
}

// nonTerminalStatuses are the states a review may transition away from
var nonTerminalStatuses = []models.ContributionStatus{
	models.ContributionStatusPending,
	models.ContributionStatusNeedsReview,
}

// Submit validates and records a proposed change. Every contribution starts
// in PENDING regardless of type; the submitter's contribution counter is
// incremented in the same transaction.
func (s *ContributionService) Submit(ctx context.Context, principal *models.Principal, req *models.SubmitContributionRequest) (*models.ContributionResponse, error) {
	if !principal.IsAuthenticated() {
		return nil, apierrors.UnauthorizedError("authentication required")
	}
	if err := validateSubmission(req); err != nil {
		return nil, err
	}

	contribution := models.Contribution{
		ContributionID: "con_" + uuid.New().String(),
		WordID:         req.WordID,
		UserID:         principal.UserID,
		Type:           req.Type,
		Status:         models.ContributionStatusPending,
		ProposedData:   req.ProposedData,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if req.WordID != nil {
			var word models.Word
			if err := tx.First(&word, "word_id = ?", *req.WordID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return apierrors.NotFoundError("word")
				}
				return apierrors.DatabaseError("fetch word", err)
			}
			contribution.OriginalData = word.Snapshot()
		}

		if err := tx.Create(&contribution).Error; err != nil {
			return apierrors.DatabaseError("create contribution", err)
		}

		res := tx.Model(&models.User{}).
			Where("user_id = ?", principal.UserID).
			UpdateColumn("contribution_count", gorm.Expr("contribution_count + 1"))
		if res.Error != nil {
			return apierrors.DatabaseError("increment contribution count", res.Error)
		}
		if res.RowsAffected == 0 {
			return apierrors.NotFoundError("user")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	slog.Info("Contribution submitted",
		"contributionId", contribution.ContributionID,
		"type", contribution.Type,
		"userId", principal.UserID)

	return models.NewContributionResponse(&contribution), nil
}

// Review applies a reviewer decision to a non-terminal contribution. The
// terminal transition is guarded by a conditional update on the current
// status: of two racing reviewers exactly one sees rows affected, the other
// gets ConflictError and the entry is mutated at most once. Approval applies
// the proposed payload and credits the submitter inside the same transaction.
func (s *ContributionService) Review(ctx context.Context, reviewer *models.Principal, contributionID string, req *models.ReviewContributionRequest) (*models.ContributionResponse, error) {
	if !reviewer.CanReview() {
		return nil, apierrors.PermissionError()
	}
	if !req.Decision.IsReviewDecision() {
		return nil, apierrors.ValidationError("INVALID_DECISION", "decision must be APPROVED, REJECTED or NEEDS_REVIEW")
	}
	if req.Decision == models.ContributionStatusRejected && models.StringValue(req.Notes) == "" {
		return nil, apierrors.ValidationError("NOTES_REQUIRED", "rejection requires reviewer notes")
	}

	var contribution models.Contribution
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&contribution, "contribution_id = ?", contributionID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apierrors.NotFoundError("contribution")
			}
			return apierrors.DatabaseError("fetch contribution", err)
		}

		if contribution.Status.IsTerminal() {
			return apierrors.ConflictError("contribution has already been reviewed")
		}

		res := tx.Model(&models.Contribution{}).
			Where("contribution_id = ? AND status IN ?", contributionID, nonTerminalStatuses).
			Updates(map[string]interface{}{
				"status":         req.Decision,
				"reviewer_notes": req.Notes,
				"reviewed_by":    reviewer.UserID,
			})
		if res.Error != nil {
			return apierrors.DatabaseError("update contribution status", res.Error)
		}
		if res.RowsAffected == 0 {
			// A concurrent review won the transition
			return apierrors.ConflictError("contribution has already been reviewed")
		}

		contribution.Status = req.Decision
		contribution.ReviewerNotes = req.Notes
		contribution.ReviewedBy = models.StringPtr(reviewer.UserID)

		if req.Decision != models.ContributionStatusApproved {
			return nil
		}

		if err := applyContribution(tx, &contribution); err != nil {
			return err
		}

		res = tx.Model(&models.User{}).
			Where("user_id = ?", contribution.UserID).
			UpdateColumns(map[string]interface{}{
				"approval_count": gorm.Expr("approval_count + 1"),
				"reputation":     gorm.Expr("reputation + ?", models.ReputationPerApproval),
			})
		if res.Error != nil {
			return apierrors.DatabaseError("credit submitter", res.Error)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	slog.Info("Contribution reviewed",
		"contributionId", contribution.ContributionID,
		"decision", req.Decision,
		"reviewerId", reviewer.UserID)

	return models.NewContributionResponse(&contribution), nil
}

// GetContribution retrieves a contribution by ID
func (s *ContributionService) GetContribution(ctx context.Context, contributionID string) (*models.ContributionResponse, error) {
	var contribution models.Contribution
	if err := s.db.WithContext(ctx).First(&contribution, "contribution_id = ?", contributionID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierrors.NotFoundError("contribution")
		}
		return nil, apierrors.DatabaseError("fetch contribution", err)
	}
	return models.NewContributionResponse(&contribution), nil
}

// GetContributions lists contributions, optionally filtered by status and submitter
func (s *ContributionService) GetContributions(ctx context.Context, status *models.ContributionStatus, userID *string) ([]models.ContributionResponse, error) {
	query := s.db.WithContext(ctx).Model(&models.Contribution{})
	if status != nil {
		query = query.Where("status = ?", *status)
	}
	if userID != nil && *userID != "" {
		query = query.Where("user_id = ?", *userID)
	}

	var contributions []models.Contribution
	if err := query.Order("created_at DESC").Find(&contributions).Error; err != nil {
		return nil, apierrors.DatabaseError("fetch contributions", err)
	}

	responses := make([]models.ContributionResponse, 0, len(contributions))
	for i := range contributions {
		responses = append(responses, *models.NewContributionResponse(&contributions[i]))
	}
	return responses, nil
}

// applyContribution mutates the target entry according to the contribution
// type and recomputes the derived completion status. Runs inside the review
// transaction so an approval is never observable half-applied.
func applyContribution(tx *gorm.DB, c *models.Contribution) error {
	switch c.Type {
	case models.ContributionTypeAddWord:
		word := models.Word{
			WordID:       "word_" + uuid.New().String(),
			Word:         models.StringValue(c.ProposedData.Word),
			Phoneme:      c.ProposedData.Phoneme,
			Meaning:      models.StringValue(c.ProposedData.Meaning),
			PartOfSpeech: c.ProposedData.PartOfSpeech,
			ExampleUsage: c.ProposedData.ExampleUsage,
		}
		word.CompletionStatus = word.ComputeCompletionStatus()
		if err := tx.Create(&word).Error; err != nil {
			return apierrors.DatabaseError("create word", err)
		}
		c.WordID = models.StringPtr(word.WordID)
		return nil

	case models.ContributionTypeDeleteWord:
		res := tx.Delete(&models.Word{}, "word_id = ?", *c.WordID)
		if res.Error != nil {
			return apierrors.DatabaseError("delete word", res.Error)
		}
		if res.RowsAffected == 0 {
			// The entry was removed by another approved contribution
			return apierrors.ConflictError("target entry no longer exists")
		}
		return nil

	default:
		// Merge types: UPDATE_WORD, ADD_PHONEME, ADD_MEANING, ADD_USAGE, CORRECT_ERROR
		var word models.Word
		if err := tx.First(&word, "word_id = ?", *c.WordID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apierrors.ConflictError("target entry no longer exists")
			}
			return apierrors.DatabaseError("fetch word", err)
		}

		if c.ProposedData.Word != nil {
			word.Word = *c.ProposedData.Word
		}
		if c.ProposedData.Phoneme != nil {
			word.Phoneme = c.ProposedData.Phoneme
		}
		if c.ProposedData.Meaning != nil {
			word.Meaning = *c.ProposedData.Meaning
		}
		if c.ProposedData.PartOfSpeech != nil {
			word.PartOfSpeech = c.ProposedData.PartOfSpeech
		}
		if c.ProposedData.ExampleUsage != nil {
			word.ExampleUsage = c.ProposedData.ExampleUsage
		}
		word.CompletionStatus = word.ComputeCompletionStatus()

		if err := tx.Save(&word).Error; err != nil {
			return apierrors.DatabaseError("update word", err)
		}
		return nil
	}
}

// validateSubmission checks a submission payload is well-formed for its type
func validateSubmission(req *models.SubmitContributionRequest) error {
	if !req.Type.IsValid() {
		return apierrors.ValidationError("INVALID_TYPE", "unknown contribution type")
	}

	data := req.ProposedData
	if err := validatePayloadLengths(&data); err != nil {
		return err
	}

	if req.Type.RequiresTargetWord() {
		if req.WordID == nil || *req.WordID == "" {
			return apierrors.ValidationError("WORD_ID_REQUIRED", "contribution type requires a target word")
		}
	} else if req.WordID != nil {
		return apierrors.ValidationError("WORD_ID_NOT_ALLOWED", "ADD_WORD must not reference an existing word")
	}

	switch req.Type {
	case models.ContributionTypeAddWord:
		if models.StringValue(data.Word) == "" {
			return apierrors.ValidationError("WORD_REQUIRED", "word text is required")
		}
		if models.StringValue(data.Phoneme) == "" && models.StringValue(data.Meaning) == "" {
			return apierrors.ValidationError("CONTENT_REQUIRED", "at least one of phoneme or meaning is required")
		}
	case models.ContributionTypeAddPhoneme:
		if models.StringValue(data.Phoneme) == "" {
			return apierrors.ValidationError("PHONEME_REQUIRED", "phoneme is required")
		}
	case models.ContributionTypeAddMeaning:
		if models.StringValue(data.Meaning) == "" {
			return apierrors.ValidationError("MEANING_REQUIRED", "meaning is required")
		}
	case models.ContributionTypeAddUsage:
		if models.StringValue(data.ExampleUsage) == "" {
			return apierrors.ValidationError("USAGE_REQUIRED", "example usage is required")
		}
	case models.ContributionTypeUpdateWord, models.ContributionTypeCorrectError:
		if data.Word == nil && data.Phoneme == nil && data.Meaning == nil &&
			data.PartOfSpeech == nil && data.ExampleUsage == nil {
			return apierrors.ValidationError("EMPTY_UPDATE", "at least one field must be provided")
		}
	}

	return nil
}

// validatePayloadLengths enforces field length constraints
func validatePayloadLengths(data *models.WordPayload) error {
	if data.Word != nil && len(*data.Word) > models.MaxWordLength {
		return apierrors.ValidationError("WORD_TOO_LONG", "word exceeds maximum length")
	}
	if data.Phoneme != nil && len(*data.Phoneme) > models.MaxPhonemeLength {
		return apierrors.ValidationError("PHONEME_TOO_LONG", "phoneme exceeds maximum length")
	}
	if data.Meaning != nil && len(*data.Meaning) > models.MaxMeaningLength {
		return apierrors.ValidationError("MEANING_TOO_LONG", "meaning exceeds maximum length")
	}
	if data.ExampleUsage != nil && len(*data.ExampleUsage) > models.MaxUsageLength {
		return apierrors.ValidationError("USAGE_TOO_LONG", "example usage exceeds maximum length")
	}
	return nil
}
