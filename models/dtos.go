package models

import "time"

// SubmitContributionRequest is the payload for submitting a contribution
type SubmitContributionRequest struct {
	Type         ContributionType `json:"type"`
	WordID       *string          `json:"wordId,omitempty"`
	ProposedData WordPayload      `json:"proposedData"`
}

// ReviewContributionRequest is the payload for a reviewer decision
type ReviewContributionRequest struct {
	Decision ContributionStatus `json:"decision"`
	Notes    *string            `json:"notes,omitempty"`
}

// ContributionResponse is the API representation of a contribution
type ContributionResponse struct {
	ContributionID string             `json:"contributionId"`
	WordID         *string            `json:"wordId,omitempty"`
	UserID         string             `json:"userId"`
	Type           ContributionType   `json:"type"`
	Status         ContributionStatus `json:"status"`
	OriginalData   WordPayload        `json:"originalData"`
	ProposedData   WordPayload        `json:"proposedData"`
	ReviewerNotes  *string            `json:"reviewerNotes,omitempty"`
	ReviewedBy     *string            `json:"reviewedBy,omitempty"`
	CreatedAt      string             `json:"createdAt"`
	UpdatedAt      string             `json:"updatedAt"`
}

// NewContributionResponse builds a response from a contribution record
func NewContributionResponse(c *Contribution) *ContributionResponse {
	return &ContributionResponse{
		ContributionID: c.ContributionID,
		WordID:         c.WordID,
		UserID:         c.UserID,
		Type:           c.Type,
		Status:         c.Status,
		OriginalData:   c.OriginalData,
		ProposedData:   c.ProposedData,
		ReviewerNotes:  c.ReviewerNotes,
		ReviewedBy:     c.ReviewedBy,
		CreatedAt:      c.CreatedAt.Format(time.RFC3339),
		UpdatedAt:      c.UpdatedAt.Format(time.RFC3339),
	}
}

// FileFlagRequest is the payload for reporting a problem with an entry
type FileFlagRequest struct {
	WordID      string     `json:"wordId"`
	Reason      FlagReason `json:"reason"`
	Description string     `json:"description"`
}

// ResolveFlagRequest is the payload for a reviewer flag resolution
type ResolveFlagRequest struct {
	Status     FlagStatus `json:"status"`
	Resolution *string    `json:"resolution,omitempty"`
}

// FlagResponse is the API representation of a flag
type FlagResponse struct {
	FlagID      string     `json:"flagId"`
	WordID      string     `json:"wordId"`
	UserID      string     `json:"userId"`
	Reason      FlagReason `json:"reason"`
	Description string     `json:"description"`
	Status      FlagStatus `json:"status"`
	Resolution  *string    `json:"resolution,omitempty"`
	ResolvedBy  *string    `json:"resolvedBy,omitempty"`
	CreatedAt   string     `json:"createdAt"`
	UpdatedAt   string     `json:"updatedAt"`
}

// NewFlagResponse builds a response from a flag record
func NewFlagResponse(f *Flag) *FlagResponse {
	return &FlagResponse{
		FlagID:      f.FlagID,
		WordID:      f.WordID,
		UserID:      f.UserID,
		Reason:      f.Reason,
		Description: f.Description,
		Status:      f.Status,
		Resolution:  f.Resolution,
		ResolvedBy:  f.ResolvedBy,
		CreatedAt:   f.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   f.UpdatedAt.Format(time.RFC3339),
	}
}

// WordResponse is the API representation of a dictionary entry
type WordResponse struct {
	WordID           string           `json:"wordId"`
	Word             string           `json:"word"`
	Phoneme          *string          `json:"phoneme,omitempty"`
	Meaning          string           `json:"meaning"`
	PartOfSpeech     *string          `json:"partOfSpeech,omitempty"`
	ExampleUsage     *string          `json:"exampleUsage,omitempty"`
	CompletionStatus CompletionStatus `json:"completionStatus"`
	CreatedAt        string           `json:"createdAt"`
	UpdatedAt        string           `json:"updatedAt"`
}

// NewWordResponse builds a response from a word record
func NewWordResponse(w *Word) *WordResponse {
	return &WordResponse{
		WordID:           w.WordID,
		Word:             w.Word,
		Phoneme:          w.Phoneme,
		Meaning:          w.Meaning,
		PartOfSpeech:     w.PartOfSpeech,
		ExampleUsage:     w.ExampleUsage,
		CompletionStatus: w.CompletionStatus,
		CreatedAt:        w.CreatedAt.Format(time.RFC3339),
		UpdatedAt:        w.UpdatedAt.Format(time.RFC3339),
	}
}

// WordListResponse is a paginated word listing
type WordListResponse struct {
	Words    []WordResponse `json:"words"`
	Total    int64          `json:"total"`
	Page     int            `json:"page"`
	PageSize int            `json:"pageSize"`
}

// UserResponse is the API representation of a user
type UserResponse struct {
	UserID            string `json:"userId"`
	IdpUserID         string `json:"idpUserId"`
	Email             string `json:"email"`
	Name              string `json:"name"`
	Role              Role   `json:"role"`
	ContributionCount int    `json:"contributionCount"`
	ApprovalCount     int    `json:"approvalCount"`
	Reputation        int    `json:"reputation"`
	CreatedAt         string `json:"createdAt"`
	UpdatedAt         string `json:"updatedAt"`
}

// NewUserResponse builds a response from a user record
func NewUserResponse(u *User) *UserResponse {
	return &UserResponse{
		UserID:            u.UserID,
		IdpUserID:         u.IdpUserID,
		Email:             u.Email,
		Name:              u.Name,
		Role:              u.Role,
		ContributionCount: u.ContributionCount,
		ApprovalCount:     u.ApprovalCount,
		Reputation:        u.Reputation,
		CreatedAt:         u.CreatedAt.Format(time.RFC3339),
		UpdatedAt:         u.UpdatedAt.Format(time.RFC3339),
	}
}

// UpdateUserRoleRequest is the payload for an admin role change
type UpdateUserRoleRequest struct {
	Role Role `json:"role"`
}

// PhonemeSuggestionRequest is the payload sent to the phoneme suggestion endpoint
type PhonemeSuggestionRequest struct {
	Text string `json:"text"`
}

// WordBreakdownEntry is one word of a phoneme transcription
type WordBreakdownEntry struct {
	Word     string `json:"word"`
	Phonemes string `json:"phonemes"`
}

// PhonemeSuggestionResponse mirrors the grapheme-to-phoneme service response
type PhonemeSuggestionResponse struct {
	Success       bool                 `json:"success"`
	Phonemes      string               `json:"phonemes"`
	WordBreakdown []WordBreakdownEntry `json:"wordBreakdown"`
}
