package models

// User represents a registered principal. The identity provider owns
// authentication; this row carries the role and the derived counters.
type User struct {
	UserID            string `gorm:"primarykey;column:user_id" json:"userId"`
	IdpUserID         string `gorm:"column:idp_user_id;uniqueIndex;not null" json:"idpUserId"`
	Email             string `gorm:"column:email;not null" json:"email"`
	Name              string `gorm:"column:name" json:"name"`
	Role              Role   `gorm:"column:role;not null;default:'USER'" json:"role"`
	ContributionCount int    `gorm:"column:contribution_count;not null;default:0" json:"contributionCount"`
	ApprovalCount     int    `gorm:"column:approval_count;not null;default:0" json:"approvalCount"`
	Reputation        int    `gorm:"column:reputation;not null;default:0" json:"reputation"`
	BaseModel
}

// TableName sets the table name for GORM
func (User) TableName() string {
	return "users"
}

// Word represents a dictionary entry. Mutated only through an accepted
// contribution, never directly.
type Word struct {
	WordID           string           `gorm:"primarykey;column:word_id" json:"wordId"`
	Word             string           `gorm:"column:word;not null;index" json:"word"`
	Phoneme          *string          `gorm:"column:phoneme" json:"phoneme,omitempty"`
	Meaning          string           `gorm:"column:meaning" json:"meaning"`
	PartOfSpeech     *string          `gorm:"column:part_of_speech" json:"partOfSpeech,omitempty"`
	ExampleUsage     *string          `gorm:"column:example_usage" json:"exampleUsage,omitempty"`
	CompletionStatus CompletionStatus `gorm:"column:completion_status;not null;default:'INCOMPLETE'" json:"completionStatus"`
	BaseModel
}

// TableName sets the table name for GORM
func (Word) TableName() string {
	return "words"
}

// ComputeCompletionStatus derives the completion status: COMPLETE iff phoneme
// and meaning are both non-empty
func (w *Word) ComputeCompletionStatus() CompletionStatus {
	if w.Phoneme != nil && *w.Phoneme != "" && w.Meaning != "" {
		return CompletionStatusComplete
	}
	return CompletionStatusIncomplete
}

// Snapshot captures the current entry fields for a contribution's original data
func (w *Word) Snapshot() WordPayload {
	return WordPayload{
		Word:         StringPtr(w.Word),
		Phoneme:      w.Phoneme,
		Meaning:      StringPtr(w.Meaning),
		PartOfSpeech: w.PartOfSpeech,
		ExampleUsage: w.ExampleUsage,
	}
}

// Contribution represents a proposed change to dictionary content awaiting
// review. Immutable once in a terminal state.
type Contribution struct {
	ContributionID string             `gorm:"primarykey;column:contribution_id" json:"contributionId"`
	WordID         *string            `gorm:"column:word_id;index" json:"wordId,omitempty"`
	UserID         string             `gorm:"column:user_id;not null;index" json:"userId"`
	Type           ContributionType   `gorm:"column:type;not null" json:"type"`
	Status         ContributionStatus `gorm:"column:status;not null;default:'PENDING';index" json:"status"`
	OriginalData   WordPayload        `gorm:"column:original_data;type:jsonb" json:"originalData"`
	ProposedData   WordPayload        `gorm:"column:proposed_data;type:jsonb" json:"proposedData"`
	ReviewerNotes  *string            `gorm:"column:reviewer_notes" json:"reviewerNotes,omitempty"`
	ReviewedBy     *string            `gorm:"column:reviewed_by" json:"reviewedBy,omitempty"`
	BaseModel

	// Relationships
	User User  `gorm:"foreignKey:UserID;references:UserID" json:"-"`
	Word *Word `gorm:"foreignKey:WordID;references:WordID" json:"-"`
}

// TableName sets the table name for GORM
func (Contribution) TableName() string {
	return "contributions"
}

// Flag represents a user-filed report of a problem with an existing entry.
// At most one OPEN flag may exist per (word, user); enforced by a partial
// unique index created in the migration.
type Flag struct {
	FlagID      string     `gorm:"primarykey;column:flag_id" json:"flagId"`
	WordID      string     `gorm:"column:word_id;not null;index" json:"wordId"`
	UserID      string     `gorm:"column:user_id;not null;index" json:"userId"`
	Reason      FlagReason `gorm:"column:reason;not null" json:"reason"`
	Description string     `gorm:"column:description;not null" json:"description"`
	Status      FlagStatus `gorm:"column:status;not null;default:'OPEN';index" json:"status"`
	Resolution  *string    `gorm:"column:resolution" json:"resolution,omitempty"`
	ResolvedBy  *string    `gorm:"column:resolved_by" json:"resolvedBy,omitempty"`
	BaseModel

	// Relationships
	User User `gorm:"foreignKey:UserID;references:UserID" json:"-"`
	Word Word `gorm:"foreignKey:WordID;references:WordID" json:"-"`
}

// TableName sets the table name for GORM
func (Flag) TableName() string {
	return "flags"
}
