package models

// Role represents a user role in the dictionary
type Role string

const (
	RoleUser        Role = "USER"
	RoleContributor Role = "CONTRIBUTOR"
	RoleModerator   Role = "MODERATOR"
	RoleExpert      Role = "EXPERT"
	RoleAdmin       Role = "ADMIN"
)

// roleOrder is the fixed role hierarchy. Access gated at a role is granted to
// every role ordered at or above it.
var roleOrder = map[Role]int{
	RoleUser:        1,
	RoleContributor: 2,
	RoleModerator:   3,
	RoleExpert:      4,
	RoleAdmin:       5,
}

// Order returns the hierarchy position of the role, or 0 for an unknown role
func (r Role) Order() int {
	return roleOrder[r]
}

// IsValid reports whether the role is one of the known roles
func (r Role) IsValid() bool {
	_, ok := roleOrder[r]
	return ok
}

// AtLeast reports whether the role sits at or above required in the hierarchy
func (r Role) AtLeast(required Role) bool {
	return r.Order() >= required.Order()
}

// String returns the role as a string
func (r Role) String() string {
	return string(r)
}

// ContributionType represents the kind of change a contribution proposes
type ContributionType string

const (
	ContributionTypeAddWord      ContributionType = "ADD_WORD"
	ContributionTypeUpdateWord   ContributionType = "UPDATE_WORD"
	ContributionTypeDeleteWord   ContributionType = "DELETE_WORD"
	ContributionTypeAddPhoneme   ContributionType = "ADD_PHONEME"
	ContributionTypeAddMeaning   ContributionType = "ADD_MEANING"
	ContributionTypeAddUsage     ContributionType = "ADD_USAGE"
	ContributionTypeCorrectError ContributionType = "CORRECT_ERROR"
)

// IsValid reports whether the contribution type is known
func (t ContributionType) IsValid() bool {
	switch t {
	case ContributionTypeAddWord, ContributionTypeUpdateWord, ContributionTypeDeleteWord,
		ContributionTypeAddPhoneme, ContributionTypeAddMeaning, ContributionTypeAddUsage,
		ContributionTypeCorrectError:
		return true
	}
	return false
}

// RequiresTargetWord reports whether the type must reference an existing entry
func (t ContributionType) RequiresTargetWord() bool {
	return t != ContributionTypeAddWord
}

// ContributionStatus represents the review state of a contribution
type ContributionStatus string

const (
	ContributionStatusPending     ContributionStatus = "PENDING"
	ContributionStatusApproved    ContributionStatus = "APPROVED"
	ContributionStatusRejected    ContributionStatus = "REJECTED"
	ContributionStatusNeedsReview ContributionStatus = "NEEDS_REVIEW"
)

// IsTerminal reports whether the status permits no further transitions
func (s ContributionStatus) IsTerminal() bool {
	return s == ContributionStatusApproved || s == ContributionStatusRejected
}

// IsReviewDecision reports whether the status is a valid reviewer decision
func (s ContributionStatus) IsReviewDecision() bool {
	return s == ContributionStatusApproved || s == ContributionStatusRejected || s == ContributionStatusNeedsReview
}

// FlagReason represents why an entry was reported
type FlagReason string

const (
	FlagReasonIncorrectMeaning     FlagReason = "INCORRECT_MEANING"
	FlagReasonIncorrectPhoneme     FlagReason = "INCORRECT_PHONEME"
	FlagReasonInappropriateContent FlagReason = "INAPPROPRIATE_CONTENT"
	FlagReasonDuplicateEntry       FlagReason = "DUPLICATE_ENTRY"
	FlagReasonSpam                 FlagReason = "SPAM"
	FlagReasonOther                FlagReason = "OTHER"
)

// IsValid reports whether the flag reason is known
func (r FlagReason) IsValid() bool {
	switch r {
	case FlagReasonIncorrectMeaning, FlagReasonIncorrectPhoneme, FlagReasonInappropriateContent,
		FlagReasonDuplicateEntry, FlagReasonSpam, FlagReasonOther:
		return true
	}
	return false
}

// FlagStatus represents the review state of a flag
type FlagStatus string

const (
	FlagStatusOpen      FlagStatus = "OPEN"
	FlagStatusReviewed  FlagStatus = "REVIEWED"
	FlagStatusResolved  FlagStatus = "RESOLVED"
	FlagStatusDismissed FlagStatus = "DISMISSED"
)

// IsTerminal reports whether the flag status permits no further transitions
func (s FlagStatus) IsTerminal() bool {
	return s == FlagStatusResolved || s == FlagStatusDismissed
}

// IsResolution reports whether the status is a valid reviewer resolution
func (s FlagStatus) IsResolution() bool {
	return s == FlagStatusReviewed || s == FlagStatusResolved || s == FlagStatusDismissed
}

// CompletionStatus is derived from phoneme and meaning presence
type CompletionStatus string

const (
	CompletionStatusComplete   CompletionStatus = "COMPLETE"
	CompletionStatusIncomplete CompletionStatus = "INCOMPLETE"
)

// Field length constraints
const (
	MaxWordLength         = 255
	MaxPhonemeLength      = 512
	MaxMeaningLength      = 2000
	MaxUsageLength        = 2000
	MaxNotesLength        = 2000
	MinFlagDescription    = 10
	MaxFlagDescription    = 2000
	DefaultPageSize       = 20
	MaxPageSize           = 100
	ReputationPerApproval = 10
)
