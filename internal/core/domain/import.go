package domain

// Validation reason codes attached to rows rejected by the field validator.
// Each rejected row carries exactly one code (first failing check wins).
const (
	ReasonMissingFields   = "MISSING_FIELDS"
	ReasonInvalidUsername = "INVALID_USERNAME"
	ReasonInvalidEmail    = "INVALID_EMAIL"
	ReasonInvalidRole     = "INVALID_ROLE"
)

// Duplicate conflict statuses. Username is checked before email, so a row
// colliding on both reports the username conflict.
const (
	ConflictUsernameExists = "username exists"
	ConflictEmailExists    = "email exists"
)

// CandidateRow is one parsed line of the import file, numbered by its
// original file line (the header is line 1). Ephemeral: consumed within a
// single loop iteration of the batch coordinator.
type CandidateRow struct {
	RowNumber int
	Username  string
	FullName  string
	Email     string
	Role      string
	Password  string
}

// ProvisionedUser is a freshly created account plus the plaintext password
// handed to the welcome notification. The plaintext is transient: it is
// never persisted, logged, or included in the import report.
type ProvisionedUser struct {
	ID                string
	Username          string
	Email             string
	FullName          string
	Role              string
	PlaintextPassword string
}

// Ref returns the identity snapshot used to reserve this user's username and
// email against later rows of the same batch.
func (p ProvisionedUser) Ref() ExistingUserRef {
	return ExistingUserRef{
		ID:       p.ID,
		Username: p.Username,
		Email:    p.Email,
		FullName: p.FullName,
		Role:     p.Role,
	}
}
