package ports

import (
	"context"
	"io"

	"github.com/campuskit/provisioning-system/internal/core/domain"
)

// CreatedRecord is one successfully provisioned row, redacted of the
// plaintext password before the report leaves the service.
type CreatedRecord struct {
	ID       string
	Username string
	Email    string
	FullName string
	Role     string
}

// FailedRecord is one row rejected by field validation.
type FailedRecord struct {
	Row      int
	Username string
	Email    string
	FullName string
	Error    string
}

// SkippedRecord is one row skipped because its username or email collides
// with a pre-existing user or an earlier row of the same batch. Existing
// names the record it collided with.
type SkippedRecord struct {
	Row      int
	Username string
	Email    string
	FullName string
	Status   string
	Existing domain.ExistingUserRef
}

// ImportReport is the three-way partition of one batch's outcomes, in
// original row order.
type ImportReport struct {
	ImportID     string
	TotalRecords int
	Created      []CreatedRecord
	Failed       []FailedRecord
	Skipped      []SkippedRecord
	Summary      string
}

// SuccessCount returns the number of created rows.
func (r *ImportReport) SuccessCount() int { return len(r.Created) }

// FailedCount returns the number of rows that failed validation.
func (r *ImportReport) FailedCount() int { return len(r.Failed) }

// SkippedCount returns the number of rows skipped as duplicates.
func (r *ImportReport) SkippedCount() int { return len(r.Skipped) }

// ImportService runs the bulk user-provisioning pipeline.
type ImportService interface {
	// ImportUsers parses file as CSV and provisions every valid,
	// non-duplicate row inside one transaction. Structural file problems and
	// unexpected persistence failures return an error with zero rows
	// persisted; per-row validation failures and duplicate conflicts are
	// accumulated into the report instead.
	ImportUsers(ctx context.Context, file io.Reader) (*ImportReport, error)
}
