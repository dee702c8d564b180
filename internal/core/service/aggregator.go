package service

import (
	"fmt"

	"github.com/campuskit/provisioning-system/internal/core/domain"
	"github.com/campuskit/provisioning-system/internal/core/ports"
)

// batchAggregator partitions per-row outcomes into the three report lists,
// preserving original file order. Every row lands in exactly one list.
type batchAggregator struct {
	total   int
	created []domain.ProvisionedUser
	failed  []ports.FailedRecord
	skipped []ports.SkippedRecord
}

func (a *batchAggregator) addCreated(user domain.ProvisionedUser) {
	a.created = append(a.created, user)
}

func (a *batchAggregator) addFailed(row domain.CandidateRow, reason string) {
	a.failed = append(a.failed, ports.FailedRecord{
		Row:      row.RowNumber,
		Username: row.Username,
		Email:    row.Email,
		FullName: row.FullName,
		Error:    reason,
	})
}

func (a *batchAggregator) addSkipped(row domain.CandidateRow, status string, existing domain.ExistingUserRef) {
	a.skipped = append(a.skipped, ports.SkippedRecord{
		Row:      row.RowNumber,
		Username: row.Username,
		Email:    row.Email,
		FullName: row.FullName,
		Status:   status,
		Existing: existing,
	})
}

func (a *batchAggregator) summary() string {
	return fmt.Sprintf("Imported %d users; %d already existed; %d failed validation",
		len(a.created), len(a.skipped), len(a.failed))
}

// report builds the externally visible result. Plaintext passwords are
// dropped here: only id and identity fields survive into created records.
func (a *batchAggregator) report(importID string) *ports.ImportReport {
	created := make([]ports.CreatedRecord, 0, len(a.created))
	for _, u := range a.created {
		created = append(created, ports.CreatedRecord{
			ID:       u.ID,
			Username: u.Username,
			Email:    u.Email,
			FullName: u.FullName,
			Role:     u.Role,
		})
	}

	return &ports.ImportReport{
		ImportID:     importID,
		TotalRecords: a.total,
		Created:      created,
		Failed:       append([]ports.FailedRecord(nil), a.failed...),
		Skipped:      append([]ports.SkippedRecord(nil), a.skipped...),
		Summary:      a.summary(),
	}
}
