package service

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/campuskit/provisioning-system/internal/core/domain"
)

func TestBatchAggregator_ReportRedactsPlaintext(t *testing.T) {
	agg := &batchAggregator{total: 1}
	agg.addCreated(domain.ProvisionedUser{
		ID:                "u1",
		Username:          "alice",
		Email:             "alice@x.com",
		FullName:          "Alice A",
		Role:              domain.RoleStudent,
		PlaintextPassword: "hunter2-secret",
	})

	report := agg.report("IMP-TEST")
	payload, err := json.Marshal(report)
	if err != nil {
		t.Fatalf("marshal report: %v", err)
	}
	if strings.Contains(string(payload), "hunter2-secret") {
		t.Fatalf("plaintext password leaked into the report: %s", payload)
	}
	if report.Created[0].ID != "u1" || report.Created[0].Username != "alice" {
		t.Fatalf("identity fields must survive redaction: %+v", report.Created[0])
	}
}

func TestBatchAggregator_Summary(t *testing.T) {
	agg := &batchAggregator{total: 4}
	agg.addCreated(domain.ProvisionedUser{Username: "a"})
	agg.addCreated(domain.ProvisionedUser{Username: "b"})
	agg.addSkipped(domain.CandidateRow{RowNumber: 4, Username: "c"}, domain.ConflictUsernameExists, domain.ExistingUserRef{ID: "u1"})
	agg.addFailed(domain.CandidateRow{RowNumber: 5, Username: "d"}, domain.ReasonInvalidEmail)

	want := "Imported 2 users; 1 already existed; 1 failed validation"
	if got := agg.summary(); got != want {
		t.Fatalf("summary mismatch:\n got %q\nwant %q", got, want)
	}
}

func TestBatchAggregator_PreservesRowOrder(t *testing.T) {
	agg := &batchAggregator{}
	agg.addFailed(domain.CandidateRow{RowNumber: 2}, domain.ReasonMissingFields)
	agg.addFailed(domain.CandidateRow{RowNumber: 5}, domain.ReasonInvalidRole)
	agg.addSkipped(domain.CandidateRow{RowNumber: 3}, domain.ConflictEmailExists, domain.ExistingUserRef{})
	agg.addSkipped(domain.CandidateRow{RowNumber: 4}, domain.ConflictUsernameExists, domain.ExistingUserRef{})

	report := agg.report("IMP-ORDER")
	if report.Failed[0].Row != 2 || report.Failed[1].Row != 5 {
		t.Fatalf("failed rows out of order: %+v", report.Failed)
	}
	if report.Skipped[0].Row != 3 || report.Skipped[1].Row != 4 {
		t.Fatalf("skipped rows out of order: %+v", report.Skipped)
	}
}
