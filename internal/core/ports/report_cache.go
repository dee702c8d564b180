package ports

import "context"

// ReportCache stores finished import reports for later re-fetch by import id.
// Best effort: the import pipeline treats cache failures as non-fatal.
type ReportCache interface {
	Put(ctx context.Context, report *ImportReport) error
	// Get returns domain.ErrReportNotFound for unknown or expired ids.
	Get(ctx context.Context, importID string) (*ImportReport, error)
}
