package handler

import "github.com/campuskit/provisioning-system/internal/core/ports"

// toReportResponse maps the service report to the HTTP payload. Slices are
// always non-nil so empty partitions serialize as [] rather than null.
func toReportResponse(r *ports.ImportReport) importReportResponse {
	resp := importReportResponse{
		ImportID:       r.ImportID,
		TotalRecords:   r.TotalRecords,
		SuccessCount:   r.SuccessCount(),
		FailedCount:    r.FailedCount(),
		SkippedCount:   r.SkippedCount(),
		Summary:        r.Summary,
		SuccessRecords: make([]successRecordJSON, 0, len(r.Created)),
		FailedRecords:  make([]failedRecordJSON, 0, len(r.Failed)),
		SkippedRecords: make([]skippedRecordJSON, 0, len(r.Skipped)),
	}

	for _, rec := range r.Created {
		resp.SuccessRecords = append(resp.SuccessRecords, successRecordJSON{
			ID:       rec.ID,
			Username: rec.Username,
			Email:    rec.Email,
			FullName: rec.FullName,
			Role:     rec.Role,
		})
	}
	for _, rec := range r.Failed {
		resp.FailedRecords = append(resp.FailedRecords, failedRecordJSON{
			Row:      rec.Row,
			Username: rec.Username,
			Email:    rec.Email,
			FullName: rec.FullName,
			Error:    rec.Error,
		})
	}
	for _, rec := range r.Skipped {
		resp.SkippedRecords = append(resp.SkippedRecords, skippedRecordJSON{
			Row:      rec.Row,
			Username: rec.Username,
			Email:    rec.Email,
			FullName: rec.FullName,
			Status:   rec.Status,
			ExistingUser: existingUserJSON{
				ID:       rec.Existing.ID,
				Username: rec.Existing.Username,
				Email:    rec.Existing.Email,
				FullName: rec.Existing.FullName,
				Role:     rec.Existing.Role,
			},
		})
	}

	return resp
}
