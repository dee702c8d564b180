package handler

// Response shapes for the bulk import endpoints.

type existingUserJSON struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	FullName string `json:"full_name"`
	Role     string `json:"role"`
}

type successRecordJSON struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	FullName string `json:"full_name"`
	Role     string `json:"role"`
}

type failedRecordJSON struct {
	Row      int    `json:"row"`
	Username string `json:"username"`
	Email    string `json:"email"`
	FullName string `json:"full_name"`
	Error    string `json:"error"`
}

type skippedRecordJSON struct {
	Row          int              `json:"row"`
	Username     string           `json:"username"`
	Email        string           `json:"email"`
	FullName     string           `json:"full_name"`
	Status       string           `json:"status"`
	ExistingUser existingUserJSON `json:"existingUser"`
}

type importReportResponse struct {
	ImportID       string              `json:"importId"`
	TotalRecords   int                 `json:"totalRecords"`
	SuccessCount   int                 `json:"successCount"`
	FailedCount    int                 `json:"failedCount"`
	SkippedCount   int                 `json:"skippedCount"`
	Summary        string              `json:"summary"`
	SuccessRecords []successRecordJSON `json:"successRecords"`
	FailedRecords  []failedRecordJSON  `json:"failedRecords"`
	SkippedRecords []skippedRecordJSON `json:"skippedRecords"`
}
