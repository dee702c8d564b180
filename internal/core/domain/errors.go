package domain

import "errors"

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrUserExists         = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrForbidden          = errors.New("access forbidden")

	// ErrMalformedFile marks a structural problem with the uploaded file
	// (missing required columns, unparseable rows). The whole batch is
	// rejected with zero side effects.
	ErrMalformedFile = errors.New("malformed import file")

	// ErrReportNotFound is returned when a cached import report has expired
	// or never existed.
	ErrReportNotFound = errors.New("import report not found")
)
