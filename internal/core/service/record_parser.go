package service

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/campuskit/provisioning-system/internal/core/domain"
)

// Import file columns. username, full_name and email are mandatory in the
// header; role and password are optional per row.
const (
	colUsername = "username"
	colFullName = "full_name"
	colEmail    = "email"
	colRole     = "role"
	colPassword = "password"
)

var requiredColumns = []string{colUsername, colFullName, colEmail}

// rowReader turns a raw CSV stream into a lazy, single-pass sequence of
// candidate rows numbered by original file line (the header is line 1).
type rowReader struct {
	csv  *csv.Reader
	cols map[string]int
	line int
}

// newRowReader reads and validates the header before any row is processed.
// Missing required columns reject the whole file up front.
func newRowReader(file io.Reader) (*rowReader, error) {
	r := csv.NewReader(file)
	r.TrimLeadingSpace = true

	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("%w: unreadable header: %v", domain.ErrMalformedFile, err)
	}

	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[strings.ToLower(strings.TrimSpace(name))] = i
	}

	var missing []string
	for _, name := range requiredColumns {
		if _, ok := cols[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: missing required columns: %s",
			domain.ErrMalformedFile, strings.Join(missing, ", "))
	}

	return &rowReader{csv: r, cols: cols, line: 1}, nil
}

// Next returns the next candidate row, io.EOF at end of input, or a
// structural error for rows the CSV layer cannot parse.
func (rr *rowReader) Next() (domain.CandidateRow, error) {
	record, err := rr.csv.Read()
	if err == io.EOF {
		return domain.CandidateRow{}, io.EOF
	}
	if err != nil {
		return domain.CandidateRow{}, fmt.Errorf("%w: %v", domain.ErrMalformedFile, err)
	}

	rr.line++
	return domain.CandidateRow{
		RowNumber: rr.line,
		Username:  rr.field(record, colUsername),
		FullName:  rr.field(record, colFullName),
		Email:     rr.field(record, colEmail),
		Role:      rr.field(record, colRole),
		Password:  rr.field(record, colPassword),
	}, nil
}

func (rr *rowReader) field(record []string, name string) string {
	i, ok := rr.cols[name]
	if !ok || i >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[i])
}
