package service

import (
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/campuskit/provisioning-system/internal/core/domain"
)

func TestRowReader_NumbersRowsByFileLine(t *testing.T) {
	file := `username,full_name,email
alice,Alice A,alice@x.com
bob,Bob B,bob@x.com
`
	rr, err := newRowReader(strings.NewReader(file))
	if err != nil {
		t.Fatalf("header rejected: %v", err)
	}

	first, err := rr.Next()
	if err != nil {
		t.Fatalf("first row: %v", err)
	}
	if first.RowNumber != 2 || first.Username != "alice" {
		t.Fatalf("header is line 1, first data row must be 2: %+v", first)
	}

	second, err := rr.Next()
	if err != nil {
		t.Fatalf("second row: %v", err)
	}
	if second.RowNumber != 3 || second.Username != "bob" {
		t.Fatalf("unexpected second row: %+v", second)
	}

	if _, err := rr.Next(); err != io.EOF {
		t.Fatalf("expected EOF, got %v", err)
	}
}

func TestRowReader_MissingColumnsFailFast(t *testing.T) {
	_, err := newRowReader(strings.NewReader("username,role\nalice,student\n"))
	if !errors.Is(err, domain.ErrMalformedFile) {
		t.Fatalf("expected ErrMalformedFile, got %v", err)
	}
	msg := err.Error()
	if !strings.Contains(msg, "full_name") || !strings.Contains(msg, "email") {
		t.Fatalf("error should name every missing column: %q", msg)
	}
}

func TestRowReader_HeaderIsCaseInsensitive(t *testing.T) {
	file := "Username, Full_Name ,EMAIL\nalice,Alice A,alice@x.com\n"
	rr, err := newRowReader(strings.NewReader(file))
	if err != nil {
		t.Fatalf("header rejected: %v", err)
	}
	row, err := rr.Next()
	if err != nil {
		t.Fatalf("row: %v", err)
	}
	if row.Username != "alice" || row.FullName != "Alice A" || row.Email != "alice@x.com" {
		t.Fatalf("columns not resolved: %+v", row)
	}
}

func TestRowReader_OptionalColumnsDefaultEmpty(t *testing.T) {
	rr, err := newRowReader(strings.NewReader("username,full_name,email\nalice,Alice A,alice@x.com\n"))
	if err != nil {
		t.Fatalf("header rejected: %v", err)
	}
	row, err := rr.Next()
	if err != nil {
		t.Fatalf("row: %v", err)
	}
	if row.Role != "" || row.Password != "" {
		t.Fatalf("absent optional columns must be empty: %+v", row)
	}
}

func TestRowReader_EmptyInputRejected(t *testing.T) {
	_, err := newRowReader(strings.NewReader(""))
	if !errors.Is(err, domain.ErrMalformedFile) {
		t.Fatalf("expected ErrMalformedFile for empty input, got %v", err)
	}
}

func TestRowReader_RaggedRowIsStructural(t *testing.T) {
	file := "username,full_name,email\nalice,Alice A,alice@x.com,extra,fields\n"
	rr, err := newRowReader(strings.NewReader(file))
	if err != nil {
		t.Fatalf("header rejected: %v", err)
	}
	if _, err := rr.Next(); !errors.Is(err, domain.ErrMalformedFile) {
		t.Fatalf("expected ErrMalformedFile for ragged row, got %v", err)
	}
}
