package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/campuskit/provisioning-system/internal/core/domain"
	"github.com/campuskit/provisioning-system/internal/core/ports"
)

type stubImportService struct {
	gotFile []byte
	report  *ports.ImportReport
	err     error
}

func (s *stubImportService) ImportUsers(_ context.Context, file io.Reader) (*ports.ImportReport, error) {
	s.gotFile, _ = io.ReadAll(file)
	return s.report, s.err
}

type stubReportCache struct {
	reports map[string]*ports.ImportReport
}

func (c *stubReportCache) Put(_ context.Context, report *ports.ImportReport) error {
	c.reports[report.ImportID] = report
	return nil
}

func (c *stubReportCache) Get(_ context.Context, importID string) (*ports.ImportReport, error) {
	report, ok := c.reports[importID]
	if !ok {
		return nil, domain.ErrReportNotFound
	}
	return report, nil
}

func multipartUpload(t *testing.T, content string) (*http.Request, *httptest.ResponseRecorder) {
	t.Helper()

	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	part, err := w.CreateFormFile("file", "users.csv")
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := part.Write([]byte(content)); err != nil {
		t.Fatalf("write form file: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close multipart writer: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/v1/users/import", &body)
	req.Header.Set(echo.HeaderContentType, w.FormDataContentType())
	return req, httptest.NewRecorder()
}

func sampleReport() *ports.ImportReport {
	return &ports.ImportReport{
		ImportID:     "IMP-0BADF00D",
		TotalRecords: 3,
		Created: []ports.CreatedRecord{
			{ID: "u1", Username: "alice", Email: "alice@x.com", FullName: "Alice A", Role: "student"},
		},
		Failed: []ports.FailedRecord{
			{Row: 3, Username: "", Email: "ghost@x.com", FullName: "Ghost", Error: domain.ReasonMissingFields},
		},
		Skipped: []ports.SkippedRecord{
			{Row: 4, Username: "bob", Email: "bob@x.com", FullName: "Bob B", Status: domain.ConflictUsernameExists,
				Existing: domain.ExistingUserRef{ID: "u0", Username: "bob", Email: "bob@x.com"}},
		},
		Summary: "Imported 1 users; 1 already existed; 1 failed validation",
	}
}

func TestImportHandler_Upload_Success(t *testing.T) {
	e := echo.New()
	stub := &stubImportService{report: sampleReport()}
	h := NewImportHandler(stub, &stubReportCache{reports: map[string]*ports.ImportReport{}}, zerolog.Nop())

	req, rec := multipartUpload(t, "username,full_name,email\nalice,Alice A,alice@x.com\n")
	c := e.NewContext(req, rec)

	if err := h.Upload(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(string(stub.gotFile), "alice@x.com") {
		t.Fatalf("uploaded file not passed to service: %q", stub.gotFile)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["totalRecords"] != float64(3) || resp["successCount"] != float64(1) {
		t.Fatalf("unexpected counts: %+v", resp)
	}
	skipped, ok := resp["skippedRecords"].([]any)
	if !ok || len(skipped) != 1 {
		t.Fatalf("expected one skipped record: %+v", resp["skippedRecords"])
	}
	existing, ok := skipped[0].(map[string]any)["existingUser"].(map[string]any)
	if !ok || existing["id"] != "u0" {
		t.Fatalf("skipped record must name the conflicting user: %+v", skipped[0])
	}
	if strings.Contains(rec.Body.String(), "password") {
		t.Fatalf("report payload must not mention passwords: %s", rec.Body.String())
	}
}

func TestImportHandler_Upload_MissingFile(t *testing.T) {
	e := echo.New()
	stub := &stubImportService{report: sampleReport()}
	h := NewImportHandler(stub, &stubReportCache{reports: map[string]*ports.ImportReport{}}, zerolog.Nop())

	req := httptest.NewRequest(http.MethodPost, "/v1/users/import", strings.NewReader("not-multipart"))
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := h.Upload(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 HTTPError, got %v", err)
	}
	if stub.gotFile != nil {
		t.Fatalf("service must not be called without a file")
	}
}

func TestImportHandler_Upload_ServiceErrorPropagates(t *testing.T) {
	e := echo.New()
	stub := &stubImportService{err: domain.ErrMalformedFile}
	h := NewImportHandler(stub, &stubReportCache{reports: map[string]*ports.ImportReport{}}, zerolog.Nop())

	req, rec := multipartUpload(t, "username\nalice\n")
	c := e.NewContext(req, rec)

	if err := h.Upload(c); !errors.Is(err, domain.ErrMalformedFile) {
		t.Fatalf("expected ErrMalformedFile to propagate, got %v", err)
	}
}

func TestImportHandler_Template(t *testing.T) {
	e := echo.New()
	h := NewImportHandler(&stubImportService{}, &stubReportCache{reports: map[string]*ports.ImportReport{}}, zerolog.Nop())

	req := httptest.NewRequest(http.MethodGet, "/v1/users/import/template", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Template(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	body := rec.Body.String()
	if !strings.HasPrefix(body, "username,full_name,email,role,password") {
		t.Fatalf("template must start with the documented header: %q", body)
	}
	if disp := rec.Header().Get(echo.HeaderContentDisposition); !strings.Contains(disp, "attachment") {
		t.Fatalf("template should download as attachment, got %q", disp)
	}
}

func TestImportHandler_Report_FoundAndMissing(t *testing.T) {
	e := echo.New()
	cache := &stubReportCache{reports: map[string]*ports.ImportReport{}}
	report := sampleReport()
	cache.reports[report.ImportID] = report
	h := NewImportHandler(&stubImportService{}, cache, zerolog.Nop())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(report.ImportID)

	if err := h.Report(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), report.ImportID) {
		t.Fatalf("expected cached report, got %d %s", rec.Code, rec.Body.String())
	}

	c = e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
	c.SetParamNames("id")
	c.SetParamValues("IMP-UNKNOWN")

	if err := h.Report(c); !errors.Is(err, domain.ErrReportNotFound) {
		t.Fatalf("expected ErrReportNotFound, got %v", err)
	}
}
