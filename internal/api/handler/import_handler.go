package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/campuskit/provisioning-system/internal/api/metrics"
	"github.com/campuskit/provisioning-system/internal/core/ports"
)

// templateCSV documents the expected input shape for bulk imports.
const templateCSV = `username,full_name,email,role,password
jdoe,Jane Doe,jane.doe@example.org,student,
msmith,Mark Smith,mark.smith@example.org,teacher,ChangeMe123
`

// ImportHandler handles bulk user provisioning uploads.
type ImportHandler struct {
	importService ports.ImportService
	reports       ports.ReportCache
	log           zerolog.Logger
}

func NewImportHandler(importService ports.ImportService, reports ports.ReportCache, log zerolog.Logger) *ImportHandler {
	return &ImportHandler{importService: importService, reports: reports, log: log}
}

// Upload handles POST /v1/users/import. It runs the batch pipeline on the
// uploaded CSV file and returns the three-way outcome report.
//
// @Summary      Bulk-import users from a CSV file
// @Tags         import
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        file  formData  file  true  "CSV file (username,full_name,email[,role][,password])"
// @Success      200   {object}  importReportResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Failure      500   {object}  errorResponse
// @Router       /v1/users/import [post]
func (h *ImportHandler) Upload(c echo.Context) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "missing file upload")
	}

	src, err := fileHeader.Open()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "unreadable file upload")
	}
	defer src.Close()

	start := time.Now()
	report, err := h.importService.ImportUsers(c.Request().Context(), src)
	if err != nil {
		metrics.ImportBatchesTotal.WithLabelValues("error").Inc()
		return err
	}
	metrics.ImportDuration.Observe(time.Since(start).Seconds())
	h.observeOutcomes(report)

	return c.JSON(http.StatusOK, toReportResponse(report))
}

// Template handles GET /v1/users/import/template. It serves the CSV
// template with example rows.
//
// @Summary      Download the import CSV template
// @Tags         import
// @Produce      text/csv
// @Security     BearerAuth
// @Success      200  {string}  string
// @Router       /v1/users/import/template [get]
func (h *ImportHandler) Template(c echo.Context) error {
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="user_import_template.csv"`)
	return c.Blob(http.StatusOK, "text/csv", []byte(templateCSV))
}

// Report handles GET /v1/users/import/:id and re-fetches a cached report.
//
// @Summary      Fetch a previously produced import report
// @Tags         import
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Import id"
// @Success      200  {object}  importReportResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/users/import/{id} [get]
func (h *ImportHandler) Report(c echo.Context) error {
	report, err := h.reports.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toReportResponse(report))
}

func (h *ImportHandler) observeOutcomes(report *ports.ImportReport) {
	if report.SuccessCount() > 0 {
		metrics.ImportBatchesTotal.WithLabelValues("committed").Inc()
	} else {
		metrics.ImportBatchesTotal.WithLabelValues("rolled_back").Inc()
	}
	metrics.ImportRowsTotal.WithLabelValues("created").Add(float64(report.SuccessCount()))
	metrics.ImportRowsTotal.WithLabelValues("failed").Add(float64(report.FailedCount()))
	metrics.ImportRowsTotal.WithLabelValues("skipped").Add(float64(report.SkippedCount()))
	for _, rec := range report.Created {
		metrics.UsersCreatedTotal.WithLabelValues(rec.Role).Inc()
	}
}
