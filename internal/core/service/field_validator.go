package service

import (
	"regexp"
	"strings"

	"github.com/campuskit/provisioning-system/internal/core/domain"
)

var (
	usernameRE = regexp.MustCompile(`^[a-zA-Z0-9._-]{3,32}$`)
	emailRE    = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
)

// validateRow runs the per-row shape checks in a fixed order, stopping at the
// first failure so every rejected row carries a single reason code. On
// success it returns the normalized row: fields trimmed, role defaulted.
func validateRow(row domain.CandidateRow) (domain.CandidateRow, string) {
	row.Username = strings.TrimSpace(row.Username)
	row.FullName = strings.TrimSpace(row.FullName)
	row.Email = strings.TrimSpace(row.Email)
	row.Role = strings.ToLower(strings.TrimSpace(row.Role))

	if row.Username == "" || row.FullName == "" || row.Email == "" {
		return row, domain.ReasonMissingFields
	}
	if !usernameRE.MatchString(row.Username) {
		return row, domain.ReasonInvalidUsername
	}
	if !emailRE.MatchString(row.Email) {
		return row, domain.ReasonInvalidEmail
	}
	if row.Role == "" {
		row.Role = domain.DefaultRole
	}
	if !domain.ValidRole(row.Role) {
		return row, domain.ReasonInvalidRole
	}
	return row, ""
}
