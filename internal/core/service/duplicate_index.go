package service

import (
	"strings"

	"github.com/campuskit/provisioning-system/internal/core/domain"
)

// duplicateIndex reserves usernames and emails case-insensitively for the
// duration of one batch. It is seeded from the snapshot of persisted users
// and every accepted row is added before the next row is evaluated, so the
// first occurrence within a file wins any in-batch collision.
type duplicateIndex struct {
	byUsername map[string]domain.ExistingUserRef
	byEmail    map[string]domain.ExistingUserRef
}

func newDuplicateIndex(existing []domain.ExistingUserRef) *duplicateIndex {
	ix := &duplicateIndex{
		byUsername: make(map[string]domain.ExistingUserRef, len(existing)),
		byEmail:    make(map[string]domain.ExistingUserRef, len(existing)),
	}
	for _, ref := range existing {
		ix.add(ref)
	}
	return ix
}

// findConflict returns the record the row collides with, if any. Username is
// checked before email so a row colliding on both reports the username.
func (ix *duplicateIndex) findConflict(row domain.CandidateRow) (domain.ExistingUserRef, string, bool) {
	if ref, ok := ix.byUsername[strings.ToLower(row.Username)]; ok {
		return ref, domain.ConflictUsernameExists, true
	}
	if ref, ok := ix.byEmail[strings.ToLower(row.Email)]; ok {
		return ref, domain.ConflictEmailExists, true
	}
	return domain.ExistingUserRef{}, "", false
}

func (ix *duplicateIndex) add(ref domain.ExistingUserRef) {
	ix.byUsername[strings.ToLower(ref.Username)] = ref
	ix.byEmail[strings.ToLower(ref.Email)] = ref
}
