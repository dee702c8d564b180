package service

import (
	"context"
	"crypto/rand"
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog"

	"github.com/campuskit/provisioning-system/internal/core/domain"
	"github.com/campuskit/provisioning-system/internal/core/ports"
)

type importService struct {
	store    ports.UserStore
	notifier ports.WelcomeNotifier
	reports  ports.ReportCache
	log      zerolog.Logger
}

// NewImportService returns the batch import coordinator. The store owns the
// transaction boundary; the notifier and report cache sit outside it.
func NewImportService(
	store ports.UserStore,
	notifier ports.WelcomeNotifier,
	reports ports.ReportCache,
	log zerolog.Logger,
) ports.ImportService {
	return &importService{
		store:    store,
		notifier: notifier,
		reports:  reports,
		log:      log,
	}
}

// ImportUsers runs the whole pipeline for one uploaded file.
func (s *importService) ImportUsers(ctx context.Context, file io.Reader) (*ports.ImportReport, error) {
	// 1. Header precondition: a file missing required columns is rejected
	// before any transactional work starts.
	rows, err := newRowReader(file)
	if err != nil {
		return nil, err
	}

	agg := &batchAggregator{}

	// 2. One transaction for the whole batch. Any error returned from the
	// callback rolls back every staged insert; commit happens only when at
	// least one row was created, so an all-duplicate or all-invalid batch
	// leaves no transactional footprint.
	err = s.store.RunBatch(ctx, func(ctx context.Context, tx ports.BatchTx) (bool, error) {
		// Consistent snapshot of persisted identities, read inside the
		// same transaction the inserts run in.
		existing, err := tx.LoadAllUsers(ctx)
		if err != nil {
			return false, fmt.Errorf("load user snapshot: %w", err)
		}
		index := newDuplicateIndex(existing)

		for {
			row, err := rows.Next()
			if err == io.EOF {
				break
			}
			if err != nil {
				return false, err
			}
			agg.total++

			// Row-local outcome: validation failure.
			row, reason := validateRow(row)
			if reason != "" {
				agg.addFailed(row, reason)
				continue
			}

			// Row-local outcome: duplicate against persisted state or an
			// earlier row of this same batch.
			if ref, status, dup := index.findConflict(row); dup {
				agg.addSkipped(row, status, ref)
				continue
			}

			creds, err := provisionCredentials(row.Password)
			if err != nil {
				return false, err
			}

			now := time.Now().UTC()
			user := &domain.User{
				Username:     row.Username,
				FullName:     row.FullName,
				Email:        row.Email,
				PasswordHash: creds.digest,
				Role:         row.Role,
				CreatedAt:    now,
				UpdatedAt:    now,
			}

			// An insert failure here (e.g. a uniqueness race with a
			// concurrent batch) is fatal to the whole batch, unlike the
			// pre-checked row-local outcomes above.
			id, err := tx.InsertUser(ctx, user)
			if err != nil {
				return false, fmt.Errorf("insert row %d: %w", row.RowNumber, err)
			}

			provisioned := domain.ProvisionedUser{
				ID:                id,
				Username:          row.Username,
				Email:             row.Email,
				FullName:          row.FullName,
				Role:              row.Role,
				PlaintextPassword: creds.plaintext,
			}
			// Reserve this identity before the next row is evaluated.
			index.add(provisioned.Ref())
			agg.addCreated(provisioned)
		}

		return len(agg.created) > 0, nil
	})
	if err != nil {
		s.log.Error().Err(err).Int("rows_seen", agg.total).Msg("import batch aborted")
		return nil, err
	}

	// 3. Post-commit side effects only. The notifier is fire-and-forget:
	// it never runs before commit and never after a rollback.
	for _, u := range agg.created {
		s.notifier.Notify(u.Email, u.Username, u.PlaintextPassword)
	}

	report := agg.report(newImportID())

	// Best-effort report caching; a cache failure never fails the import.
	if err := s.reports.Put(ctx, report); err != nil {
		s.log.Warn().Err(err).Str("import_id", report.ImportID).Msg("failed to cache import report")
	}

	s.log.Info().
		Str("import_id", report.ImportID).
		Int("total", report.TotalRecords).
		Int("created", report.SuccessCount()).
		Int("skipped", report.SkippedCount()).
		Int("failed", report.FailedCount()).
		Msg("import batch finished")

	return report, nil
}

// newImportID returns a short unique id in the format IMP-XXXXXXXX.
func newImportID() string {
	b := make([]byte, 4)
	if _, err := rand.Read(b); err != nil {
		// fallback: use current nanoseconds
		return fmt.Sprintf("IMP-%08X", time.Now().UnixNano()&0xFFFFFFFF)
	}
	return fmt.Sprintf("IMP-%08X", b)
}
