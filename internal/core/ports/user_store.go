package ports

import (
	"context"

	"github.com/campuskit/provisioning-system/internal/core/domain"
)

// BatchTx exposes the persistence operations available inside one import
// transaction. Both calls share the transaction's consistent view.
type BatchTx interface {
	// LoadAllUsers returns the identity snapshot of every persisted user.
	LoadAllUsers(ctx context.Context) ([]domain.ExistingUserRef, error)

	// InsertUser stages a new user inside the transaction and returns its id.
	// A uniqueness violation surfaces as domain.ErrUserExists.
	InsertUser(ctx context.Context, user *domain.User) (string, error)
}

// UserStore owns the transaction boundary for batch imports.
type UserStore interface {
	// RunBatch executes fn inside a single transaction. The transaction is
	// committed only when fn returns commit=true with a nil error; any other
	// outcome rolls back everything staged through the BatchTx.
	RunBatch(ctx context.Context, fn func(ctx context.Context, tx BatchTx) (commit bool, err error)) error
}
