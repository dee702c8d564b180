package ports

import (
	"context"

	"github.com/campuskit/provisioning-system/internal/core/domain"
)

// UserRepository defines the non-transactional read side of user persistence.
type UserRepository interface {
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
}
