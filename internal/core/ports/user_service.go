package ports

import (
	"context"

	"github.com/campuskit/provisioning-system/internal/core/domain"
)

// UserService exposes read-side operations on provisioned users.
type UserService interface {
	List(ctx context.Context) ([]domain.User, error)
	Get(ctx context.Context, username string) (*domain.User, error)
}
