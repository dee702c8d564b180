package ports

import (
	"context"

	"github.com/campuskit/provisioning-system/internal/core/domain"
)

// AuthService authenticates operators against the user store.
type AuthService interface {
	Login(ctx context.Context, username, password string) (string, *domain.User, error)
}
