package ports

import (
	"context"

	"github.com/fincount/counting-api/internal/core/domain"
)

// UserRepository defines persistence operations for user accounts.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	// FindDefaultOwner returns the first user with the Admin role, falling
	// back to any existing user. ErrUserNotFound when the table is empty.
	FindDefaultOwner(ctx context.Context) (*domain.User, error)
}
