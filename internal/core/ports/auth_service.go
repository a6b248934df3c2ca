package ports

import (
	"context"

	"github.com/fincount/counting-api/internal/core/domain"
)

// RegisterInput carries the signup form fields.
type RegisterInput struct {
	FullName        string
	Username        string
	UserType        string
	Password        string
	ConfirmPassword string
}

type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (string, *domain.User, error)
	Login(ctx context.Context, username, password string) (string, *domain.User, error)
}
