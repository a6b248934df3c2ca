// Package seed provisions the default accounts a fresh deployment needs:
// one Admin and one Staff user. Session ingestion depends on at least one
// user existing, so a new install should run this before taking traffic.
package seed

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/fincount/counting-api/internal/core/domain"
)

// UserStore is the subset of the user repository seeding needs.
type UserStore interface {
	Create(ctx context.Context, user *domain.User) error
	CountUsers(ctx context.Context) (int64, error)
}

type account struct {
	fullName string
	username string
	userType string
	password string
}

var defaultAccounts = []account{
	{fullName: "Admin User", username: "admin", userType: domain.RoleAdmin, password: "admin123"},
	{fullName: "Staff User", username: "staff", userType: domain.RoleStaff, password: "staff123"},
}

// Run creates the default accounts unless users already exist. The default
// passwords are for bootstrapping only and must be changed in production.
func Run(ctx context.Context, store UserStore, log zerolog.Logger) error {
	existing, err := store.CountUsers(ctx)
	if err != nil {
		return fmt.Errorf("seed: count users: %w", err)
	}
	if existing > 0 {
		log.Info().Int64("users", existing).Msg("database already has users, skipping seed")
		return nil
	}

	for _, acc := range defaultAccounts {
		hash, err := bcrypt.GenerateFromPassword([]byte(acc.password), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("seed: hash password: %w", err)
		}

		now := time.Now().UTC()
		user := &domain.User{
			ID:           uuid.NewString(),
			FullName:     acc.fullName,
			Username:     acc.username,
			UserType:     acc.userType,
			PasswordHash: string(hash),
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		if err := store.Create(ctx, user); err != nil {
			return fmt.Errorf("seed: create %s: %w", acc.username, err)
		}

		log.Info().Str("username", acc.username).Str("user_type", acc.userType).Msg("seeded user")
	}

	return nil
}
