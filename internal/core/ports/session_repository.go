package ports

import (
	"context"

	"github.com/fincount/counting-api/internal/core/domain"
)

// SessionRepository defines persistence operations for counting sessions.
type SessionRepository interface {
	ListAll(ctx context.Context) ([]*domain.Session, error)
	ListByBatchForUser(ctx context.Context, batchID, userID string) ([]*domain.Session, error)
	FindByID(ctx context.Context, id string) (*domain.Session, error)
	FindByIDForUser(ctx context.Context, id, userID string) (*domain.Session, error)
	Create(ctx context.Context, session *domain.Session) error
	Update(ctx context.Context, session *domain.Session) error
	Delete(ctx context.Context, id string) error
	// DeleteByBatch removes every session under batchID (batch cascade).
	DeleteByBatch(ctx context.Context, batchID string) error
}
