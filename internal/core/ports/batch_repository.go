package ports

import (
	"context"

	"github.com/fincount/counting-api/internal/core/domain"
)

// BatchRepository defines persistence operations for batches.
type BatchRepository interface {
	ListByUser(ctx context.Context, userID string) ([]*domain.Batch, error)
	// FindByID looks up a batch regardless of owner (used by session
	// auto-vivification, which is not ownership-scoped).
	FindByID(ctx context.Context, id string) (*domain.Batch, error)
	// FindByIDForUser looks up a batch owned by userID.
	// ErrBatchNotFound when missing or owned by someone else.
	FindByIDForUser(ctx context.Context, id, userID string) (*domain.Batch, error)
	Create(ctx context.Context, batch *domain.Batch) error
	Update(ctx context.Context, batch *domain.Batch) error
	Delete(ctx context.Context, id string) error
}
