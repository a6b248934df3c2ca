package ports

import (
	"context"

	"github.com/fincount/counting-api/internal/core/domain"
)

// CreateBatchInput carries the fields for an explicit batch creation.
// IsActive defaults to true when nil.
type CreateBatchInput struct {
	Name        string
	Description string
	IsActive    *bool
}

// UpdateBatchInput applies a partial update: nil fields are left unchanged.
type UpdateBatchInput struct {
	Name        *string
	Description *string
	IsActive    *bool
}

// BatchService defines use-case operations for batches. Every operation is
// scoped to the requesting user's id.
type BatchService interface {
	List(ctx context.Context, userID string) ([]*domain.Batch, error)
	Create(ctx context.Context, userID string, input CreateBatchInput) (*domain.Batch, error)
	Get(ctx context.Context, userID, batchID string) (*domain.Batch, error)
	Update(ctx context.Context, userID, batchID string, input UpdateBatchInput) (*domain.Batch, error)
	Delete(ctx context.Context, userID, batchID string) error
}
