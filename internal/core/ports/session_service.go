package ports

import (
	"context"

	"github.com/fincount/counting-api/internal/core/domain"
)

// CreateSessionInput carries the fields for session ingestion.
// UserID is optional: when empty the service resolves a default owner.
// IdempotencyKey is optional; when set, a replayed key returns the
// previously created session without side effects.
type CreateSessionInput struct {
	BatchID        string
	Species        string
	Location       string
	Notes          string
	Counts         domain.Counts
	Timestamp      string
	ImageURL       string
	UserID         string
	IdempotencyKey string
}

// UpdateSessionInput applies a partial update: nil fields are left unchanged.
type UpdateSessionInput struct {
	Species  *string
	Location *string
	Notes    *string
	Counts   domain.Counts
}

// SessionList is the result of the system-wide listing. Page and Limit are
// fixed labels (1 and 100) reported for client compatibility; the listing
// is not actually windowed.
type SessionList struct {
	Sessions []*domain.Session
	Total    int
	Page     int
	Limit    int
}

// SessionService defines use-case operations for counting sessions.
type SessionService interface {
	List(ctx context.Context) (*SessionList, error)
	Create(ctx context.Context, input CreateSessionInput) (*domain.Session, error)
	GetByBatch(ctx context.Context, userID, batchID string) ([]*domain.Session, error)
	Update(ctx context.Context, userID, sessionID string, input UpdateSessionInput) (*domain.Session, error)
	Delete(ctx context.Context, userID, sessionID string) error
}
