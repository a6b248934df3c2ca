package domain

import "time"

// Batch is a named grouping of counting sessions owned by exactly one user.
type Batch struct {
	ID          string    `bson:"_id"`
	Name        string    `bson:"name"`
	Description string    `bson:"description,omitempty"`
	UserID      string    `bson:"user_id"`
	TotalCount  int       `bson:"total_count"`
	IsActive    bool      `bson:"is_active"`
	CreatedAt   time.Time `bson:"created_at"`
	UpdatedAt   time.Time `bson:"updated_at"`
}
