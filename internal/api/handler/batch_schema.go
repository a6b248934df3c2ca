package handler

import (
	"time"

	"github.com/fincount/counting-api/internal/core/domain"
)

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// messageResponse is the envelope for informational results (logout, deletes).
type messageResponse struct {
	Message string `json:"message"`
}

// --- Request / Response types ---

type createBatchRequest struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
	IsActive    *bool  `json:"isActive"`
}

// updateBatchRequest carries a partial update: absent fields stay nil and
// leave the stored value unchanged.
type updateBatchRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	IsActive    *bool   `json:"isActive"`
}

// batchResponse uses the mobile client's camelCase field names; storage
// uses snake_case, so the mapping happens here.
type batchResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	UserID      string    `json:"userId"`
	TotalCount  int       `json:"totalCount"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
	IsActive    bool      `json:"isActive"`
}

type batchListData struct {
	Batches []batchResponse `json:"batches"`
}

type batchListResponse struct {
	Success bool          `json:"success"`
	Data    batchListData `json:"data"`
}

func toBatchResponse(b *domain.Batch) batchResponse {
	return batchResponse{
		ID:          b.ID,
		Name:        b.Name,
		Description: b.Description,
		UserID:      b.UserID,
		TotalCount:  b.TotalCount,
		CreatedAt:   b.CreatedAt.UTC(),
		UpdatedAt:   b.UpdatedAt.UTC(),
		IsActive:    b.IsActive,
	}
}

func toBatchListResponse(batches []*domain.Batch) batchListResponse {
	items := make([]batchResponse, len(batches))
	for i, b := range batches {
		items[i] = toBatchResponse(b)
	}
	return batchListResponse{Success: true, Data: batchListData{Batches: items}}
}
