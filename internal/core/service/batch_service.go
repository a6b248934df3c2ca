package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/fincount/counting-api/internal/core/domain"
	"github.com/fincount/counting-api/internal/core/ports"
)

// BatchService implements batch CRUD, always scoped to the owning user.
type BatchService struct {
	batches  ports.BatchRepository
	sessions ports.SessionRepository
	logger   zerolog.Logger
}

func NewBatchService(batches ports.BatchRepository, sessions ports.SessionRepository, logger zerolog.Logger) *BatchService {
	return &BatchService{batches: batches, sessions: sessions, logger: logger}
}

func (s *BatchService) List(ctx context.Context, userID string) ([]*domain.Batch, error) {
	return s.batches.ListByUser(ctx, userID)
}

func (s *BatchService) Create(ctx context.Context, userID string, input ports.CreateBatchInput) (*domain.Batch, error) {
	isActive := true
	if input.IsActive != nil {
		isActive = *input.IsActive
	}

	now := time.Now().UTC()
	batch := &domain.Batch{
		ID:          uuid.NewString(),
		Name:        input.Name,
		Description: input.Description,
		UserID:      userID,
		TotalCount:  0,
		IsActive:    isActive,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.batches.Create(ctx, batch); err != nil {
		s.logger.Error().Err(err).Str("user_id", userID).Msg("failed to create batch")
		return nil, err
	}

	s.logger.Info().Str("batch_id", batch.ID).Str("user_id", userID).Msg("batch created")
	return batch, nil
}

func (s *BatchService) Get(ctx context.Context, userID, batchID string) (*domain.Batch, error) {
	return s.batches.FindByIDForUser(ctx, batchID, userID)
}

// Update applies only the fields present in the input; nil fields keep
// their prior values.
func (s *BatchService) Update(ctx context.Context, userID, batchID string, input ports.UpdateBatchInput) (*domain.Batch, error) {
	batch, err := s.batches.FindByIDForUser(ctx, batchID, userID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		batch.Name = *input.Name
	}
	if input.Description != nil {
		batch.Description = *input.Description
	}
	if input.IsActive != nil {
		batch.IsActive = *input.IsActive
	}
	batch.UpdatedAt = time.Now().UTC()

	if err := s.batches.Update(ctx, batch); err != nil {
		return nil, err
	}
	return batch, nil
}

// Delete removes the batch and cascades removal of its sessions.
func (s *BatchService) Delete(ctx context.Context, userID, batchID string) error {
	if _, err := s.batches.FindByIDForUser(ctx, batchID, userID); err != nil {
		return err
	}

	if err := s.sessions.DeleteByBatch(ctx, batchID); err != nil {
		s.logger.Error().Err(err).Str("batch_id", batchID).Msg("failed to cascade session delete")
		return err
	}
	if err := s.batches.Delete(ctx, batchID); err != nil {
		return err
	}

	s.logger.Info().Str("batch_id", batchID).Str("user_id", userID).Msg("batch deleted")
	return nil
}
