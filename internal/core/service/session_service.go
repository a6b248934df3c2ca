package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/fincount/counting-api/internal/core/domain"
	"github.com/fincount/counting-api/internal/core/ports"
)

const (
	// The listing reports a fixed pagination label for client
	// compatibility; it does not window results.
	listPage  = 1
	listLimit = 100
)

// IdempotencyStore abstracts the replay-detection store (Redis). A key that
// was seen before maps back to the session id it created.
type IdempotencyStore interface {
	Lookup(ctx context.Context, key string) (string, error)
	Store(ctx context.Context, key, sessionID string) error
}

// SessionService implements session ingestion and CRUD. Ingestion is
// unauthenticated by design: the mobile client syncs counts collected
// offline without a token, so the owning user is resolved server-side.
type SessionService struct {
	sessions ports.SessionRepository
	batches  ports.BatchRepository
	users    ports.UserRepository
	idem     IdempotencyStore
	logger   zerolog.Logger

	// defaultOwnerID, when configured, pins the owner for sessions posted
	// without a userId. Otherwise the first Admin (or any user) is looked
	// up once and cached.
	defaultOwnerID string
	ownerMu        sync.Mutex
	resolvedOwner  string
}

func NewSessionService(
	sessions ports.SessionRepository,
	batches ports.BatchRepository,
	users ports.UserRepository,
	idem IdempotencyStore,
	defaultOwnerID string,
	logger zerolog.Logger,
) *SessionService {
	return &SessionService{
		sessions:       sessions,
		batches:        batches,
		users:          users,
		idem:           idem,
		defaultOwnerID: defaultOwnerID,
		logger:         logger,
	}
}

func (s *SessionService) List(ctx context.Context) (*ports.SessionList, error) {
	sessions, err := s.sessions.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	return &ports.SessionList{
		Sessions: sessions,
		Total:    len(sessions),
		Page:     listPage,
		Limit:    listLimit,
	}, nil
}

// Create validates the input, resolves the owning user, auto-creates the
// parent batch when it does not exist yet, and persists the session. A
// batch auto-created in the same request is removed again if the session
// insert fails, so no half-written state survives the call.
func (s *SessionService) Create(ctx context.Context, input ports.CreateSessionInput) (*domain.Session, error) {
	if err := validateSessionFields(input.Species, input.Location, input.Counts); err != nil {
		return nil, err
	}

	if input.IdempotencyKey != "" && s.idem != nil {
		if existing := s.replay(ctx, input.IdempotencyKey); existing != nil {
			return existing, nil
		}
	}

	owner, err := s.resolveOwner(ctx, input.UserID)
	if err != nil {
		return nil, err
	}

	batchCreated, err := s.ensureBatch(ctx, input.BatchID, owner.ID)
	if err != nil {
		return nil, err
	}

	session := &domain.Session{
		ID:        uuid.NewString(),
		BatchID:   input.BatchID,
		UserID:    owner.ID,
		Species:   domain.Species(input.Species),
		Location:  domain.Location(input.Location),
		Notes:     input.Notes,
		Counts:    input.Counts,
		Timestamp: input.Timestamp,
		ImageURL:  input.ImageURL,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.sessions.Create(ctx, session); err != nil {
		if batchCreated {
			if delErr := s.batches.Delete(ctx, input.BatchID); delErr != nil {
				s.logger.Error().Err(delErr).Str("batch_id", input.BatchID).Msg("failed to roll back auto-created batch")
			}
		}
		s.logger.Error().Err(err).Str("batch_id", input.BatchID).Msg("failed to create session")
		return nil, err
	}

	if input.IdempotencyKey != "" && s.idem != nil {
		if err := s.idem.Store(ctx, input.IdempotencyKey, session.ID); err != nil {
			s.logger.Warn().Err(err).Str("session_id", session.ID).Msg("failed to record idempotency key")
		}
	}

	s.logger.Info().
		Str("session_id", session.ID).
		Str("batch_id", session.BatchID).
		Str("user_id", session.UserID).
		Bool("batch_auto_created", batchCreated).
		Msg("session created")

	return session, nil
}

func (s *SessionService) GetByBatch(ctx context.Context, userID, batchID string) ([]*domain.Session, error) {
	return s.sessions.ListByBatchForUser(ctx, batchID, userID)
}

// Update applies only the fields present in the input; nil fields keep
// their prior values.
func (s *SessionService) Update(ctx context.Context, userID, sessionID string, input ports.UpdateSessionInput) (*domain.Session, error) {
	session, err := s.sessions.FindByIDForUser(ctx, sessionID, userID)
	if err != nil {
		return nil, err
	}

	species := string(session.Species)
	if input.Species != nil {
		species = *input.Species
	}
	location := string(session.Location)
	if input.Location != nil {
		location = *input.Location
	}
	counts := session.Counts
	if input.Counts != nil {
		counts = input.Counts
	}
	if err := validateSessionFields(species, location, counts); err != nil {
		return nil, err
	}

	session.Species = domain.Species(species)
	session.Location = domain.Location(location)
	session.Counts = counts
	if input.Notes != nil {
		session.Notes = *input.Notes
	}

	if err := s.sessions.Update(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

func (s *SessionService) Delete(ctx context.Context, userID, sessionID string) error {
	if _, err := s.sessions.FindByIDForUser(ctx, sessionID, userID); err != nil {
		return err
	}
	if err := s.sessions.Delete(ctx, sessionID); err != nil {
		return err
	}
	s.logger.Info().Str("session_id", sessionID).Str("user_id", userID).Msg("session deleted")
	return nil
}

// replay returns the session a previously seen idempotency key created, or
// nil when the key is new or the stored session no longer exists. Store
// failures degrade to normal processing.
func (s *SessionService) replay(ctx context.Context, key string) *domain.Session {
	id, err := s.idem.Lookup(ctx, key)
	if err != nil {
		s.logger.Warn().Err(err).Msg("idempotency lookup failed, processing anyway")
		return nil
	}
	if id == "" {
		return nil
	}
	existing, err := s.sessions.FindByID(ctx, id)
	if err != nil {
		return nil
	}
	s.logger.Info().Str("session_id", id).Msg("idempotent replay")
	return existing
}

// resolveOwner picks the user a session belongs to. An explicit userId must
// exist. Without one, the configured default owner wins; otherwise the
// first Admin (or any user) is resolved once and reused for later calls.
func (s *SessionService) resolveOwner(ctx context.Context, userID string) (*domain.User, error) {
	if userID != "" {
		user, err := s.users.FindByID(ctx, userID)
		if err != nil {
			return nil, err
		}
		return user, nil
	}

	if s.defaultOwnerID != "" {
		return s.users.FindByID(ctx, s.defaultOwnerID)
	}

	s.ownerMu.Lock()
	cached := s.resolvedOwner
	s.ownerMu.Unlock()
	if cached != "" {
		if user, err := s.users.FindByID(ctx, cached); err == nil {
			return user, nil
		}
		// cached owner vanished, fall through and re-resolve
	}

	owner, err := s.users.FindDefaultOwner(ctx)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrNoUsersProvisioned
		}
		return nil, err
	}

	s.ownerMu.Lock()
	s.resolvedOwner = owner.ID
	s.ownerMu.Unlock()
	return owner, nil
}

// ensureBatch auto-vivifies the parent batch when the referenced id does
// not exist yet. Reports whether a batch was created by this call.
func (s *SessionService) ensureBatch(ctx context.Context, batchID, ownerID string) (bool, error) {
	_, err := s.batches.FindByID(ctx, batchID)
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, domain.ErrBatchNotFound) {
		return false, err
	}

	now := time.Now().UTC()
	batch := &domain.Batch{
		ID:          batchID,
		Name:        fmt.Sprintf("Auto-created batch %s", shortID(batchID)),
		Description: "Automatically created from session",
		UserID:      ownerID,
		TotalCount:  0,
		IsActive:    true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.batches.Create(ctx, batch); err != nil {
		return false, err
	}

	s.logger.Info().Str("batch_id", batchID).Str("user_id", ownerID).Msg("batch auto-created")
	return true, nil
}

func validateSessionFields(species, location string, counts domain.Counts) error {
	if !domain.Species(species).Valid() {
		return domain.NewValidationError(fmt.Sprintf("species must be one of: %s", domain.AllowedSpecies()))
	}
	if !domain.Location(location).Valid() {
		return domain.NewValidationError(fmt.Sprintf("location must be one of: %s", domain.AllowedLocations()))
	}
	return counts.Validate()
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
