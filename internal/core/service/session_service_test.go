package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/fincount/counting-api/internal/core/domain"
	"github.com/fincount/counting-api/internal/core/ports"
)

type stubBatchRepo struct {
	batches   map[string]*domain.Batch
	createErr error
}

func newStubBatchRepo() *stubBatchRepo {
	return &stubBatchRepo{batches: make(map[string]*domain.Batch)}
}

func (r *stubBatchRepo) ListByUser(_ context.Context, userID string) ([]*domain.Batch, error) {
	out := []*domain.Batch{}
	for _, b := range r.batches {
		if b.UserID == userID {
			clone := *b
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (r *stubBatchRepo) FindByID(_ context.Context, id string) (*domain.Batch, error) {
	if b, ok := r.batches[id]; ok {
		clone := *b
		return &clone, nil
	}
	return nil, domain.ErrBatchNotFound
}

func (r *stubBatchRepo) FindByIDForUser(_ context.Context, id, userID string) (*domain.Batch, error) {
	if b, ok := r.batches[id]; ok && b.UserID == userID {
		clone := *b
		return &clone, nil
	}
	return nil, domain.ErrBatchNotFound
}

func (r *stubBatchRepo) Create(_ context.Context, batch *domain.Batch) error {
	if r.createErr != nil {
		return r.createErr
	}
	clone := *batch
	r.batches[batch.ID] = &clone
	return nil
}

func (r *stubBatchRepo) Update(_ context.Context, batch *domain.Batch) error {
	if _, ok := r.batches[batch.ID]; !ok {
		return domain.ErrBatchNotFound
	}
	clone := *batch
	r.batches[batch.ID] = &clone
	return nil
}

func (r *stubBatchRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.batches[id]; !ok {
		return domain.ErrBatchNotFound
	}
	delete(r.batches, id)
	return nil
}

type stubSessionRepo struct {
	sessions  map[string]*domain.Session
	createErr error
}

func newStubSessionRepo() *stubSessionRepo {
	return &stubSessionRepo{sessions: make(map[string]*domain.Session)}
}

func (r *stubSessionRepo) ListAll(_ context.Context) ([]*domain.Session, error) {
	out := []*domain.Session{}
	for _, s := range r.sessions {
		clone := *s
		out = append(out, &clone)
	}
	return out, nil
}

func (r *stubSessionRepo) ListByBatchForUser(_ context.Context, batchID, userID string) ([]*domain.Session, error) {
	out := []*domain.Session{}
	for _, s := range r.sessions {
		if s.BatchID == batchID && s.UserID == userID {
			clone := *s
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (r *stubSessionRepo) FindByID(_ context.Context, id string) (*domain.Session, error) {
	if s, ok := r.sessions[id]; ok {
		clone := *s
		return &clone, nil
	}
	return nil, domain.ErrSessionNotFound
}

func (r *stubSessionRepo) FindByIDForUser(_ context.Context, id, userID string) (*domain.Session, error) {
	if s, ok := r.sessions[id]; ok && s.UserID == userID {
		clone := *s
		return &clone, nil
	}
	return nil, domain.ErrSessionNotFound
}

func (r *stubSessionRepo) Create(_ context.Context, session *domain.Session) error {
	if r.createErr != nil {
		return r.createErr
	}
	clone := *session
	r.sessions[session.ID] = &clone
	return nil
}

func (r *stubSessionRepo) Update(_ context.Context, session *domain.Session) error {
	if _, ok := r.sessions[session.ID]; !ok {
		return domain.ErrSessionNotFound
	}
	clone := *session
	r.sessions[session.ID] = &clone
	return nil
}

func (r *stubSessionRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.sessions[id]; !ok {
		return domain.ErrSessionNotFound
	}
	delete(r.sessions, id)
	return nil
}

func (r *stubSessionRepo) DeleteByBatch(_ context.Context, batchID string) error {
	for id, s := range r.sessions {
		if s.BatchID == batchID {
			delete(r.sessions, id)
		}
	}
	return nil
}

type stubIdemStore struct {
	keys map[string]string
}

func newStubIdemStore() *stubIdemStore {
	return &stubIdemStore{keys: make(map[string]string)}
}

func (s *stubIdemStore) Lookup(_ context.Context, key string) (string, error) {
	return s.keys[key], nil
}

func (s *stubIdemStore) Store(_ context.Context, key, sessionID string) error {
	s.keys[key] = sessionID
	return nil
}

type sessionFixture struct {
	svc      *SessionService
	users    *stubUserRepo
	batches  *stubBatchRepo
	sessions *stubSessionRepo
	idem     *stubIdemStore
}

func newSessionFixture(defaultOwnerID string) *sessionFixture {
	f := &sessionFixture{
		users:    newStubUserRepo(),
		batches:  newStubBatchRepo(),
		sessions: newStubSessionRepo(),
		idem:     newStubIdemStore(),
	}
	f.svc = NewSessionService(f.sessions, f.batches, f.users, f.idem, defaultOwnerID, zerolog.Nop())
	return f
}

func (f *sessionFixture) addUser(id, userType string) *domain.User {
	u := &domain.User{
		ID:        id,
		FullName:  "User " + id,
		Username:  "user-" + id,
		UserType:  userType,
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}
	f.users.users[id] = u
	f.users.order = append(f.users.order, id)
	return u
}

func createInput(batchID string) ports.CreateSessionInput {
	return ports.CreateSessionInput{
		BatchID:   batchID,
		Species:   "Tilapia",
		Location:  "Cagangohan",
		Notes:     "morning count",
		Counts:    domain.Counts{"alive": 100, "dead": 5},
		Timestamp: "2026-08-30T07:00:00Z",
	}
}

func TestSessionService_Create_AutoVivifiesBatch(t *testing.T) {
	f := newSessionFixture("")
	admin := f.addUser("admin-1", domain.RoleAdmin)

	session, err := f.svc.Create(context.Background(), createInput("bx"))
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if session.UserID != admin.ID {
		t.Fatalf("expected session owned by default admin, got %s", session.UserID)
	}

	batch, ok := f.batches.batches["bx"]
	if !ok {
		t.Fatalf("expected batch bx to be auto-created")
	}
	if batch.UserID != admin.ID {
		t.Fatalf("expected auto-created batch owned by %s, got %s", admin.ID, batch.UserID)
	}
	if !strings.HasPrefix(batch.Name, "Auto-created batch ") {
		t.Fatalf("unexpected synthesized name: %q", batch.Name)
	}
	if len(f.batches.batches) != 1 {
		t.Fatalf("expected exactly one batch, got %d", len(f.batches.batches))
	}
}

func TestSessionService_Create_ExistingBatchUntouched(t *testing.T) {
	f := newSessionFixture("")
	owner := f.addUser("u1", domain.RoleStaff)
	f.batches.batches["bx"] = &domain.Batch{ID: "bx", Name: "Pond A", UserID: owner.ID, IsActive: true}

	input := createInput("bx")
	input.UserID = owner.ID
	if _, err := f.svc.Create(context.Background(), input); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	if f.batches.batches["bx"].Name != "Pond A" {
		t.Fatalf("existing batch must not be overwritten")
	}
}

func TestSessionService_Create_UnknownUser(t *testing.T) {
	f := newSessionFixture("")
	f.addUser("admin-1", domain.RoleAdmin)

	input := createInput("bx")
	input.UserID = "does-not-exist"

	_, err := f.svc.Create(context.Background(), input)
	if !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
	if len(f.batches.batches) != 0 || len(f.sessions.sessions) != 0 {
		t.Fatalf("expected nothing created on unknown user")
	}
}

func TestSessionService_Create_OwnerFallback(t *testing.T) {
	f := newSessionFixture("")
	f.addUser("staff-1", domain.RoleStaff)
	f.addUser("admin-1", domain.RoleAdmin)

	session, err := f.svc.Create(context.Background(), createInput("b1"))
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if session.UserID != "admin-1" {
		t.Fatalf("expected admin preferred as default owner, got %s", session.UserID)
	}
}

func TestSessionService_Create_AnyUserFallback(t *testing.T) {
	f := newSessionFixture("")
	f.addUser("staff-1", domain.RoleStaff)

	session, err := f.svc.Create(context.Background(), createInput("b1"))
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if session.UserID != "staff-1" {
		t.Fatalf("expected any-user fallback, got %s", session.UserID)
	}
}

func TestSessionService_Create_NoUsersProvisioned(t *testing.T) {
	f := newSessionFixture("")

	_, err := f.svc.Create(context.Background(), createInput("b1"))
	if !errors.Is(err, domain.ErrNoUsersProvisioned) {
		t.Fatalf("expected ErrNoUsersProvisioned, got %v", err)
	}
}

func TestSessionService_Create_ConfiguredOwnerWins(t *testing.T) {
	f := newSessionFixture("pinned-1")
	f.addUser("admin-1", domain.RoleAdmin)
	f.addUser("pinned-1", domain.RoleStaff)

	session, err := f.svc.Create(context.Background(), createInput("b1"))
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if session.UserID != "pinned-1" {
		t.Fatalf("expected configured default owner, got %s", session.UserID)
	}
}

func TestSessionService_Create_InvalidSpecies(t *testing.T) {
	f := newSessionFixture("")
	f.addUser("admin-1", domain.RoleAdmin)

	input := createInput("b1")
	input.Species = "Salmon"

	_, err := f.svc.Create(context.Background(), input)
	var ve *domain.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if !strings.Contains(ve.Msg, "Tilapia") || !strings.Contains(ve.Msg, "Bangus (Milkfish)") {
		t.Fatalf("expected allowed values in message, got %q", ve.Msg)
	}
	if len(f.batches.batches) != 0 || len(f.sessions.sessions) != 0 {
		t.Fatalf("expected nothing created on invalid species")
	}
}

func TestSessionService_Create_InvalidLocation(t *testing.T) {
	f := newSessionFixture("")
	f.addUser("admin-1", domain.RoleAdmin)

	input := createInput("b1")
	input.Location = "Northern"

	_, err := f.svc.Create(context.Background(), input)
	var ve *domain.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if !strings.Contains(ve.Msg, "Cagangohan") || !strings.Contains(ve.Msg, "Southern") {
		t.Fatalf("expected allowed values in message, got %q", ve.Msg)
	}
}

func TestSessionService_Create_NegativeCount(t *testing.T) {
	f := newSessionFixture("")
	f.addUser("admin-1", domain.RoleAdmin)

	input := createInput("b1")
	input.Counts = domain.Counts{"alive": -1}

	_, err := f.svc.Create(context.Background(), input)
	var ve *domain.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}

// A batch auto-created for a session that then fails to insert must not
// survive the call.
func TestSessionService_Create_RollsBackAutoCreatedBatch(t *testing.T) {
	f := newSessionFixture("")
	f.addUser("admin-1", domain.RoleAdmin)
	f.sessions.createErr = errors.New("write failed")

	_, err := f.svc.Create(context.Background(), createInput("bx"))
	if err == nil {
		t.Fatalf("expected error")
	}
	if len(f.batches.batches) != 0 {
		t.Fatalf("expected auto-created batch to be rolled back")
	}
}

func TestSessionService_Create_IdempotentReplay(t *testing.T) {
	f := newSessionFixture("")
	f.addUser("admin-1", domain.RoleAdmin)

	input := createInput("bx")
	input.IdempotencyKey = "key-1"

	first, err := f.svc.Create(context.Background(), input)
	if err != nil {
		t.Fatalf("first create failed: %v", err)
	}
	second, err := f.svc.Create(context.Background(), input)
	if err != nil {
		t.Fatalf("replay failed: %v", err)
	}
	if first.ID != second.ID {
		t.Fatalf("expected replay to return the original session")
	}
	if len(f.sessions.sessions) != 1 {
		t.Fatalf("expected a single session, got %d", len(f.sessions.sessions))
	}
}

func TestSessionService_List_FixedPaginationLabels(t *testing.T) {
	f := newSessionFixture("")
	f.addUser("admin-1", domain.RoleAdmin)

	for i := 0; i < 3; i++ {
		if _, err := f.svc.Create(context.Background(), createInput("b1")); err != nil {
			t.Fatalf("create failed: %v", err)
		}
	}

	list, err := f.svc.List(context.Background())
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if list.Total != 3 {
		t.Fatalf("expected total 3, got %d", list.Total)
	}
	if list.Page != 1 || list.Limit != 100 {
		t.Fatalf("expected fixed page=1 limit=100, got page=%d limit=%d", list.Page, list.Limit)
	}
}

func TestSessionService_Update_PartialFields(t *testing.T) {
	f := newSessionFixture("")
	owner := f.addUser("u1", domain.RoleStaff)

	input := createInput("b1")
	input.UserID = owner.ID
	session, err := f.svc.Create(context.Background(), input)
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	notes := "corrected count"
	updated, err := f.svc.Update(context.Background(), owner.ID, session.ID, ports.UpdateSessionInput{
		Notes:  &notes,
		Counts: domain.Counts{"alive": 90},
	})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.Notes != "corrected count" {
		t.Fatalf("notes not applied: %q", updated.Notes)
	}
	if updated.Counts["alive"] != 90 {
		t.Fatalf("counts not applied: %v", updated.Counts)
	}
	if updated.Species != session.Species || updated.Location != session.Location {
		t.Fatalf("omitted fields must keep prior values")
	}
	if updated.Timestamp != session.Timestamp {
		t.Fatalf("timestamp must be untouched by update")
	}
}

func TestSessionService_Update_InvalidSpeciesRejected(t *testing.T) {
	f := newSessionFixture("")
	owner := f.addUser("u1", domain.RoleStaff)

	input := createInput("b1")
	input.UserID = owner.ID
	session, _ := f.svc.Create(context.Background(), input)

	bad := "Salmon"
	_, err := f.svc.Update(context.Background(), owner.ID, session.ID, ports.UpdateSessionInput{Species: &bad})
	var ve *domain.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}

func TestSessionService_Update_NotOwned(t *testing.T) {
	f := newSessionFixture("")
	owner := f.addUser("u1", domain.RoleStaff)
	f.addUser("u2", domain.RoleStaff)

	input := createInput("b1")
	input.UserID = owner.ID
	session, _ := f.svc.Create(context.Background(), input)

	notes := "hijack"
	_, err := f.svc.Update(context.Background(), "u2", session.ID, ports.UpdateSessionInput{Notes: &notes})
	if !errors.Is(err, domain.ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound for foreign session, got %v", err)
	}
}

func TestSessionService_Delete(t *testing.T) {
	f := newSessionFixture("")
	owner := f.addUser("u1", domain.RoleStaff)

	input := createInput("b1")
	input.UserID = owner.ID
	session, _ := f.svc.Create(context.Background(), input)

	if err := f.svc.Delete(context.Background(), "someone-else", session.ID); !errors.Is(err, domain.ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound for foreign delete, got %v", err)
	}
	if err := f.svc.Delete(context.Background(), owner.ID, session.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if len(f.sessions.sessions) != 0 {
		t.Fatalf("expected session removed")
	}
}

func TestSessionService_GetByBatch_ScopedToUser(t *testing.T) {
	f := newSessionFixture("")
	owner := f.addUser("u1", domain.RoleStaff)
	other := f.addUser("u2", domain.RoleStaff)

	mine := createInput("b1")
	mine.UserID = owner.ID
	if _, err := f.svc.Create(context.Background(), mine); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	theirs := createInput("b1")
	theirs.UserID = other.ID
	if _, err := f.svc.Create(context.Background(), theirs); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	sessions, err := f.svc.GetByBatch(context.Background(), owner.ID, "b1")
	if err != nil {
		t.Fatalf("get by batch failed: %v", err)
	}
	if len(sessions) != 1 || sessions[0].UserID != owner.ID {
		t.Fatalf("expected only the owner's sessions, got %d", len(sessions))
	}
}
