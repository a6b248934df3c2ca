package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/fincount/counting-api/internal/core/domain"
	"github.com/fincount/counting-api/internal/core/ports"
)

func newBatchService() (*BatchService, *stubBatchRepo, *stubSessionRepo) {
	batches := newStubBatchRepo()
	sessions := newStubSessionRepo()
	return NewBatchService(batches, sessions, zerolog.Nop()), batches, sessions
}

func TestBatchService_Create_Defaults(t *testing.T) {
	svc, repo, _ := newBatchService()

	batch, err := svc.Create(context.Background(), "u1", ports.CreateBatchInput{Name: "Pond A"})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if batch.ID == "" {
		t.Fatalf("expected generated id")
	}
	if !batch.IsActive {
		t.Fatalf("expected isActive to default to true")
	}
	if batch.TotalCount != 0 {
		t.Fatalf("expected totalCount 0, got %d", batch.TotalCount)
	}
	if batch.UserID != "u1" {
		t.Fatalf("expected owner u1, got %s", batch.UserID)
	}
	if _, ok := repo.batches[batch.ID]; !ok {
		t.Fatalf("expected batch persisted")
	}
}

func TestBatchService_Create_ExplicitInactive(t *testing.T) {
	svc, _, _ := newBatchService()

	inactive := false
	batch, err := svc.Create(context.Background(), "u1", ports.CreateBatchInput{Name: "Pond B", IsActive: &inactive})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if batch.IsActive {
		t.Fatalf("expected isActive false when explicitly set")
	}
}

func TestBatchService_List_ScopedToUser(t *testing.T) {
	svc, _, _ := newBatchService()

	if _, err := svc.Create(context.Background(), "u1", ports.CreateBatchInput{Name: "Mine"}); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if _, err := svc.Create(context.Background(), "u2", ports.CreateBatchInput{Name: "Theirs"}); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	mine, err := svc.List(context.Background(), "u1")
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(mine) != 1 || mine[0].Name != "Mine" {
		t.Fatalf("expected only the caller's batches, got %d", len(mine))
	}
}

func TestBatchService_Get_NotOwned(t *testing.T) {
	svc, _, _ := newBatchService()

	batch, err := svc.Create(context.Background(), "u1", ports.CreateBatchInput{Name: "Pond A"})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	if _, err := svc.Get(context.Background(), "u2", batch.ID); !errors.Is(err, domain.ErrBatchNotFound) {
		t.Fatalf("expected ErrBatchNotFound for foreign batch, got %v", err)
	}
}

func TestBatchService_Update_PartialFields(t *testing.T) {
	svc, _, _ := newBatchService()

	batch, err := svc.Create(context.Background(), "u1", ports.CreateBatchInput{Name: "Pond A", Description: "south pond"})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	created := batch.UpdatedAt

	time.Sleep(time.Millisecond)

	name := "Pond A (renamed)"
	updated, err := svc.Update(context.Background(), "u1", batch.ID, ports.UpdateBatchInput{Name: &name})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.Name != name {
		t.Fatalf("name not applied: %q", updated.Name)
	}
	if updated.Description != "south pond" {
		t.Fatalf("omitted description must keep prior value, got %q", updated.Description)
	}
	if !updated.UpdatedAt.After(created) {
		t.Fatalf("expected updatedAt to advance")
	}
}

func TestBatchService_Update_NotFound(t *testing.T) {
	svc, _, _ := newBatchService()

	name := "anything"
	_, err := svc.Update(context.Background(), "u1", "missing", ports.UpdateBatchInput{Name: &name})
	if !errors.Is(err, domain.ErrBatchNotFound) {
		t.Fatalf("expected ErrBatchNotFound, got %v", err)
	}
}

func TestBatchService_Delete_CascadesSessions(t *testing.T) {
	svc, batches, sessions := newBatchService()

	batch, err := svc.Create(context.Background(), "u1", ports.CreateBatchInput{Name: "Pond A"})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	sessions.sessions["s1"] = &domain.Session{ID: "s1", BatchID: batch.ID, UserID: "u1"}
	sessions.sessions["s2"] = &domain.Session{ID: "s2", BatchID: batch.ID, UserID: "u1"}
	sessions.sessions["s3"] = &domain.Session{ID: "s3", BatchID: "other", UserID: "u1"}

	if err := svc.Delete(context.Background(), "u1", batch.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if _, ok := batches.batches[batch.ID]; ok {
		t.Fatalf("expected batch removed")
	}
	if len(sessions.sessions) != 1 {
		t.Fatalf("expected only unrelated sessions to survive, got %d", len(sessions.sessions))
	}
	if _, ok := sessions.sessions["s3"]; !ok {
		t.Fatalf("expected sessions of other batches untouched")
	}
}

func TestBatchService_Delete_NotOwned(t *testing.T) {
	svc, batches, _ := newBatchService()

	batch, err := svc.Create(context.Background(), "u1", ports.CreateBatchInput{Name: "Pond A"})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	if err := svc.Delete(context.Background(), "u2", batch.ID); !errors.Is(err, domain.ErrBatchNotFound) {
		t.Fatalf("expected ErrBatchNotFound for foreign delete, got %v", err)
	}
	if _, ok := batches.batches[batch.ID]; !ok {
		t.Fatalf("foreign delete must not remove the batch")
	}
}
