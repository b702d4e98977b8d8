package service

import (
	"context"
	"errors"
	"testing"

	"github.com/bwmarrin/snowflake"
	"github.com/pitchfork-audio/pitchfork/internal/tag/domain"
	"github.com/pitchfork-audio/pitchfork/internal/tag/repository"
	"github.com/pitchfork-audio/pitchfork/pkg/db"
	"go.uber.org/zap"
)

func newTestService(t *testing.T) domain.Service {
	t.Helper()

	conn, err := db.NewTest()
	if err != nil {
		t.Fatalf("failed to open db: %v", err)
	}
	if err := conn.AutoMigrate(&domain.Tag{}); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}

	node, err := snowflake.NewNode(1)
	if err != nil {
		t.Fatalf("failed to create snowflake node: %v", err)
	}

	return NewService(zap.NewNop(), repository.NewRepository(conn), node)
}

func TestCreateTagNormalizesName(t *testing.T) {
	svc := newTestService(t)

	tag, err := svc.Create(context.Background(), 10, "  Synth-Pop  ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tag.Name != "synth-pop" {
		t.Fatalf("name = %q, want synth-pop", tag.Name)
	}
}

func TestCreateTagEmptyName(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.Create(context.Background(), 10, "   ")
	if !errors.Is(err, domain.ErrEmptyTagName) {
		t.Fatalf("expected ErrEmptyTagName, got %v", err)
	}
}

func TestCreateTagDuplicate(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	if _, err := svc.Create(ctx, 10, "pop"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// same name differing only in case collides
	if _, err := svc.Create(ctx, 10, "POP"); !errors.Is(err, domain.ErrTagExists) {
		t.Fatalf("expected ErrTagExists, got %v", err)
	}

	// same name in another organization does not
	if _, err := svc.Create(ctx, 20, "pop"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestFindOrCreateByNameIdempotent(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	first, err := svc.FindOrCreateByName(ctx, 10, "Indie")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := svc.FindOrCreateByName(ctx, 10, "indie ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first.ID != second.ID {
		t.Fatalf("expected same tag, got %d and %d", first.ID, second.ID)
	}

	tags, err := svc.ListByOrganization(ctx, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(tags) != 1 {
		t.Fatalf("len(tags) = %d, want 1", len(tags))
	}
}

func TestDeleteTagWrongOrganization(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	tag, err := svc.Create(ctx, 10, "pop")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := svc.Delete(ctx, tag.ID, 99); !errors.Is(err, domain.ErrWrongOrganization) {
		t.Fatalf("expected ErrWrongOrganization, got %v", err)
	}

	if err := svc.Delete(ctx, tag.ID, 10); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := svc.GetByID(ctx, tag.ID, 10); !errors.Is(err, domain.ErrTagNotFound) {
		t.Fatalf("expected ErrTagNotFound, got %v", err)
	}
}

func TestListByOrganizationOrdered(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	for _, name := range []string{"rock", "ambient", "pop"} {
		if _, err := svc.Create(ctx, 10, name); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	tags, err := svc.ListByOrganization(ctx, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"ambient", "pop", "rock"}
	if len(tags) != len(want) {
		t.Fatalf("len(tags) = %d, want %d", len(tags), len(want))
	}
	for i, name := range want {
		if tags[i].Name != name {
			t.Fatalf("tags[%d].Name = %q, want %q", i, tags[i].Name, name)
		}
	}
}
