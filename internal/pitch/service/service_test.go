package service

import (
	"context"
	"errors"
	"sort"
	"testing"

	"github.com/bwmarrin/snowflake"
	auditdomain "github.com/pitchfork-audio/pitchfork/internal/audit/domain"
	auditrepository "github.com/pitchfork-audio/pitchfork/internal/audit/repository"
	auditservice "github.com/pitchfork-audio/pitchfork/internal/audit/service"
	"github.com/pitchfork-audio/pitchfork/internal/pitch/domain"
	"github.com/pitchfork-audio/pitchfork/internal/pitch/repository"
	songdomain "github.com/pitchfork-audio/pitchfork/internal/song/domain"
	songrepository "github.com/pitchfork-audio/pitchfork/internal/song/repository"
	songservice "github.com/pitchfork-audio/pitchfork/internal/song/service"
	tagdomain "github.com/pitchfork-audio/pitchfork/internal/tag/domain"
	tagrepository "github.com/pitchfork-audio/pitchfork/internal/tag/repository"
	tagservice "github.com/pitchfork-audio/pitchfork/internal/tag/service"
	"github.com/pitchfork-audio/pitchfork/pkg/db"
	"go.uber.org/zap"
)

type testEnv struct {
	svc   domain.Service
	songs songdomain.Service
	tags  tagdomain.Service
}

func newTestService(t *testing.T) testEnv {
	t.Helper()

	conn, err := db.NewTest()
	if err != nil {
		t.Fatalf("failed to open db: %v", err)
	}
	if err := conn.AutoMigrate(
		&domain.Pitch{}, &domain.PitchTag{}, &domain.TargetArtist{},
		&songdomain.Song{}, &tagdomain.Tag{}, &auditdomain.AuditLog{},
	); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}

	node, err := snowflake.NewNode(1)
	if err != nil {
		t.Fatalf("failed to create snowflake node: %v", err)
	}

	log := zap.NewNop()
	auditSvc := auditservice.NewService(log, auditrepository.NewRepository(conn), node)
	songs := songservice.NewService(log, songrepository.NewRepository(conn), node, auditSvc)
	tags := tagservice.NewService(log, tagrepository.NewRepository(conn), node)
	svc := NewService(conn, log, repository.NewRepository(conn), songs, tags, node, auditSvc)
	return testEnv{svc: svc, songs: songs, tags: tags}
}

func uploadSong(t *testing.T, env testEnv, orgID, uploaderID snowflake.ID) *songdomain.Song {
	t.Helper()
	song, err := env.songs.Create(context.Background(), orgID, uploaderID, songdomain.CreateRequest{
		Title:     "demo",
		FilePath:  "uploads/demo.mp3",
		FileName:  "demo.mp3",
		MimeType:  "audio/mpeg",
		SizeBytes: 1 << 20,
	})
	if err != nil {
		t.Fatalf("failed to upload song: %v", err)
	}
	return song
}

func sorted(names []string) []string {
	out := append([]string(nil), names...)
	sort.Strings(out)
	return out
}

func TestCreatePitch(t *testing.T) {
	env := newTestService(t)
	ctx := context.Background()
	song := uploadSong(t, env, 10, 7)

	view, err := env.svc.Create(ctx, 10, 7, domain.CreateRequest{
		SongID:        song.ID,
		Tags:          []string{"Pop", "pop ", "indie"},
		TargetArtists: []string{"Artist A", "artist a", "Artist B"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	tags := sorted(view.Tags)
	if len(tags) != 2 || tags[0] != "indie" || tags[1] != "pop" {
		t.Fatalf("tags = %v, want deduped [indie pop]", view.Tags)
	}
	if len(view.TargetArtists) != 2 {
		t.Fatalf("targets = %v, want 2 deduped entries", view.TargetArtists)
	}
}

func TestCreatePitchRequiresTargets(t *testing.T) {
	env := newTestService(t)
	song := uploadSong(t, env, 10, 7)

	_, err := env.svc.Create(context.Background(), 10, 7, domain.CreateRequest{
		SongID:        song.ID,
		TargetArtists: []string{"  ", ""},
	})
	if !errors.Is(err, domain.ErrNoTargetArtists) {
		t.Fatalf("expected ErrNoTargetArtists, got %v", err)
	}
}

func TestCreatePitchBadTagWritesNothing(t *testing.T) {
	env := newTestService(t)
	ctx := context.Background()
	song := uploadSong(t, env, 10, 7)

	_, err := env.svc.Create(ctx, 10, 7, domain.CreateRequest{
		SongID:        song.ID,
		Tags:          []string{"   "},
		TargetArtists: []string{"Artist A"},
	})
	if !errors.Is(err, tagdomain.ErrEmptyTagName) {
		t.Fatalf("expected ErrEmptyTagName, got %v", err)
	}

	views, err := env.svc.ListByOrganization(ctx, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(views) != 0 {
		t.Fatalf("failed create left %d pitches behind", len(views))
	}
}

func TestCreatePitchSongInOtherOrganization(t *testing.T) {
	env := newTestService(t)
	song := uploadSong(t, env, 20, 7)

	_, err := env.svc.Create(context.Background(), 10, 7, domain.CreateRequest{
		SongID:        song.ID,
		TargetArtists: []string{"Artist A"},
	})
	if !errors.Is(err, songdomain.ErrWrongOrganization) {
		t.Fatalf("expected song wrong-organization error, got %v", err)
	}
}

func TestUpdatePitchReplacesTagsAndTargets(t *testing.T) {
	env := newTestService(t)
	ctx := context.Background()
	song := uploadSong(t, env, 10, 7)

	view, err := env.svc.Create(ctx, 10, 7, domain.CreateRequest{
		SongID:        song.ID,
		Tags:          []string{"pop"},
		TargetArtists: []string{"Artist A"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	newTags := []string{"rock", "indie"}
	newTargets := []string{"Artist B"}
	updated, err := env.svc.Update(ctx, view.ID, 10, domain.UpdateRequest{
		Tags:          &newTags,
		TargetArtists: &newTargets,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	tags := sorted(updated.Tags)
	if len(tags) != 2 || tags[0] != "indie" || tags[1] != "rock" {
		t.Fatalf("tags = %v, want [indie rock]", updated.Tags)
	}
	if len(updated.TargetArtists) != 1 || updated.TargetArtists[0] != "Artist B" {
		t.Fatalf("targets = %v, want [Artist B]", updated.TargetArtists)
	}
}

func TestUpdatePitchDescriptionOnly(t *testing.T) {
	env := newTestService(t)
	ctx := context.Background()
	song := uploadSong(t, env, 10, 7)

	view, err := env.svc.Create(ctx, 10, 7, domain.CreateRequest{
		SongID:        song.ID,
		Tags:          []string{"pop"},
		TargetArtists: []string{"Artist A"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	desc := "radio-ready single"
	updated, err := env.svc.Update(ctx, view.ID, 10, domain.UpdateRequest{Description: &desc})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.Description == nil || *updated.Description != desc {
		t.Fatalf("description = %v, want %q", updated.Description, desc)
	}
	if len(updated.Tags) != 1 || len(updated.TargetArtists) != 1 {
		t.Fatalf("tags/targets should be untouched: %v %v", updated.Tags, updated.TargetArtists)
	}
}

func TestUpdatePitchBadInputLeavesPitchUnchanged(t *testing.T) {
	env := newTestService(t)
	ctx := context.Background()
	song := uploadSong(t, env, 10, 7)

	view, err := env.svc.Create(ctx, 10, 7, domain.CreateRequest{
		SongID:        song.ID,
		Tags:          []string{"pop"},
		TargetArtists: []string{"Artist A"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	desc := "slipped through"
	badTags := []string{"   "}
	_, err = env.svc.Update(ctx, view.ID, 10, domain.UpdateRequest{
		Description: &desc,
		Tags:        &badTags,
	})
	if !errors.Is(err, tagdomain.ErrEmptyTagName) {
		t.Fatalf("expected ErrEmptyTagName, got %v", err)
	}

	noTargets := []string{""}
	_, err = env.svc.Update(ctx, view.ID, 10, domain.UpdateRequest{
		Description:   &desc,
		TargetArtists: &noTargets,
	})
	if !errors.Is(err, domain.ErrNoTargetArtists) {
		t.Fatalf("expected ErrNoTargetArtists, got %v", err)
	}

	current, err := env.svc.GetByID(ctx, view.ID, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if current.Description != nil {
		t.Fatalf("failed update persisted description %q", *current.Description)
	}
	if len(current.Tags) != 1 || current.Tags[0] != "pop" {
		t.Fatalf("tags = %v, want [pop]", current.Tags)
	}
	if len(current.TargetArtists) != 1 || current.TargetArtists[0] != "Artist A" {
		t.Fatalf("targets = %v, want [Artist A]", current.TargetArtists)
	}
}

func TestGetPitchWrongOrganization(t *testing.T) {
	env := newTestService(t)
	ctx := context.Background()
	song := uploadSong(t, env, 10, 7)

	view, err := env.svc.Create(ctx, 10, 7, domain.CreateRequest{
		SongID:        song.ID,
		TargetArtists: []string{"Artist A"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := env.svc.GetByID(ctx, view.ID, 99); !errors.Is(err, domain.ErrWrongOrganization) {
		t.Fatalf("expected ErrWrongOrganization, got %v", err)
	}
}

func TestListBySong(t *testing.T) {
	env := newTestService(t)
	ctx := context.Background()
	first := uploadSong(t, env, 10, 7)
	second := uploadSong(t, env, 10, 7)

	for _, songID := range []snowflake.ID{first.ID, first.ID, second.ID} {
		if _, err := env.svc.Create(ctx, 10, 7, domain.CreateRequest{
			SongID:        songID,
			TargetArtists: []string{"Artist A"},
		}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	views, err := env.svc.ListBySong(ctx, 10, first.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(views) != 2 {
		t.Fatalf("len(views) = %d, want 2", len(views))
	}
}

func TestDeletePitchRemovesAssociations(t *testing.T) {
	env := newTestService(t)
	ctx := context.Background()
	song := uploadSong(t, env, 10, 7)

	view, err := env.svc.Create(ctx, 10, 7, domain.CreateRequest{
		SongID:        song.ID,
		Tags:          []string{"pop"},
		TargetArtists: []string{"Artist A"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := env.svc.Delete(ctx, view.ID, 10); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := env.svc.GetByID(ctx, view.ID, 10); !errors.Is(err, domain.ErrPitchNotFound) {
		t.Fatalf("expected ErrPitchNotFound, got %v", err)
	}

	// the tag itself survives; only the association is removed
	tags, err := env.tags.ListByOrganization(ctx, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(tags) != 1 {
		t.Fatalf("len(tags) = %d, want 1", len(tags))
	}
}
