package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	auditdomain "github.com/pitchfork-audio/pitchfork/internal/audit/domain"
	"github.com/pitchfork-audio/pitchfork/internal/pitch/domain"
	songdomain "github.com/pitchfork-audio/pitchfork/internal/song/domain"
	tagdomain "github.com/pitchfork-audio/pitchfork/internal/tag/domain"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type service struct {
	db       *gorm.DB
	log      *zap.Logger
	repo     domain.Repository
	songs    songdomain.Service
	tags     tagdomain.Service
	genID    *snowflake.Node
	auditSvc auditdomain.Service
}

func NewService(
	conn *gorm.DB,
	log *zap.Logger,
	repo domain.Repository,
	songs songdomain.Service,
	tags tagdomain.Service,
	genID *snowflake.Node,
	auditSvc auditdomain.Service,
) domain.Service {
	return &service{
		db:       conn,
		log:      log.Named("pitch.service"),
		repo:     repo,
		songs:    songs,
		tags:     tags,
		genID:    genID,
		auditSvc: auditSvc,
	}
}

func (s *service) Create(ctx context.Context, orgID, createdByID snowflake.ID, req domain.CreateRequest) (*domain.View, error) {
	// The song must belong to the same organization as the pitch.
	if _, err := s.songs.GetByID(ctx, req.SongID, orgID); err != nil {
		return nil, err
	}

	targets := dedupeNames(req.TargetArtists)
	if len(targets) == 0 {
		return nil, domain.ErrNoTargetArtists
	}

	// Tags are resolved before the pitch row exists so a bad tag name
	// cannot leave a half-written pitch behind. A tag created here for a
	// pitch that then fails to insert is still valid org vocabulary.
	tagIDs, err := s.resolveTags(ctx, orgID, req.Tags)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	pitch := &domain.Pitch{
		ID:          s.genID.Generate(),
		OrgID:       orgID,
		SongID:      req.SongID,
		CreatedByID: createdByID,
		Description: req.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		if err := repo.Create(ctx, pitch); err != nil {
			return err
		}
		if err := repo.ReplaceTags(ctx, pitch.ID, tagIDs); err != nil {
			return err
		}
		return repo.ReplaceTargets(ctx, pitch.ID, s.newTargets(pitch.ID, targets))
	})
	if err != nil {
		return nil, err
	}

	s.audit(ctx, pitch, createdByID, "pitch.created")
	return s.view(ctx, pitch)
}

func (s *service) GetByID(ctx context.Context, id, orgID snowflake.ID) (*domain.View, error) {
	pitch, err := s.find(ctx, id, orgID)
	if err != nil {
		return nil, err
	}
	return s.view(ctx, pitch)
}

func (s *service) ListByOrganization(ctx context.Context, orgID snowflake.ID) ([]domain.View, error) {
	pitches, err := s.repo.ListByOrganization(ctx, orgID)
	if err != nil {
		return nil, err
	}
	return s.views(ctx, pitches)
}

func (s *service) ListBySong(ctx context.Context, orgID, songID snowflake.ID) ([]domain.View, error) {
	if _, err := s.songs.GetByID(ctx, songID, orgID); err != nil {
		return nil, err
	}
	pitches, err := s.repo.ListBySong(ctx, orgID, songID)
	if err != nil {
		return nil, err
	}
	return s.views(ctx, pitches)
}

func (s *service) Update(ctx context.Context, id, orgID snowflake.ID, req domain.UpdateRequest) (*domain.View, error) {
	pitch, err := s.find(ctx, id, orgID)
	if err != nil {
		return nil, err
	}

	// Resolve and validate every input before touching the pitch so a bad
	// tag or an empty target list cannot persist a partial update.
	var tagIDs []snowflake.ID
	if req.Tags != nil {
		tagIDs, err = s.resolveTags(ctx, orgID, *req.Tags)
		if err != nil {
			return nil, err
		}
	}

	var targets []string
	if req.TargetArtists != nil {
		targets = dedupeNames(*req.TargetArtists)
		if len(targets) == 0 {
			return nil, domain.ErrNoTargetArtists
		}
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		if req.Description != nil {
			pitch.Description = req.Description
			pitch.UpdatedAt = time.Now().UTC()
			if err := repo.Update(ctx, pitch); err != nil {
				return err
			}
		}
		if req.Tags != nil {
			if err := repo.ReplaceTags(ctx, pitch.ID, tagIDs); err != nil {
				return err
			}
		}
		if req.TargetArtists != nil {
			if err := repo.ReplaceTargets(ctx, pitch.ID, s.newTargets(pitch.ID, targets)); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.view(ctx, pitch)
}

func (s *service) Delete(ctx context.Context, id, orgID snowflake.ID) error {
	pitch, err := s.find(ctx, id, orgID)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.audit(ctx, pitch, pitch.CreatedByID, "pitch.deleted")
	return nil
}

func (s *service) find(ctx context.Context, id, orgID snowflake.ID) (*domain.Pitch, error) {
	pitch, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if pitch.OrgID != orgID {
		return nil, domain.ErrWrongOrganization
	}
	return pitch, nil
}

// resolveTags upserts the given tag names within the organization and
// returns their deduplicated ids.
func (s *service) resolveTags(ctx context.Context, orgID snowflake.ID, names []string) ([]snowflake.ID, error) {
	tagIDs := make([]snowflake.ID, 0, len(names))
	seen := make(map[snowflake.ID]struct{}, len(names))
	for _, name := range names {
		tag, err := s.tags.FindOrCreateByName(ctx, orgID, name)
		if err != nil {
			return nil, err
		}
		if _, ok := seen[tag.ID]; ok {
			continue
		}
		seen[tag.ID] = struct{}{}
		tagIDs = append(tagIDs, tag.ID)
	}
	return tagIDs, nil
}

func (s *service) newTargets(pitchID snowflake.ID, names []string) []domain.TargetArtist {
	targets := make([]domain.TargetArtist, 0, len(names))
	for _, name := range names {
		targets = append(targets, domain.TargetArtist{
			ID:      s.genID.Generate(),
			PitchID: pitchID,
			Name:    name,
		})
	}
	return targets
}

func (s *service) view(ctx context.Context, pitch *domain.Pitch) (*domain.View, error) {
	tagIDs, err := s.repo.TagIDs(ctx, pitch.ID)
	if err != nil {
		return nil, err
	}
	tagNames := make([]string, 0, len(tagIDs))
	for _, tagID := range tagIDs {
		tag, err := s.tags.GetByID(ctx, tagID, pitch.OrgID)
		if err != nil {
			return nil, err
		}
		tagNames = append(tagNames, tag.Name)
	}

	targets, err := s.repo.Targets(ctx, pitch.ID)
	if err != nil {
		return nil, err
	}
	targetNames := make([]string, 0, len(targets))
	for _, target := range targets {
		targetNames = append(targetNames, target.Name)
	}

	return &domain.View{
		Pitch:         *pitch,
		Tags:          tagNames,
		TargetArtists: targetNames,
	}, nil
}

func (s *service) views(ctx context.Context, pitches []domain.Pitch) ([]domain.View, error) {
	out := make([]domain.View, 0, len(pitches))
	for i := range pitches {
		view, err := s.view(ctx, &pitches[i])
		if err != nil {
			return nil, err
		}
		out = append(out, *view)
	}
	return out, nil
}

func (s *service) audit(ctx context.Context, pitch *domain.Pitch, actorID snowflake.ID, action string) {
	targetID := pitch.ID.String()
	err := s.auditSvc.Record(ctx, &pitch.OrgID, &actorID, action, "pitch", &targetID, map[string]any{
		"song_id": pitch.SongID.String(),
	})
	if err != nil {
		s.log.Warn("audit record failed", zap.String("action", action), zap.Error(err))
	}
}

func dedupeNames(raw []string) []string {
	seen := make(map[string]struct{}, len(raw))
	out := make([]string, 0, len(raw))
	for _, name := range raw {
		trimmed := strings.TrimSpace(name)
		if trimmed == "" {
			continue
		}
		key := strings.ToLower(trimmed)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, trimmed)
	}
	return out
}
