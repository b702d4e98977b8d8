package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	auditdomain "github.com/pitchfork-audio/pitchfork/internal/audit/domain"
	"github.com/pitchfork-audio/pitchfork/internal/song/domain"
	"go.uber.org/zap"
)

type service struct {
	log      *zap.Logger
	repo     domain.Repository
	genID    *snowflake.Node
	auditSvc auditdomain.Service
}

func NewService(log *zap.Logger, repo domain.Repository, genID *snowflake.Node, auditSvc auditdomain.Service) domain.Service {
	return &service{
		log:      log.Named("song.service"),
		repo:     repo,
		genID:    genID,
		auditSvc: auditSvc,
	}
}

func (s *service) Create(ctx context.Context, orgID, uploaderID snowflake.ID, req domain.CreateRequest) (*domain.Song, error) {
	now := time.Now().UTC()
	song := &domain.Song{
		ID:          s.genID.Generate(),
		OrgID:       orgID,
		UploaderID:  uploaderID,
		Title:       strings.TrimSpace(req.Title),
		Artist:      req.Artist,
		DurationSec: req.DurationSec,
		FilePath:    strings.TrimSpace(req.FilePath),
		FileName:    strings.TrimSpace(req.FileName),
		MimeType:    req.MimeType,
		SizeBytes:   req.SizeBytes,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := song.Validate(); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, song); err != nil {
		return nil, err
	}

	s.audit(ctx, song, uploaderID, "song.uploaded")
	return song, nil
}

func (s *service) GetByID(ctx context.Context, id, orgID snowflake.ID) (*domain.Song, error) {
	song, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if song.OrgID != orgID {
		return nil, domain.ErrWrongOrganization
	}
	return song, nil
}

func (s *service) ListByOrganization(ctx context.Context, orgID snowflake.ID) ([]domain.Song, error) {
	return s.repo.ListByOrganization(ctx, orgID)
}

func (s *service) ListByUploader(ctx context.Context, orgID, uploaderID snowflake.ID) ([]domain.Song, error) {
	return s.repo.ListByUploader(ctx, orgID, uploaderID)
}

func (s *service) UpdateOwn(ctx context.Context, id, orgID, userID snowflake.ID, req domain.UpdateRequest) (*domain.Song, error) {
	song, err := s.GetByID(ctx, id, orgID)
	if err != nil {
		return nil, err
	}
	if !song.IsUploadedBy(userID) {
		return nil, domain.ErrNotUploader
	}

	if req.Title != nil {
		song.Title = strings.TrimSpace(*req.Title)
	}
	if req.Artist != nil {
		song.Artist = req.Artist
	}
	if req.DurationSec != nil {
		song.DurationSec = req.DurationSec
	}
	if err := song.Validate(); err != nil {
		return nil, err
	}

	song.UpdatedAt = time.Now().UTC()
	if err := s.repo.Update(ctx, song); err != nil {
		return nil, err
	}

	s.audit(ctx, song, userID, "song.updated")
	return song, nil
}

func (s *service) DeleteOwn(ctx context.Context, id, orgID, userID snowflake.ID) error {
	song, err := s.GetByID(ctx, id, orgID)
	if err != nil {
		return err
	}
	if !song.IsUploadedBy(userID) {
		return domain.ErrNotUploader
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.audit(ctx, song, userID, "song.deleted")
	return nil
}

func (s *service) audit(ctx context.Context, song *domain.Song, actorID snowflake.ID, action string) {
	targetID := song.ID.String()
	err := s.auditSvc.Record(ctx, &song.OrgID, &actorID, action, "song", &targetID, map[string]any{
		"title": song.Title,
	})
	if err != nil {
		s.log.Warn("audit record failed", zap.String("action", action), zap.Error(err))
	}
}
