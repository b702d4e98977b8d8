package service

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/pitchfork-audio/pitchfork/internal/tag/domain"
	"go.uber.org/zap"
)

type service struct {
	log   *zap.Logger
	repo  domain.Repository
	genID *snowflake.Node
}

func NewService(log *zap.Logger, repo domain.Repository, genID *snowflake.Node) domain.Service {
	return &service{
		log:   log.Named("tag.service"),
		repo:  repo,
		genID: genID,
	}
}

func (s *service) Create(ctx context.Context, orgID snowflake.ID, name string) (*domain.Tag, error) {
	normalized, err := domain.NormalizeName(name)
	if err != nil {
		return nil, err
	}

	tag := &domain.Tag{
		ID:        s.genID.Generate(),
		OrgID:     orgID,
		Name:      normalized,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.repo.Create(ctx, tag); err != nil {
		return nil, err
	}

	s.log.Info("tag created",
		zap.String("org_id", orgID.String()),
		zap.String("name", normalized),
	)
	return tag, nil
}

func (s *service) GetByID(ctx context.Context, id, orgID snowflake.ID) (*domain.Tag, error) {
	tag, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if tag.OrgID != orgID {
		return nil, domain.ErrWrongOrganization
	}
	return tag, nil
}

func (s *service) ListByOrganization(ctx context.Context, orgID snowflake.ID) ([]domain.Tag, error) {
	return s.repo.ListByOrganization(ctx, orgID)
}

func (s *service) Delete(ctx context.Context, id, orgID snowflake.ID) error {
	if _, err := s.GetByID(ctx, id, orgID); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

func (s *service) FindOrCreateByName(ctx context.Context, orgID snowflake.ID, name string) (*domain.Tag, error) {
	normalized, err := domain.NormalizeName(name)
	if err != nil {
		return nil, err
	}

	tag, err := s.repo.FindByName(ctx, orgID, normalized)
	if err == nil {
		return tag, nil
	}
	if !errors.Is(err, domain.ErrTagNotFound) {
		return nil, err
	}

	created, err := s.Create(ctx, orgID, normalized)
	if err == nil {
		return created, nil
	}
	// A concurrent request may have created the tag between the lookup and
	// the insert; the unique index turns that into ErrTagExists.
	if errors.Is(err, domain.ErrTagExists) {
		return s.repo.FindByName(ctx, orgID, normalized)
	}
	return nil, err
}
