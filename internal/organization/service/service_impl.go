package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	auditdomain "github.com/pitchfork-audio/pitchfork/internal/audit/domain"
	memberdomain "github.com/pitchfork-audio/pitchfork/internal/member/domain"
	"github.com/pitchfork-audio/pitchfork/internal/organization/domain"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type service struct {
	db       *gorm.DB
	log      *zap.Logger
	repo     domain.Repository
	members  memberdomain.Repository
	genID    *snowflake.Node
	auditSvc auditdomain.Service
}

func NewService(conn *gorm.DB, log *zap.Logger, repo domain.Repository, members memberdomain.Repository, genID *snowflake.Node, auditSvc auditdomain.Service) domain.Service {
	return &service{
		db:       conn,
		log:      log.Named("organization.service"),
		repo:     repo,
		members:  members,
		genID:    genID,
		auditSvc: auditSvc,
	}
}

func (s *service) Create(ctx context.Context, userID snowflake.ID, req domain.CreateRequest) (*domain.Organization, error) {
	if userID == 0 {
		return nil, domain.ErrInvalidUser
	}

	name := strings.TrimSpace(req.Name)
	if err := domain.ValidateName(name); err != nil {
		return nil, err
	}
	slugValue := strings.TrimSpace(req.Slug)
	if err := domain.ValidateSlug(slugValue); err != nil {
		return nil, err
	}

	if _, err := s.repo.FindBySlug(ctx, slugValue); err == nil {
		return nil, domain.ErrSlugTaken
	} else if !errors.Is(err, domain.ErrOrganizationNotFound) {
		return nil, err
	}

	now := time.Now().UTC()
	org := &domain.Organization{
		ID:        s.genID.Generate(),
		Name:      name,
		Slug:      slugValue,
		Logo:      req.Logo,
		Metadata:  req.Metadata,
		CreatedAt: now,
		UpdatedAt: now,
	}

	// The organization and its owner membership are one atomic effect: an
	// organization without an owner is an invalid state.
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.repo.WithTx(tx).Create(ctx, org); err != nil {
			return err
		}

		owner := &memberdomain.Member{
			ID:        s.genID.Generate(),
			OrgID:     org.ID,
			UserID:    userID,
			Role:      memberdomain.RoleOwner,
			Type:      memberdomain.TypeManager,
			CreatedAt: now,
			UpdatedAt: now,
		}
		return s.members.WithTx(tx).Create(ctx, owner)
	})
	if err != nil {
		return nil, err
	}

	s.audit(ctx, org, &userID, "organization.created")
	return org, nil
}

func (s *service) GetByID(ctx context.Context, id snowflake.ID) (*domain.Organization, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *service) GetBySlug(ctx context.Context, slug string) (*domain.Organization, error) {
	return s.repo.FindBySlug(ctx, strings.TrimSpace(slug))
}

func (s *service) ListByUser(ctx context.Context, userID snowflake.ID) ([]domain.ListItem, error) {
	if userID == 0 {
		return nil, domain.ErrInvalidUser
	}
	return s.repo.ListByUser(ctx, userID)
}

func (s *service) Update(ctx context.Context, id snowflake.ID, req domain.UpdateRequest) (*domain.Organization, error) {
	org, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		if err := org.Rename(strings.TrimSpace(*req.Name)); err != nil {
			return nil, err
		}
	}

	if req.Slug != nil {
		newSlug := strings.TrimSpace(*req.Slug)
		if newSlug != org.Slug {
			existing, err := s.repo.FindBySlug(ctx, newSlug)
			if err == nil && existing.ID != id {
				return nil, domain.ErrSlugTaken
			}
			if err != nil && !errors.Is(err, domain.ErrOrganizationNotFound) {
				return nil, err
			}
		}
		if err := org.Reslug(newSlug); err != nil {
			return nil, err
		}
	}

	if req.Logo != nil {
		org.SetLogo(req.Logo)
	}
	if req.Metadata != nil {
		org.SetMetadata(req.Metadata)
	}

	// The unique index on slug still backstops the pre-check above under
	// concurrent updates.
	if err := s.repo.Update(ctx, org); err != nil {
		return nil, err
	}

	s.audit(ctx, org, nil, "organization.updated")
	return org, nil
}

func (s *service) Delete(ctx context.Context, id snowflake.ID) error {
	org, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.members.WithTx(tx).DeleteByOrganization(ctx, id); err != nil {
			return err
		}
		return s.repo.WithTx(tx).Delete(ctx, id)
	})
	if err != nil {
		return err
	}

	s.audit(ctx, org, nil, "organization.deleted")
	return nil
}

func (s *service) audit(ctx context.Context, org *domain.Organization, actorID *snowflake.ID, action string) {
	if s.auditSvc == nil {
		return
	}
	targetID := org.ID.String()
	err := s.auditSvc.Record(ctx, &org.ID, actorID, action, "organization", &targetID, map[string]any{
		"name": org.Name,
		"slug": org.Slug,
	})
	if err != nil {
		s.log.Warn("failed to write audit log", zap.String("action", action), zap.Error(err))
	}
}
