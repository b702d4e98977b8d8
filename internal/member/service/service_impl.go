package service

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	auditdomain "github.com/pitchfork-audio/pitchfork/internal/audit/domain"
	"github.com/pitchfork-audio/pitchfork/internal/member/domain"
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
		log:      log.Named("member.service"),
		repo:     repo,
		genID:    genID,
		auditSvc: auditSvc,
	}
}

func (s *service) Add(ctx context.Context, orgID snowflake.ID, req domain.AddMemberRequest) (*domain.Member, error) {
	if req.UserID == 0 {
		return nil, domain.ErrInvalidUser
	}

	role, err := domain.ParseRole(req.Role)
	if err != nil {
		return nil, err
	}
	typ, err := domain.ParseType(req.Type)
	if err != nil {
		return nil, err
	}

	if _, err := s.repo.FindByUserAndOrg(ctx, req.UserID, orgID); err == nil {
		return nil, domain.ErrAlreadyMember
	} else if !errors.Is(err, domain.ErrMemberNotFound) {
		return nil, err
	}

	now := time.Now().UTC()
	member := &domain.Member{
		ID:        s.genID.Generate(),
		OrgID:     orgID,
		UserID:    req.UserID,
		Role:      role,
		Type:      typ,
		CreatedAt: now,
		UpdatedAt: now,
	}

	// The unique index on (org_id, user_id) closes the window between the
	// existence check above and this insert.
	if err := s.repo.Create(ctx, member); err != nil {
		return nil, err
	}

	s.audit(ctx, member, "member.added")
	return member, nil
}

func (s *service) GetByID(ctx context.Context, id, orgID snowflake.ID) (*domain.Member, error) {
	member, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if member.OrgID != orgID {
		return nil, domain.ErrWrongOrganization
	}
	return member, nil
}

func (s *service) GetByUserAndOrg(ctx context.Context, userID, orgID snowflake.ID) (*domain.Member, error) {
	return s.repo.FindByUserAndOrg(ctx, userID, orgID)
}

func (s *service) ListByOrganization(ctx context.Context, orgID snowflake.ID) ([]domain.Member, error) {
	return s.repo.ListByOrganization(ctx, orgID)
}

func (s *service) ListByUser(ctx context.Context, userID snowflake.ID) ([]domain.Member, error) {
	return s.repo.ListByUser(ctx, userID)
}

func (s *service) Update(ctx context.Context, id, orgID, requestingUserID snowflake.ID, req domain.UpdateMemberRequest) (*domain.Member, error) {
	member, err := s.GetByID(ctx, id, orgID)
	if err != nil {
		return nil, err
	}

	// The owner's membership may only be mutated by the owner themself.
	if member.IsOwner() && member.UserID != requestingUserID {
		return nil, domain.ErrOwnerSelfManaged
	}

	if req.Role != nil {
		role, err := domain.ParseRole(*req.Role)
		if err != nil {
			return nil, err
		}
		if err := member.ChangeRole(role); err != nil {
			return nil, err
		}
	}

	if req.Type != nil {
		typ, err := domain.ParseType(*req.Type)
		if err != nil {
			return nil, err
		}
		if member.IsOwner() {
			err = member.ChangeOwnType(typ)
		} else {
			err = member.ChangeType(typ)
		}
		if err != nil {
			return nil, err
		}
	}

	if err := s.repo.Update(ctx, member); err != nil {
		return nil, err
	}

	s.audit(ctx, member, "member.updated")
	return member, nil
}

func (s *service) Remove(ctx context.Context, id, orgID snowflake.ID) error {
	member, err := s.GetByID(ctx, id, orgID)
	if err != nil {
		return err
	}
	if member.IsOwner() {
		return domain.ErrCannotRemoveOwner
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.audit(ctx, member, "member.removed")
	return nil
}

func (s *service) audit(ctx context.Context, member *domain.Member, action string) {
	if s.auditSvc == nil {
		return
	}
	targetID := member.ID.String()
	err := s.auditSvc.Record(ctx, &member.OrgID, nil, action, "member", &targetID, map[string]any{
		"user_id": member.UserID.String(),
		"role":    string(member.Role),
		"type":    string(member.Type),
	})
	if err != nil {
		s.log.Warn("failed to write audit log", zap.String("action", action), zap.Error(err))
	}
}
