package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/pitchfork-audio/pitchfork/internal/audit/domain"
	"go.uber.org/zap"
	"gorm.io/datatypes"
)

type service struct {
	log   *zap.Logger
	repo  domain.Repository
	genID *snowflake.Node
}

func NewService(log *zap.Logger, repo domain.Repository, genID *snowflake.Node) domain.Service {
	return &service{
		log:   log.Named("audit.service"),
		repo:  repo,
		genID: genID,
	}
}

func (s *service) Record(ctx context.Context, orgID *snowflake.ID, actorID *snowflake.ID, action string, targetType string, targetID *string, metadata map[string]any) error {
	action = strings.TrimSpace(action)
	if action == "" {
		return domain.ErrInvalidAction
	}

	if metadata == nil {
		metadata = map[string]any{}
	}

	var actor *string
	if actorID != nil {
		raw := actorID.String()
		actor = &raw
	}

	entry := &domain.AuditLog{
		ID:         s.genID.Generate(),
		OrgID:      orgID,
		ActorID:    actor,
		Action:     action,
		TargetType: targetType,
		TargetID:   targetID,
		Metadata:   datatypes.JSONMap(metadata),
		CreatedAt:  time.Now().UTC(),
	}

	return s.repo.Create(ctx, entry)
}

func (s *service) List(ctx context.Context, orgID snowflake.ID, req domain.ListRequest) (domain.ListResponse, error) {
	if orgID == 0 {
		return domain.ListResponse{}, domain.ErrInvalidOrganization
	}

	limit := req.PageSize
	if limit <= 0 {
		limit = 25
	}

	var afterID snowflake.ID
	if token := strings.TrimSpace(req.PageToken); token != "" {
		cursor, err := decodeToken(token)
		if err != nil {
			return domain.ListResponse{}, domain.ErrInvalidPageToken
		}
		afterID = cursor
	}

	// Fetch one extra row to learn whether another page exists.
	entries, err := s.repo.List(ctx, orgID, req.Action, req.TargetType, afterID, limit+1)
	if err != nil {
		return domain.ListResponse{}, err
	}

	resp := domain.ListResponse{AuditLogs: entries}
	if len(entries) > limit {
		resp.AuditLogs = entries[:limit]
		resp.HasMore = true
		last := resp.AuditLogs[len(resp.AuditLogs)-1]
		token, err := encodeToken(last.ID)
		if err != nil {
			return domain.ListResponse{}, err
		}
		resp.NextPageToken = token
	}
	return resp, nil
}
