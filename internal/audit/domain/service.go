package domain

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	"github.com/pitchfork-audio/pitchfork/pkg/db/pagination"
)

var (
	ErrInvalidOrganization = errors.New("invalid_organization")
	ErrInvalidAction       = errors.New("invalid_action")
	ErrInvalidPageToken    = errors.New("invalid_page_token")
)

type ListRequest struct {
	pagination.Pagination
	Action     string
	TargetType string
}

type ListResponse struct {
	pagination.PageInfo
	AuditLogs []AuditLog `json:"audit_logs"`
}

type Service interface {
	Record(ctx context.Context, orgID *snowflake.ID, actorID *snowflake.ID, action string, targetType string, targetID *string, metadata map[string]any) error
	List(ctx context.Context, orgID snowflake.ID, req ListRequest) (ListResponse, error)
}

type Repository interface {
	Create(ctx context.Context, entry *AuditLog) error
	List(ctx context.Context, orgID snowflake.ID, action, targetType string, afterID snowflake.ID, limit int) ([]AuditLog, error)
}
