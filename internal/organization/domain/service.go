package domain

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
)

var (
	ErrEmptyName            = errors.New("empty_name")
	ErrEmptySlug            = errors.New("empty_slug")
	ErrInvalidSlugFormat    = errors.New("invalid_slug")
	ErrInvalidUser          = errors.New("invalid_user")
	ErrSlugTaken            = errors.New("slug_taken")
	ErrOrganizationNotFound = errors.New("organization_not_found")
)

type Service interface {
	Create(ctx context.Context, userID snowflake.ID, req CreateRequest) (*Organization, error)
	GetByID(ctx context.Context, id snowflake.ID) (*Organization, error)
	GetBySlug(ctx context.Context, slug string) (*Organization, error)
	ListByUser(ctx context.Context, userID snowflake.ID) ([]ListItem, error)
	Update(ctx context.Context, id snowflake.ID, req UpdateRequest) (*Organization, error)
	Delete(ctx context.Context, id snowflake.ID) error
}

type CreateRequest struct {
	Name     string
	Slug     string
	Logo     *string
	Metadata *string
}

// UpdateRequest mutates organization attributes; nil fields are left
// unchanged. Logo and Metadata distinguish "absent" (nil pointer) from
// "clear" (pointer to empty string) at the transport layer.
type UpdateRequest struct {
	Name     *string
	Slug     *string
	Logo     *string
	Metadata *string
}
