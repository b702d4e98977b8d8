package domain

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

var (
	ErrEmptyTagName      = errors.New("empty_tag_name")
	ErrTagExists         = errors.New("tag_exists")
	ErrTagNotFound       = errors.New("tag_not_found")
	ErrWrongOrganization = errors.New("tag_wrong_organization")
)

type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, tag *Tag) error
	FindByID(ctx context.Context, id snowflake.ID) (*Tag, error)
	FindByName(ctx context.Context, orgID snowflake.ID, name string) (*Tag, error)
	ListByOrganization(ctx context.Context, orgID snowflake.ID) ([]Tag, error)
	Delete(ctx context.Context, id snowflake.ID) error
}

type Service interface {
	Create(ctx context.Context, orgID snowflake.ID, name string) (*Tag, error)
	GetByID(ctx context.Context, id, orgID snowflake.ID) (*Tag, error)
	ListByOrganization(ctx context.Context, orgID snowflake.ID) ([]Tag, error)
	Delete(ctx context.Context, id, orgID snowflake.ID) error
	// FindOrCreateByName resolves a tag name within the organization,
	// creating the tag when it does not exist yet.
	FindOrCreateByName(ctx context.Context, orgID snowflake.ID, name string) (*Tag, error)
}
