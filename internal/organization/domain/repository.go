package domain

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	memberdomain "github.com/pitchfork-audio/pitchfork/internal/member/domain"
	"gorm.io/gorm"
)

// ListItem is one row of a user's organization list, joined with their role.
type ListItem struct {
	ID        snowflake.ID
	Name      string
	Slug      string
	Role      memberdomain.Role
	CreatedAt time.Time
}

type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, org *Organization) error
	FindByID(ctx context.Context, id snowflake.ID) (*Organization, error)
	FindBySlug(ctx context.Context, slug string) (*Organization, error)
	ListByUser(ctx context.Context, userID snowflake.ID) ([]ListItem, error)
	Update(ctx context.Context, org *Organization) error
	Delete(ctx context.Context, id snowflake.ID) error
}
