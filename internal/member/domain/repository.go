package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, member *Member) error
	FindByID(ctx context.Context, id snowflake.ID) (*Member, error)
	FindByUserAndOrg(ctx context.Context, userID, orgID snowflake.ID) (*Member, error)
	ListByOrganization(ctx context.Context, orgID snowflake.ID) ([]Member, error)
	ListByUser(ctx context.Context, userID snowflake.ID) ([]Member, error)
	Update(ctx context.Context, member *Member) error
	Delete(ctx context.Context, id snowflake.ID) error
	DeleteByOrganization(ctx context.Context, orgID snowflake.ID) error
}
