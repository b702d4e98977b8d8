package domain

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
)

var (
	ErrInvalidRole        = errors.New("invalid_role")
	ErrInvalidType        = errors.New("invalid_member_type")
	ErrInvalidUser        = errors.New("invalid_user")
	ErrAlreadyMember      = errors.New("already_member")
	ErrMemberNotFound     = errors.New("member_not_found")
	ErrOwnerRoleImmutable = errors.New("owner_role_immutable")
	ErrOwnerSelfManaged   = errors.New("owner_membership_self_managed")
	ErrCannotRemoveOwner  = errors.New("cannot_remove_owner")
	ErrWrongOrganization  = errors.New("member_wrong_organization")
)

type Service interface {
	Add(ctx context.Context, orgID snowflake.ID, req AddMemberRequest) (*Member, error)
	GetByID(ctx context.Context, id, orgID snowflake.ID) (*Member, error)
	GetByUserAndOrg(ctx context.Context, userID, orgID snowflake.ID) (*Member, error)
	ListByOrganization(ctx context.Context, orgID snowflake.ID) ([]Member, error)
	ListByUser(ctx context.Context, userID snowflake.ID) ([]Member, error)
	Update(ctx context.Context, id, orgID, requestingUserID snowflake.ID, req UpdateMemberRequest) (*Member, error)
	Remove(ctx context.Context, id, orgID snowflake.ID) error
}

// AddMemberRequest carries raw role/type values; the service parses them
// before a Member is constructed.
type AddMemberRequest struct {
	UserID snowflake.ID
	Role   string
	Type   string
}

// UpdateMemberRequest mutates role and/or type; nil fields are left unchanged.
type UpdateMemberRequest struct {
	Role *string
	Type *string
}
