// Package domain contains the member aggregate: the binding between a user
// and an organization, carrying the role and persona dimensions every
// tenant-scoped authorization decision is made from.
package domain

import (
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
)

// Role is the hierarchical permission level of a member: owner > admin > member.
type Role string

const (
	RoleOwner  Role = "owner"
	RoleAdmin  Role = "admin"
	RoleMember Role = "member"
)

// Type is the persona dimension of a member, orthogonal to Role.
type Type string

const (
	TypeManager    Type = "manager"
	TypeSongwriter Type = "songwriter"
)

// ParseRole validates a raw role value at the boundary.
func ParseRole(raw string) (Role, error) {
	switch Role(strings.ToLower(strings.TrimSpace(raw))) {
	case RoleOwner:
		return RoleOwner, nil
	case RoleAdmin:
		return RoleAdmin, nil
	case RoleMember:
		return RoleMember, nil
	default:
		return "", ErrInvalidRole
	}
}

// ParseType validates a raw member type value at the boundary.
func ParseType(raw string) (Type, error) {
	switch Type(strings.ToLower(strings.TrimSpace(raw))) {
	case TypeManager:
		return TypeManager, nil
	case TypeSongwriter:
		return TypeSongwriter, nil
	default:
		return "", ErrInvalidType
	}
}

// Member represents one user's membership in one organization. At most one
// row exists per (org, user) pair, enforced by ux_members_org_user.
type Member struct {
	ID        snowflake.ID `gorm:"primaryKey" json:"id"`
	OrgID     snowflake.ID `gorm:"not null;index;uniqueIndex:ux_members_org_user,priority:1" json:"org_id"`
	UserID    snowflake.ID `gorm:"not null;index;uniqueIndex:ux_members_org_user,priority:2" json:"user_id"`
	Role      Role         `gorm:"type:text;not null" json:"role"`
	Type      Type         `gorm:"type:text;not null" json:"type"`
	CreatedAt time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName sets the database table name.
func (Member) TableName() string { return "members" }

// ChangeRole updates the member's role. The owner's role is immutable here;
// moving ownership requires a dedicated transfer operation.
func (m *Member) ChangeRole(newRole Role) error {
	if _, err := ParseRole(string(newRole)); err != nil {
		return err
	}
	if m.Role == RoleOwner {
		return ErrOwnerRoleImmutable
	}
	m.Role = newRole
	m.UpdatedAt = time.Now().UTC()
	return nil
}

// ChangeType updates the persona of a non-owner member. The owner's record
// goes through ChangeOwnType so the service layer can gate it to the owner
// acting on themself.
func (m *Member) ChangeType(newType Type) error {
	if _, err := ParseType(string(newType)); err != nil {
		return err
	}
	if m.Role == RoleOwner {
		return ErrOwnerSelfManaged
	}
	m.Type = newType
	m.UpdatedAt = time.Now().UTC()
	return nil
}

// ChangeOwnType updates the persona of the owner's own membership.
func (m *Member) ChangeOwnType(newType Type) error {
	if _, err := ParseType(string(newType)); err != nil {
		return err
	}
	m.Type = newType
	m.UpdatedAt = time.Now().UTC()
	return nil
}

func (m *Member) IsOwner() bool { return m.Role == RoleOwner }

func (m *Member) IsAdmin() bool { return m.Role == RoleAdmin }

// CanManageMembers reports whether the member may add, update or remove
// other members.
func (m *Member) CanManageMembers() bool {
	return m.Role == RoleOwner || m.Role == RoleAdmin
}

func (m *Member) IsOfType(t Type) bool { return m.Type == t }
