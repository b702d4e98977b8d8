// Package seed provisions the first organization and its owner account so a
// fresh install is usable without manual setup.
package seed

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/gosimple/slug"
	authdomain "github.com/pitchfork-audio/pitchfork/internal/auth/domain"
	"github.com/pitchfork-audio/pitchfork/internal/auth/password"
	"github.com/pitchfork-audio/pitchfork/internal/config"
	memberdomain "github.com/pitchfork-audio/pitchfork/internal/member/domain"
	organizationdomain "github.com/pitchfork-audio/pitchfork/internal/organization/domain"
	"gorm.io/gorm"
)

// EnsureDefaultOrgAndAdmin seeds the bootstrap organization, the admin user,
// and the owner membership that ties them together. Safe to run on every
// startup; existing rows are left alone.
func EnsureDefaultOrgAndAdmin(db *gorm.DB, cfg config.BootstrapConfig) error {
	if db == nil {
		return errors.New("seed database handle is required")
	}

	node, err := snowflake.NewNode(1)
	if err != nil {
		return err
	}

	ctx := context.Background()
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		org, err := ensureOrg(ctx, tx, node, cfg.OrgName)
		if err != nil {
			return err
		}

		user, err := ensureAdminUser(ctx, tx, node, cfg)
		if err != nil {
			return err
		}

		return ensureOwnerMembership(ctx, tx, node, org.ID, user.ID)
	})
}

func ensureOrg(ctx context.Context, tx *gorm.DB, node *snowflake.Node, name string) (*organizationdomain.Organization, error) {
	orgSlug := slug.Make(name)

	var org organizationdomain.Organization
	err := tx.WithContext(ctx).Where("slug = ?", orgSlug).First(&org).Error
	if err == nil {
		return &org, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	now := time.Now().UTC()
	org = organizationdomain.Organization{
		ID:        node.Generate(),
		Name:      name,
		Slug:      orgSlug,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := tx.WithContext(ctx).Create(&org).Error; err != nil {
		return nil, err
	}
	return &org, nil
}

func ensureAdminUser(ctx context.Context, tx *gorm.DB, node *snowflake.Node, cfg config.BootstrapConfig) (*authdomain.User, error) {
	email := strings.ToLower(strings.TrimSpace(cfg.AdminEmail))

	var user authdomain.User
	err := tx.WithContext(ctx).Where("email = ?", email).First(&user).Error
	if err == nil {
		return &user, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hashed, err := password.Hash(cfg.AdminPassword)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user = authdomain.User{
		ID:           node.Generate(),
		ExternalID:   email,
		DisplayName:  "Admin",
		Email:        email,
		PasswordHash: &hashed,
		IsDefault:    true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := tx.WithContext(ctx).Create(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func ensureOwnerMembership(ctx context.Context, tx *gorm.DB, node *snowflake.Node, orgID, userID snowflake.ID) error {
	var member memberdomain.Member
	err := tx.WithContext(ctx).Where("org_id = ? AND user_id = ?", orgID, userID).First(&member).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	now := time.Now().UTC()
	member = memberdomain.Member{
		ID:        node.Generate(),
		OrgID:     orgID,
		UserID:    userID,
		Role:      memberdomain.RoleOwner,
		Type:      memberdomain.TypeManager,
		CreatedAt: now,
		UpdatedAt: now,
	}
	return tx.WithContext(ctx).Create(&member).Error
}
