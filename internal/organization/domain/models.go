// Package domain contains the organization aggregate. An organization is a
// tenant: the unit of data isolation everything else hangs off.
package domain

import (
	"regexp"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
)

// slugPattern: lowercase alphanumeric segments joined by single hyphens.
var slugPattern = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

// Organization represents a tenant.
type Organization struct {
	ID        snowflake.ID `gorm:"primaryKey" json:"id"`
	Name      string       `gorm:"type:text;not null" json:"name"`
	Slug      string       `gorm:"type:text;not null;uniqueIndex:ux_organizations_slug" json:"slug"`
	Logo      *string      `gorm:"type:text" json:"logo,omitempty"`
	Metadata  *string      `gorm:"type:text" json:"metadata,omitempty"`
	CreatedAt time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName sets the database table name.
func (Organization) TableName() string { return "organizations" }

// ValidateName rejects empty organization names.
func ValidateName(name string) error {
	if strings.TrimSpace(name) == "" {
		return ErrEmptyName
	}
	return nil
}

// ValidateSlug rejects empty or malformed slugs. Global uniqueness is the
// store's concern, not the aggregate's.
func ValidateSlug(s string) error {
	if strings.TrimSpace(s) == "" {
		return ErrEmptySlug
	}
	if !slugPattern.MatchString(s) {
		return ErrInvalidSlugFormat
	}
	return nil
}

// Rename updates the display name and bumps UpdatedAt.
func (o *Organization) Rename(name string) error {
	if err := ValidateName(name); err != nil {
		return err
	}
	o.Name = name
	o.UpdatedAt = time.Now().UTC()
	return nil
}

// Reslug updates the slug and bumps UpdatedAt.
func (o *Organization) Reslug(s string) error {
	if err := ValidateSlug(s); err != nil {
		return err
	}
	o.Slug = s
	o.UpdatedAt = time.Now().UTC()
	return nil
}

// SetLogo replaces the logo URL; nil clears it.
func (o *Organization) SetLogo(logo *string) {
	o.Logo = logo
	o.UpdatedAt = time.Now().UTC()
}

// SetMetadata replaces the opaque metadata payload; nil clears it.
func (o *Organization) SetMetadata(metadata *string) {
	o.Metadata = metadata
	o.UpdatedAt = time.Now().UTC()
}
