// Package domain contains core types for organization-scoped tags.
package domain

import (
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
)

// Tag is a label owned by one organization. Names are stored lowercase and
// unique per organization.
type Tag struct {
	ID        snowflake.ID `gorm:"primaryKey" json:"id"`
	OrgID     snowflake.ID `gorm:"column:org_id;not null;index;uniqueIndex:ux_tags_org_name,priority:1" json:"org_id"`
	Name      string       `gorm:"type:text;not null;uniqueIndex:ux_tags_org_name,priority:2" json:"name"`
	CreatedAt time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
}

// TableName sets the database table name.
func (Tag) TableName() string { return "tags" }

// NormalizeName canonicalizes a tag name for storage and comparison.
func NormalizeName(raw string) (string, error) {
	name := strings.ToLower(strings.TrimSpace(raw))
	if name == "" {
		return "", ErrEmptyTagName
	}
	return name, nil
}
