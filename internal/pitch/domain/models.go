// Package domain contains core types for song pitches.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// Pitch proposes one of the organization's songs to one or more target
// artists. Tags and targets live in side tables keyed by pitch id.
type Pitch struct {
	ID          snowflake.ID `gorm:"primaryKey" json:"id"`
	OrgID       snowflake.ID `gorm:"column:org_id;not null;index" json:"org_id"`
	SongID      snowflake.ID `gorm:"column:song_id;not null;index" json:"song_id"`
	CreatedByID snowflake.ID `gorm:"column:created_by_id;not null" json:"created_by_id"`
	Description *string      `gorm:"type:text" json:"description,omitempty"`
	CreatedAt   time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt   time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName sets the database table name.
func (Pitch) TableName() string { return "pitches" }

// PitchTag links a pitch to a tag.
type PitchTag struct {
	PitchID snowflake.ID `gorm:"column:pitch_id;primaryKey"`
	TagID   snowflake.ID `gorm:"column:tag_id;primaryKey"`
}

// TableName sets the database table name.
func (PitchTag) TableName() string { return "pitch_tags" }

// TargetArtist is an artist a pitch is aimed at. Names are unique per pitch.
type TargetArtist struct {
	ID      snowflake.ID `gorm:"primaryKey"`
	PitchID snowflake.ID `gorm:"column:pitch_id;not null;index;uniqueIndex:ux_pitch_targets_pitch_name,priority:1"`
	Name    string       `gorm:"type:text;not null;uniqueIndex:ux_pitch_targets_pitch_name,priority:2"`
}

// TableName sets the database table name.
func (TargetArtist) TableName() string { return "pitch_target_artists" }
