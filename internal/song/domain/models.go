// Package domain contains core types for the song catalog.
package domain

import (
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
)

// Song is an uploaded track owned by one organization. UploaderID records
// the member user who uploaded it; write access is limited to the uploader.
type Song struct {
	ID          snowflake.ID `gorm:"primaryKey" json:"id"`
	OrgID       snowflake.ID `gorm:"column:org_id;not null;index" json:"org_id"`
	UploaderID  snowflake.ID `gorm:"column:uploader_id;not null;index" json:"uploader_id"`
	Title       string       `gorm:"type:text;not null" json:"title"`
	Artist      *string      `gorm:"type:text" json:"artist,omitempty"`
	DurationSec *int         `gorm:"column:duration_sec" json:"duration_sec,omitempty"`
	FilePath    string       `gorm:"column:file_path;type:text;not null" json:"file_path"`
	FileName    string       `gorm:"column:file_name;type:text;not null" json:"file_name"`
	MimeType    string       `gorm:"column:mime_type;type:text" json:"mime_type"`
	SizeBytes   int64        `gorm:"column:size_bytes;not null;default:0" json:"size_bytes"`
	CreatedAt   time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt   time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName sets the database table name.
func (Song) TableName() string { return "songs" }

// Validate checks the fields required on every song.
func (s *Song) Validate() error {
	if strings.TrimSpace(s.Title) == "" {
		return ErrEmptyTitle
	}
	if strings.TrimSpace(s.FilePath) == "" {
		return ErrEmptyFilePath
	}
	return nil
}

// IsUploadedBy reports whether userID uploaded this song.
func (s *Song) IsUploadedBy(userID snowflake.ID) bool {
	return s.UploaderID == userID
}
