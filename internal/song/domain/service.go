package domain

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
)

var (
	ErrEmptyTitle        = errors.New("empty_title")
	ErrEmptyFilePath     = errors.New("empty_file_path")
	ErrSongNotFound      = errors.New("song_not_found")
	ErrWrongOrganization = errors.New("song_wrong_organization")
	ErrNotUploader       = errors.New("not_uploader")
)

type Repository interface {
	Create(ctx context.Context, song *Song) error
	FindByID(ctx context.Context, id snowflake.ID) (*Song, error)
	ListByOrganization(ctx context.Context, orgID snowflake.ID) ([]Song, error)
	ListByUploader(ctx context.Context, orgID, uploaderID snowflake.ID) ([]Song, error)
	Update(ctx context.Context, song *Song) error
	Delete(ctx context.Context, id snowflake.ID) error
}

type CreateRequest struct {
	Title       string
	Artist      *string
	DurationSec *int
	FilePath    string
	FileName    string
	MimeType    string
	SizeBytes   int64
}

type UpdateRequest struct {
	Title       *string
	Artist      *string
	DurationSec *int
}

type Service interface {
	Create(ctx context.Context, orgID, uploaderID snowflake.ID, req CreateRequest) (*Song, error)
	GetByID(ctx context.Context, id, orgID snowflake.ID) (*Song, error)
	ListByOrganization(ctx context.Context, orgID snowflake.ID) ([]Song, error)
	ListByUploader(ctx context.Context, orgID, uploaderID snowflake.ID) ([]Song, error)
	// UpdateOwn and DeleteOwn succeed only when userID is the uploader.
	UpdateOwn(ctx context.Context, id, orgID, userID snowflake.ID, req UpdateRequest) (*Song, error)
	DeleteOwn(ctx context.Context, id, orgID, userID snowflake.ID) error
}
