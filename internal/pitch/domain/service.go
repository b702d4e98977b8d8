package domain

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

var (
	ErrPitchNotFound     = errors.New("pitch_not_found")
	ErrNoTargetArtists   = errors.New("no_target_artists")
	ErrWrongOrganization = errors.New("pitch_wrong_organization")
)

type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, pitch *Pitch) error
	FindByID(ctx context.Context, id snowflake.ID) (*Pitch, error)
	ListByOrganization(ctx context.Context, orgID snowflake.ID) ([]Pitch, error)
	ListBySong(ctx context.Context, orgID, songID snowflake.ID) ([]Pitch, error)
	Update(ctx context.Context, pitch *Pitch) error
	Delete(ctx context.Context, id snowflake.ID) error

	ReplaceTags(ctx context.Context, pitchID snowflake.ID, tagIDs []snowflake.ID) error
	TagIDs(ctx context.Context, pitchID snowflake.ID) ([]snowflake.ID, error)
	ReplaceTargets(ctx context.Context, pitchID snowflake.ID, targets []TargetArtist) error
	Targets(ctx context.Context, pitchID snowflake.ID) ([]TargetArtist, error)
}

type CreateRequest struct {
	SongID        snowflake.ID
	Description   *string
	Tags          []string
	TargetArtists []string
}

type UpdateRequest struct {
	Description   *string
	Tags          *[]string
	TargetArtists *[]string
}

// View is a pitch expanded with its tag and target names.
type View struct {
	Pitch
	Tags          []string `json:"tags"`
	TargetArtists []string `json:"target_artists"`
}

type Service interface {
	Create(ctx context.Context, orgID, createdByID snowflake.ID, req CreateRequest) (*View, error)
	GetByID(ctx context.Context, id, orgID snowflake.ID) (*View, error)
	ListByOrganization(ctx context.Context, orgID snowflake.ID) ([]View, error)
	ListBySong(ctx context.Context, orgID, songID snowflake.ID) ([]View, error)
	Update(ctx context.Context, id, orgID snowflake.ID, req UpdateRequest) (*View, error)
	Delete(ctx context.Context, id, orgID snowflake.ID) error
}
