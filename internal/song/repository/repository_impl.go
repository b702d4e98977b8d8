package repository

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	"github.com/pitchfork-audio/pitchfork/internal/song/domain"
	"gorm.io/gorm"
)

type repo struct {
	db *gorm.DB
}

func NewRepository(gdb *gorm.DB) domain.Repository {
	return &repo{db: gdb}
}

func (r *repo) Create(ctx context.Context, song *domain.Song) error {
	return r.db.WithContext(ctx).Create(song).Error
}

func (r *repo) FindByID(ctx context.Context, id snowflake.ID) (*domain.Song, error) {
	var song domain.Song
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&song).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrSongNotFound
	}
	if err != nil {
		return nil, err
	}
	return &song, nil
}

func (r *repo) ListByOrganization(ctx context.Context, orgID snowflake.ID) ([]domain.Song, error) {
	var songs []domain.Song
	err := r.db.WithContext(ctx).
		Where("org_id = ?", orgID).
		Order("created_at DESC").
		Find(&songs).Error
	if err != nil {
		return nil, err
	}
	return songs, nil
}

func (r *repo) ListByUploader(ctx context.Context, orgID, uploaderID snowflake.ID) ([]domain.Song, error) {
	var songs []domain.Song
	err := r.db.WithContext(ctx).
		Where("org_id = ? AND uploader_id = ?", orgID, uploaderID).
		Order("created_at DESC").
		Find(&songs).Error
	if err != nil {
		return nil, err
	}
	return songs, nil
}

func (r *repo) Update(ctx context.Context, song *domain.Song) error {
	tx := r.db.WithContext(ctx).
		Model(&domain.Song{}).
		Where("id = ?", song.ID).
		Select("title", "artist", "duration_sec", "updated_at").
		Updates(song)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return domain.ErrSongNotFound
	}
	return nil
}

func (r *repo) Delete(ctx context.Context, id snowflake.ID) error {
	tx := r.db.WithContext(ctx).Where("id = ?", id).Delete(&domain.Song{})
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return domain.ErrSongNotFound
	}
	return nil
}
