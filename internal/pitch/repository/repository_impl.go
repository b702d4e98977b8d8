package repository

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	"github.com/pitchfork-audio/pitchfork/internal/pitch/domain"
	"gorm.io/gorm"
)

type repo struct {
	db *gorm.DB
}

func NewRepository(gdb *gorm.DB) domain.Repository {
	return &repo{db: gdb}
}

func (r *repo) WithTx(tx *gorm.DB) domain.Repository {
	return &repo{db: tx}
}

func (r *repo) Create(ctx context.Context, pitch *domain.Pitch) error {
	return r.db.WithContext(ctx).Create(pitch).Error
}

func (r *repo) FindByID(ctx context.Context, id snowflake.ID) (*domain.Pitch, error) {
	var pitch domain.Pitch
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&pitch).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrPitchNotFound
	}
	if err != nil {
		return nil, err
	}
	return &pitch, nil
}

func (r *repo) ListByOrganization(ctx context.Context, orgID snowflake.ID) ([]domain.Pitch, error) {
	var pitches []domain.Pitch
	err := r.db.WithContext(ctx).
		Where("org_id = ?", orgID).
		Order("created_at DESC").
		Find(&pitches).Error
	if err != nil {
		return nil, err
	}
	return pitches, nil
}

func (r *repo) ListBySong(ctx context.Context, orgID, songID snowflake.ID) ([]domain.Pitch, error) {
	var pitches []domain.Pitch
	err := r.db.WithContext(ctx).
		Where("org_id = ? AND song_id = ?", orgID, songID).
		Order("created_at DESC").
		Find(&pitches).Error
	if err != nil {
		return nil, err
	}
	return pitches, nil
}

func (r *repo) Update(ctx context.Context, pitch *domain.Pitch) error {
	tx := r.db.WithContext(ctx).
		Model(&domain.Pitch{}).
		Where("id = ?", pitch.ID).
		Select("description", "updated_at").
		Updates(pitch)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return domain.ErrPitchNotFound
	}
	return nil
}

func (r *repo) Delete(ctx context.Context, id snowflake.ID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("pitch_id = ?", id).Delete(&domain.PitchTag{}).Error; err != nil {
			return err
		}
		if err := tx.Where("pitch_id = ?", id).Delete(&domain.TargetArtist{}).Error; err != nil {
			return err
		}
		res := tx.Where("id = ?", id).Delete(&domain.Pitch{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return domain.ErrPitchNotFound
		}
		return nil
	})
}

func (r *repo) ReplaceTags(ctx context.Context, pitchID snowflake.ID, tagIDs []snowflake.ID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("pitch_id = ?", pitchID).Delete(&domain.PitchTag{}).Error; err != nil {
			return err
		}
		if len(tagIDs) == 0 {
			return nil
		}
		links := make([]domain.PitchTag, 0, len(tagIDs))
		for _, tagID := range tagIDs {
			links = append(links, domain.PitchTag{PitchID: pitchID, TagID: tagID})
		}
		return tx.Create(&links).Error
	})
}

func (r *repo) TagIDs(ctx context.Context, pitchID snowflake.ID) ([]snowflake.ID, error) {
	var links []domain.PitchTag
	err := r.db.WithContext(ctx).Where("pitch_id = ?", pitchID).Find(&links).Error
	if err != nil {
		return nil, err
	}
	ids := make([]snowflake.ID, 0, len(links))
	for _, link := range links {
		ids = append(ids, link.TagID)
	}
	return ids, nil
}

func (r *repo) ReplaceTargets(ctx context.Context, pitchID snowflake.ID, targets []domain.TargetArtist) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("pitch_id = ?", pitchID).Delete(&domain.TargetArtist{}).Error; err != nil {
			return err
		}
		if len(targets) == 0 {
			return nil
		}
		return tx.Create(&targets).Error
	})
}

func (r *repo) Targets(ctx context.Context, pitchID snowflake.ID) ([]domain.TargetArtist, error) {
	var targets []domain.TargetArtist
	err := r.db.WithContext(ctx).
		Where("pitch_id = ?", pitchID).
		Order("name ASC").
		Find(&targets).Error
	if err != nil {
		return nil, err
	}
	return targets, nil
}
