package repository

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/pitchfork-audio/pitchfork/internal/audit/domain"
	"gorm.io/gorm"
)

type repository struct {
	db *gorm.DB
}

func NewRepository(conn *gorm.DB) domain.Repository {
	return &repository{db: conn}
}

func (r *repository) Create(ctx context.Context, entry *domain.AuditLog) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *repository) List(ctx context.Context, orgID snowflake.ID, action, targetType string, afterID snowflake.ID, limit int) ([]domain.AuditLog, error) {
	q := r.db.WithContext(ctx).
		Where("org_id = ?", orgID).
		Order("id DESC").
		Limit(limit)
	if action != "" {
		q = q.Where("action = ?", action)
	}
	if targetType != "" {
		q = q.Where("target_type = ?", targetType)
	}
	if afterID != 0 {
		q = q.Where("id < ?", afterID)
	}

	var entries []domain.AuditLog
	if err := q.Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}
