package repository

import (
	"context"

	"github.com/Collegeyse/medicinai/internal/dto"
	"github.com/Collegeyse/medicinai/internal/model"

	"gorm.io/gorm"
)

// AuditRepository appends to the audit log. Rows are immutable; the only
// read path is a filtered, paginated listing for the admin screen.
type AuditRepository interface {
	Create(ctx context.Context, e *model.AuditEntry) error
	CreateTx(tx *gorm.DB, e *model.AuditEntry) error
	List(ctx context.Context, filter dto.AuditFilter) ([]model.AuditEntry, int64, error)
}

type auditRepo struct{ db *gorm.DB }

func NewAuditRepository(db *gorm.DB) AuditRepository { return &auditRepo{db: db} }

func (r *auditRepo) Create(ctx context.Context, e *model.AuditEntry) error {
	return r.db.WithContext(ctx).Create(e).Error
}

func (r *auditRepo) CreateTx(tx *gorm.DB, e *model.AuditEntry) error {
	return tx.Create(e).Error
}

func (r *auditRepo) List(ctx context.Context, filter dto.AuditFilter) ([]model.AuditEntry, int64, error) {
	var entries []model.AuditEntry
	var total int64

	q := r.db.WithContext(ctx).Model(&model.AuditEntry{})

	if filter.Action != "" {
		q = q.Where("action = ?", filter.Action)
	}
	if filter.EntityType != "" {
		q = q.Where("entity_type = ?", filter.EntityType)
	}
	if filter.UserID != "" {
		q = q.Where("user_id = ?", filter.UserID)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	err := q.Order("created_at DESC").Offset(offset).Limit(filter.Limit).Find(&entries).Error
	return entries, total, err
}
