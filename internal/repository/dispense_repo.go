package repository

import (
	"context"
	"time"

	"github.com/Collegeyse/medicinai/internal/model"

	"gorm.io/gorm"
)

// DispenseRepository is the append-only store behind the Schedule H1
// register. There is deliberately no update or delete operation.
type DispenseRepository interface {
	CreateTx(tx *gorm.DB, e *model.DispenseEntry) error
	ListByMonth(ctx context.Context, month time.Month, year int) ([]model.DispenseEntry, error)
	Count(ctx context.Context) (int64, error)
}

type dispenseRepo struct{ db *gorm.DB }

func NewDispenseRepository(db *gorm.DB) DispenseRepository { return &dispenseRepo{db: db} }

func (r *dispenseRepo) CreateTx(tx *gorm.DB, e *model.DispenseEntry) error {
	return tx.Create(e).Error
}

func (r *dispenseRepo) ListByMonth(ctx context.Context, month time.Month, year int) ([]model.DispenseEntry, error) {
	start := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0)

	var entries []model.DispenseEntry
	err := r.db.WithContext(ctx).
		Where("dispensed_date >= ? AND dispensed_date < ?", start, end).
		Order("dispensed_date ASC").
		Find(&entries).Error
	return entries, err
}

func (r *dispenseRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.DispenseEntry{}).Count(&n).Error
	return n, err
}
