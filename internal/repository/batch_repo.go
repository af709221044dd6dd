package repository

import (
	"context"
	"errors"
	"time"

	"github.com/Collegeyse/medicinai/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ErrStockConflict is returned by DecrementStockTx when the conditional
// update matched no row: either the batch disappeared or a concurrent sale
// consumed the stock first. The caller decides whether to retry or fail.
var ErrStockConflict = errors.New("stock conflict: batch no longer holds the requested quantity")

// BatchRepository defines data access for lot-tracked stock.
type BatchRepository interface {
	Create(ctx context.Context, b *model.Batch) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Batch, error)
	FindByMedicineID(ctx context.Context, medicineID uuid.UUID) ([]model.Batch, error)

	// FindSellable returns allocation candidates: positive stock, expiry
	// strictly after now, ordered by expiry then id so FEFO walks are
	// deterministic across identical expiry dates.
	FindSellable(ctx context.Context, medicineID uuid.UUID, now time.Time) ([]model.Batch, error)

	FindExpiringBefore(ctx context.Context, cutoff time.Time) ([]model.Batch, error)
	FindLowStock(ctx context.Context) ([]model.Batch, error)

	// ListAll returns every batch with its medicine preloaded, zero-stock
	// rows included — the restock derivation needs drained medicines too.
	ListAll(ctx context.Context) ([]model.Batch, error)

	// CountWithStock returns how many batches of the medicine still hold stock.
	CountWithStock(ctx context.Context, medicineID uuid.UUID) (int64, error)

	// DecrementStockTx performs the atomic conditional decrement inside a
	// caller-owned transaction. Returns ErrStockConflict when no row matched
	// (stock below qty), which must abort the surrounding transaction.
	DecrementStockTx(tx *gorm.DB, id uuid.UUID, qty int) error

	DeleteByMedicineIDTx(tx *gorm.DB, medicineID uuid.UUID) error

	DB() *gorm.DB
}

type batchRepo struct{ db *gorm.DB }

func NewBatchRepository(db *gorm.DB) BatchRepository { return &batchRepo{db: db} }

func (r *batchRepo) Create(ctx context.Context, b *model.Batch) error {
	return r.db.WithContext(ctx).Create(b).Error
}

func (r *batchRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Batch, error) {
	var b model.Batch
	err := r.db.WithContext(ctx).First(&b, id).Error
	return &b, err
}

func (r *batchRepo) FindByMedicineID(ctx context.Context, medicineID uuid.UUID) ([]model.Batch, error) {
	var batches []model.Batch
	err := r.db.WithContext(ctx).
		Where("medicine_id = ?", medicineID).
		Order("expiry_date ASC, id ASC").
		Find(&batches).Error
	return batches, err
}

func (r *batchRepo) FindSellable(ctx context.Context, medicineID uuid.UUID, now time.Time) ([]model.Batch, error) {
	var batches []model.Batch
	err := r.db.WithContext(ctx).
		Where("medicine_id = ? AND current_stock > 0 AND expiry_date > ?", medicineID, now).
		Order("expiry_date ASC, id ASC").
		Find(&batches).Error
	return batches, err
}

func (r *batchRepo) FindExpiringBefore(ctx context.Context, cutoff time.Time) ([]model.Batch, error) {
	var batches []model.Batch
	err := r.db.WithContext(ctx).
		Preload("Medicine").
		Where("current_stock > 0 AND expiry_date < ?", cutoff).
		Order("expiry_date ASC").
		Find(&batches).Error
	return batches, err
}

func (r *batchRepo) FindLowStock(ctx context.Context) ([]model.Batch, error) {
	var batches []model.Batch
	err := r.db.WithContext(ctx).
		Preload("Medicine").
		Where("current_stock <= min_stock").
		Order("current_stock ASC").
		Find(&batches).Error
	return batches, err
}

func (r *batchRepo) ListAll(ctx context.Context) ([]model.Batch, error) {
	var batches []model.Batch
	err := r.db.WithContext(ctx).
		Preload("Medicine").
		Order("received_date ASC, id ASC").
		Find(&batches).Error
	return batches, err
}

func (r *batchRepo) CountWithStock(ctx context.Context, medicineID uuid.UUID) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Batch{}).
		Where("medicine_id = ? AND current_stock > 0", medicineID).
		Count(&n).Error
	return n, err
}

func (r *batchRepo) DecrementStockTx(tx *gorm.DB, id uuid.UUID, qty int) error {
	res := tx.Model(&model.Batch{}).
		Where("id = ? AND current_stock >= ?", id, qty).
		Update("current_stock", gorm.Expr("current_stock - ?", qty))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrStockConflict
	}
	return nil
}

func (r *batchRepo) DeleteByMedicineIDTx(tx *gorm.DB, medicineID uuid.UUID) error {
	return tx.Where("medicine_id = ?", medicineID).Delete(&model.Batch{}).Error
}

func (r *batchRepo) DB() *gorm.DB { return r.db }
