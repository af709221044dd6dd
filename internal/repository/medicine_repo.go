package repository

import (
	"context"

	"github.com/Collegeyse/medicinai/internal/dto"
	"github.com/Collegeyse/medicinai/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MedicineRepository defines the data access contract for the medicine
// catalog. Services depend on this interface, not on the concrete GORM
// implementation, enabling clean unit testing via stubs.
type MedicineRepository interface {
	Create(ctx context.Context, m *model.Medicine) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Medicine, error)
	List(ctx context.Context, filter dto.MedicineFilter) ([]model.Medicine, int64, error)
	Update(ctx context.Context, m *model.Medicine) error
	Count(ctx context.Context) (int64, error)

	// DeleteTx removes the medicine row inside a caller-owned transaction.
	DeleteTx(tx *gorm.DB, id uuid.UUID) error

	// DB exposes the underlying *gorm.DB so services can open transactions.
	DB() *gorm.DB
}

type medicineRepo struct{ db *gorm.DB }

func NewMedicineRepository(db *gorm.DB) MedicineRepository { return &medicineRepo{db: db} }

func (r *medicineRepo) Create(ctx context.Context, m *model.Medicine) error {
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *medicineRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Medicine, error) {
	var m model.Medicine
	err := r.db.WithContext(ctx).First(&m, id).Error
	return &m, err
}

func (r *medicineRepo) List(ctx context.Context, filter dto.MedicineFilter) ([]model.Medicine, int64, error) {
	var medicines []model.Medicine
	var total int64

	q := r.db.WithContext(ctx).Model(&model.Medicine{})

	if filter.Name != "" {
		q = q.Where("name ILIKE ? OR generic_name ILIKE ?", "%"+filter.Name+"%", "%"+filter.Name+"%")
	}
	if filter.Schedule != "" {
		q = q.Where("schedule_type = ?", filter.Schedule)
	}
	if filter.Manufacturer != "" {
		q = q.Where("manufacturer = ?", filter.Manufacturer)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	err := q.Order("name ASC").Limit(filter.Limit).Offset(offset).Find(&medicines).Error
	return medicines, total, err
}

func (r *medicineRepo) Update(ctx context.Context, m *model.Medicine) error {
	return r.db.WithContext(ctx).Save(m).Error
}

func (r *medicineRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Medicine{}).Count(&n).Error
	return n, err
}

func (r *medicineRepo) DeleteTx(tx *gorm.DB, id uuid.UUID) error {
	return tx.Delete(&model.Medicine{}, id).Error
}

func (r *medicineRepo) DB() *gorm.DB { return r.db }
