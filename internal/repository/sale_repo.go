package repository

import (
	"context"

	"github.com/Collegeyse/medicinai/internal/dto"
	"github.com/Collegeyse/medicinai/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SaleRepository interface {
	// Create persists the sale and its items inside a caller-owned tx.
	Create(ctx context.Context, tx *gorm.DB, s *model.Sale) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Sale, error)
	FindByInvoiceNumber(ctx context.Context, invoiceNumber string) (*model.Sale, error)
	List(ctx context.Context, filter dto.SaleFilter) ([]model.Sale, int64, error)

	// NextInvoiceSeq pulls the next value of the invoice sequence; combined
	// with the date prefix it yields a unique time-derived invoice number.
	NextInvoiceSeq(ctx context.Context, tx *gorm.DB) (int64, error)

	DB() *gorm.DB
}

type saleRepo struct{ db *gorm.DB }

func NewSaleRepository(db *gorm.DB) SaleRepository { return &saleRepo{db: db} }

func (r *saleRepo) DB() *gorm.DB { return r.db }

func (r *saleRepo) Create(ctx context.Context, tx *gorm.DB, s *model.Sale) error {
	return tx.WithContext(ctx).Create(s).Error
}

func (r *saleRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Sale, error) {
	var s model.Sale
	err := r.db.WithContext(ctx).Preload("Items").First(&s, id).Error
	return &s, err
}

func (r *saleRepo) FindByInvoiceNumber(ctx context.Context, invoiceNumber string) (*model.Sale, error) {
	var s model.Sale
	err := r.db.WithContext(ctx).Preload("Items").
		Where("invoice_number = ?", invoiceNumber).First(&s).Error
	return &s, err
}

func (r *saleRepo) NextInvoiceSeq(ctx context.Context, tx *gorm.DB) (int64, error) {
	var num int64
	err := tx.WithContext(ctx).Raw("SELECT nextval('sales_invoice_seq')").Scan(&num).Error
	return num, err
}

func (r *saleRepo) List(ctx context.Context, filter dto.SaleFilter) ([]model.Sale, int64, error) {
	var sales []model.Sale
	var total int64
	offset := (filter.Page - 1) * filter.Limit

	q := r.db.WithContext(ctx).Model(&model.Sale{})

	if filter.From != "" {
		q = q.Where("sale_date >= ?", filter.From)
	}
	if filter.To != "" {
		q = q.Where("sale_date < ?", filter.To)
	}
	if filter.PharmacistID != "" {
		q = q.Where("pharmacist_id = ?", filter.PharmacistID)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := q.Preload("Items").
		Order("sale_date DESC").
		Offset(offset).Limit(filter.Limit).
		Find(&sales).Error

	return sales, total, err
}
