package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Sale is an immutable completed transaction. There is no update path:
// totals and items are frozen at checkout time.
type Sale struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	InvoiceNumber string    `gorm:"uniqueIndex;not null"`
	CustomerName  *string
	CustomerPhone *string
	DoctorName    *string
	// PrescriptionNumber is required in practice for Schedule H/H1 items but
	// never blocks a sale — the register substitutes a sentinel when absent.
	PrescriptionNumber *string
	Subtotal           decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	DiscountAmount     decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	GSTAmount          decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0;column:gst_amount"`
	TotalAmount        decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	PaymentMethod      string          `gorm:"type:varchar(20);not null"`
	SaleDate           time.Time       `gorm:"not null;index"`
	PharmacistID       uuid.UUID       `gorm:"type:uuid;not null"`
	CreatedAt          time.Time

	Items      []SaleItem `gorm:"foreignKey:SaleID"`
	Pharmacist *User      `gorm:"foreignKey:PharmacistID"`
}

// SaleItem records consumption from one batch within a sale. MedicineName
// and BatchNumber are point-in-time snapshots: editing the Medicine later
// must not alter historical invoices.
type SaleItem struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SaleID       uuid.UUID `gorm:"type:uuid;not null;index"`
	MedicineID   uuid.UUID `gorm:"type:uuid;not null;index"`
	MedicineName string    `gorm:"not null"`
	BatchID      uuid.UUID `gorm:"type:uuid;not null"`
	BatchNumber  string    `gorm:"not null"`
	Quantity     int       `gorm:"not null"`
	UnitPrice    decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	TotalPrice   decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	GSTAmount    decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0;column:gst_amount"`
}
