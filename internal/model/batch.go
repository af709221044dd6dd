package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Batch is a distinct lot of a medicine with its own expiry, pricing and
// stock count. Every restock creates a NEW row even when the supplier reuses
// a batch number — rows are identified by generated id, never by BatchNumber.
// CurrentStock only decreases through sale allocation and only increases
// through restock creation; zero-stock batches persist as history.
type Batch struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	MedicineID  uuid.UUID `gorm:"type:uuid;not null;index"`
	BatchNumber string    `gorm:"not null;index"`
	ExpiryDate  time.Time `gorm:"type:date;not null;index"`
	// MRP is the ceiling retail price; SellingPrice is the actual unit price
	MRP           decimal.Decimal `gorm:"type:decimal(10,2);not null;column:mrp"`
	SellingPrice  decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	PurchasePrice decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	CurrentStock  int             `gorm:"not null;default:0"`
	MinStock      int             `gorm:"not null;default:10"`
	MaxStock      int             `gorm:"not null;default:100"`
	SupplierID    *uuid.UUID      `gorm:"type:uuid;index"`
	ReceivedDate  time.Time       `gorm:"not null"`
	CreatedAt     time.Time
	UpdatedAt     time.Time

	Medicine *Medicine `gorm:"foreignKey:MedicineID"`
	Supplier *Supplier `gorm:"foreignKey:SupplierID"`
}

// IsExpired reports whether the batch may no longer be sold at the given
// instant. Expired stock is never dispensed, even if physically present.
func (b *Batch) IsExpired(now time.Time) bool {
	return !b.ExpiryDate.After(now)
}

// Sellable reports whether the batch qualifies as an allocation candidate.
func (b *Batch) Sellable(now time.Time) bool {
	return b.CurrentStock > 0 && !b.IsExpired(now)
}

// DaysUntilExpiry returns whole days until expiry, negative when expired.
func (b *Batch) DaysUntilExpiry(now time.Time) int {
	return int(b.ExpiryDate.Sub(now).Hours() / 24)
}
