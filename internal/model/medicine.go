package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ScheduleType is the regulatory classification of a medicine.
// H1 medicines require a dispense register entry on every sale.
type ScheduleType string

const (
	ScheduleGeneral ScheduleType = "GENERAL"
	ScheduleH       ScheduleType = "H"
	ScheduleH1      ScheduleType = "H1"
	ScheduleX       ScheduleType = "X"
)

// Medicine is the catalog entry for a drug. Stock lives in Batch rows —
// a medicine holds no quantity of its own.
type Medicine struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name         string    `gorm:"index;not null"`
	GenericName  string
	BrandName    string
	Dosage       string
	MedicineType string
	Manufacturer string
	ScheduleType ScheduleType `gorm:"type:varchar(10);not null;default:'GENERAL';index"`
	// HSN is the tax classification code printed on invoices
	HSN        string          `gorm:"type:varchar(20);column:hsn"`
	GSTPercent decimal.Decimal `gorm:"type:decimal(5,2);not null;default:0;column:gst_percent"`
	CreatedAt  time.Time
	UpdatedAt  time.Time

	Batches []Batch `gorm:"foreignKey:MedicineID"`
}

// RequiresRegister reports whether dispensing this medicine must be recorded
// in the Schedule H1 register.
func (m *Medicine) RequiresRegister() bool { return m.ScheduleType == ScheduleH1 }
