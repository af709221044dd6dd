package model

import (
	"time"

	"github.com/google/uuid"
)

// Sentinel values substituted into the register when the customer did not
// provide the corresponding detail. The sale itself never fails on a missing
// field — the register records the gap instead.
const (
	WalkInCustomer        = "Walk-in Customer"
	DoctorNotSpecified    = "Not specified"
	PrescriptionNotGiven  = "Not provided"
)

// DispenseEntry is one row of the Schedule H1 register: one entry per
// dispense event, never aggregated, never updated, never deleted.
type DispenseEntry struct {
	ID                  uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SaleID              uuid.UUID `gorm:"type:uuid;not null;index"`
	MedicineID          uuid.UUID `gorm:"type:uuid;not null;index"`
	MedicineName        string    `gorm:"not null"`
	BatchNumber         string    `gorm:"not null"`
	CustomerName        string    `gorm:"not null"`
	DoctorName          string    `gorm:"not null"`
	PrescriptionNumber  string    `gorm:"not null"`
	QuantityDispensed   int       `gorm:"not null"`
	DispensedDate       time.Time `gorm:"not null;index"`
	PharmacistSignature string    `gorm:"not null"`
	CreatedAt           time.Time
}

func (DispenseEntry) TableName() string { return "dispense_register" }
