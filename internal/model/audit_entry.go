package model

import (
	"time"

	"github.com/google/uuid"
)

// AuditAction enumerates the recordable operations.
const (
	AuditCreate   = "CREATE"
	AuditUpdate   = "UPDATE"
	AuditDelete   = "DELETE"
	AuditSale     = "SALE"
	AuditPurchase = "PURCHASE"
)

// AuditEntry is an append-only log row. Entries are never modified or
// deleted; correlation with the affected record is by EntityType/EntityID.
// Before/After hold JSON snapshots of the record around the mutation.
type AuditEntry struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserID     uuid.UUID `gorm:"type:uuid;not null;index"`
	Action     string    `gorm:"type:varchar(20);not null"`
	EntityType string    `gorm:"type:varchar(30);not null;index"`
	EntityID   uuid.UUID `gorm:"type:uuid;not null;index"`
	Before     *string   `gorm:"type:jsonb"`
	After      *string   `gorm:"type:jsonb"`
	CreatedAt  time.Time `gorm:"index"`
}

func (AuditEntry) TableName() string { return "audit_log" }
