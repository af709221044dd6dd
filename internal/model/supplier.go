package model

import (
	"time"

	"github.com/google/uuid"
)

// Supplier is the wholesaler a batch was purchased from.
type Supplier struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name      string    `gorm:"not null;index"`
	GSTIN     *string   `gorm:"type:varchar(20);column:gstin"`
	Phone     *string
	Email     *string
	Address   *string
	Active    bool `gorm:"not null;default:true"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
