package model

import (
	"time"

	"github.com/google/uuid"
)

// User is a pharmacy staff account. Role: "pharmacist" | "admin".
type User struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Username     string    `gorm:"uniqueIndex;not null"`
	Name         string    `gorm:"not null"`
	Email        *string
	PasswordHash string `gorm:"not null"`
	Role         string `gorm:"type:varchar(20);not null;default:'pharmacist'"`
	// LicenseNumber is the pharmacist registration printed on the H1 register
	LicenseNumber *string `gorm:"type:varchar(40)"`
	Active        bool    `gorm:"not null;default:true"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
