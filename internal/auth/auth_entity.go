package auth

import (
	"time"

	"github.com/google/uuid"
)

// Account is the credential view of an employee row.
type Account struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	Username     string    `gorm:"type:varchar(100);not null"`
	Email        string    `gorm:"type:varchar(150);not null"`
	PasswordHash string    `gorm:"type:varchar(255);not null"`
	CreatedAt    time.Time `gorm:"not null"`
}

func (Account) TableName() string {
	return "employees"
}
