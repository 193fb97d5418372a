package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User is the administrative account that owns all other records.
// One admin per academy; every tenant-scoped row carries its ID as account_id.
type User struct {
	ID           string    `gorm:"type:uuid;primaryKey"          json:"id"`
	Email        string    `gorm:"size:120;uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"size:100;not null"             json:"-"`
	Name         string    `gorm:"size:100;not null"             json:"name"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}
