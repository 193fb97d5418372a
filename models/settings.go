package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DefaultMonthlyFee is used when neither the student nor the account settings
// carry a fee.
const DefaultMonthlyFee = 150

// Settings is a singleton per account, created with defaults on first read.
type Settings struct {
	ID                string    `gorm:"type:uuid;primaryKey"           json:"id"`
	AccountID         string    `gorm:"type:uuid;uniqueIndex;not null" json:"-"`
	CourtName         string    `gorm:"size:120;not null"              json:"court_name"`
	ContactPhone      string    `gorm:"size:20"                        json:"contact_phone"`
	Address           string    `gorm:"type:text"                      json:"address"`
	OperatingHours    string    `gorm:"size:120"                       json:"operating_hours"`
	DefaultMonthlyFee float64   `gorm:"type:numeric(12,2);default:150" json:"default_monthly_fee"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

func (s *Settings) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	return nil
}
