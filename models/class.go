package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Class struct {
	ID         string         `gorm:"type:uuid;primaryKey"     json:"id"`
	AccountID  string         `gorm:"type:uuid;index;not null" json:"-"`
	Name       string         `gorm:"size:100;not null"        json:"name"`
	DaysOfWeek datatypes.JSON `gorm:"type:jsonb"               json:"days_of_week"` // e.g. ["segunda","quarta"]
	StartTime  string         `gorm:"size:5;not null"          json:"start_time"`   // HH:MM
	EndTime    string         `gorm:"size:5;not null"          json:"end_time"`     // HH:MM
	Capacity   int            `gorm:"default:12"               json:"capacity"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
}

func (c *Class) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}
