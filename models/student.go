package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	StudentActive   = "active"
	StudentInactive = "inactive"
)

type Student struct {
	ID               string     `gorm:"type:uuid;primaryKey"      json:"id"`
	AccountID        string     `gorm:"type:uuid;index;not null"  json:"-"`
	FullName         string     `gorm:"size:120;not null"         json:"full_name"`
	Phone            string     `gorm:"size:20;not null"          json:"phone"`
	RG               string     `gorm:"size:20;column:rg"         json:"rg"`
	BirthDate        *time.Time `json:"birth_date,omitempty"`
	StartDate        string     `gorm:"size:10;not null"          json:"start_date"` // YYYY-MM-DD, enrollment
	Status           string     `gorm:"size:10;not null"          json:"status"`     // active|inactive
	MonthlyFee       float64    `gorm:"type:numeric(12,2);not null" json:"monthly_fee"`
	Notes            string     `gorm:"type:text"                 json:"notes"`
	Address          string     `gorm:"type:text"                 json:"address"`
	ResponsibleName  string     `gorm:"size:120"                  json:"responsible_name"`
	ResponsiblePhone string     `gorm:"size:20"                   json:"responsible_phone"`
	Classes          []Class    `gorm:"many2many:student_classes" json:"-"`
	ClassIDs         []string   `gorm:"-"                         json:"class_ids"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}

func (s *Student) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	return nil
}

// StudentClass is the membership join row. Kept explicit so deletes can be
// scoped per account without touching gorm's association helpers.
type StudentClass struct {
	StudentID string `gorm:"type:uuid;primaryKey" json:"student_id"`
	ClassID   string `gorm:"type:uuid;primaryKey" json:"class_id"`
	AccountID string `gorm:"type:uuid;index;not null" json:"-"`
}

func (StudentClass) TableName() string { return "student_classes" }
