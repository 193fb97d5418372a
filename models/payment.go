package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	PaymentPending = "pending"
	PaymentPaid    = "paid"
)

// Payment is one monthly charge for one student. At most one row may exist
// per (student, month_year); the generator pre-checks and the unique index
// backstops it.
type Payment struct {
	ID            string    `gorm:"type:uuid;primaryKey"                        json:"id"`
	AccountID     string    `gorm:"type:uuid;index;not null"                    json:"-"`
	StudentID     string    `gorm:"type:uuid;not null;uniqueIndex:ux_payments_student_month" json:"student_id"`
	MonthYear     string    `gorm:"size:7;not null;uniqueIndex:ux_payments_student_month"    json:"month_year"` // YYYY-MM
	Amount        float64   `gorm:"type:numeric(12,2);not null"                 json:"amount"`
	Status        string    `gorm:"size:10;not null;default:pending"            json:"status"`                   // pending|paid
	PaymentDate   *string   `gorm:"size:10"                                     json:"payment_date,omitempty"`   // YYYY-MM-DD, paid only
	PaymentMethod *string   `gorm:"size:30"                                     json:"payment_method,omitempty"` // paid only
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func (p *Payment) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}
