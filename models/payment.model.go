package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	PaymentMethodCash     = "cash"
	PaymentMethodTransfer = "transfer"
	PaymentMethodStripe   = "stripe"

	PaymentStatusPending = "pending"
	PaymentStatusPaid    = "paid"
	PaymentStatusFailed  = "failed"
)

// Payment records a purchase of exactly one course or one lesson. The check
// constraint mirrors the request-path validation so a row can never reference
// both targets or neither. Payments are never deleted; provider-hosted ones
// carry the external checkout identifiers as they are obtained.
type Payment struct {
	gorm.Model
	UserID      uint      `json:"user_id" gorm:"index;not null"`
	CourseID    *uint     `json:"course_id" gorm:"index;check:chk_payment_target,(course_id IS NULL) <> (lesson_id IS NULL)"`
	LessonID    *uint     `json:"lesson_id" gorm:"index"`
	Amount      float64   `json:"amount" gorm:"not null"`
	PaymentDate time.Time `json:"payment_date" gorm:"index"`
	Method      string    `json:"payment_method" gorm:"size:20;not null"`       // cash, transfer, stripe
	Status      string    `json:"payment_status" gorm:"size:20;default:'pending'"` // pending, paid, failed

	ProviderProductID string `json:"provider_product_id" gorm:"size:255;default:''"`
	ProviderPriceID   string `json:"provider_price_id" gorm:"size:255;default:''"`
	ProviderSessionID string `json:"provider_session_id" gorm:"size:255;default:''"`
	PaymentURL        string `json:"payment_url" gorm:"default:''"`

	User   User    `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Course *Course `json:"course,omitempty" gorm:"foreignKey:CourseID"`
	Lesson *Lesson `json:"lesson,omitempty" gorm:"foreignKey:LessonID"`
}
