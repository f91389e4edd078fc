package models

import (
	"time"

	"github.com/google/uuid"
)

// Payment purpose values.
const (
	PaymentPurposeService  = "service"
	PaymentPurposeDonation = "donation"
	PaymentPurposeTip      = "tip"
)

// Payment lifecycle status values. Pending payments are finalized by the
// processor's webhook callback.
const (
	PaymentStatusPending   = "pending"
	PaymentStatusCompleted = "completed"
	PaymentStatusFailed    = "failed"
	PaymentStatusRefunded  = "refunded"
)

// Payment records a monetary transfer tied to a help request. The external
// processor moves the money; this row only tracks the lifecycle.
type Payment struct {
	ID              uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	RequestID       uuid.UUID  `gorm:"type:uuid;not null;index" json:"request_id"`
	PayerID         uuid.UUID  `gorm:"type:uuid;not null;index" json:"payer_id"`
	ReceiverID      uuid.UUID  `gorm:"type:uuid;not null;index" json:"receiver_id"`
	Amount          float64    `gorm:"not null" json:"amount"`
	Currency        string     `gorm:"size:10;not null;default:'USD'" json:"currency"`
	Purpose         string     `gorm:"size:20;not null" json:"purpose"`
	Status          string     `gorm:"size:20;not null;default:'pending';index" json:"status"`
	ProcessorRef    string     `gorm:"size:255;index" json:"-"`
	Description     string     `gorm:"size:500" json:"description"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
	CompletedAt     *time.Time `json:"completed_at,omitempty"`
	Payer           User       `gorm:"foreignKey:PayerID" json:"-"`
	Receiver        User       `gorm:"foreignKey:ReceiverID" json:"-"`
}
