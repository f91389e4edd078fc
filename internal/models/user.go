package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// User is created on first sign-in from the identity provider's claims and
// never hard-deleted; signing out only drops the session.
type User struct {
	ID                uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	GoogleID          string         `gorm:"size:255;uniqueIndex;not null" json:"-"`
	Email             string         `gorm:"size:255;uniqueIndex;not null" json:"email"`
	Name              string         `gorm:"size:255;not null" json:"name"`
	Address           string         `gorm:"size:500" json:"address"`
	Verified          bool           `gorm:"default:false" json:"verified"`
	Avatar            string         `gorm:"size:1024" json:"avatar,omitempty"`
	Bio               string         `gorm:"size:1000" json:"bio,omitempty"`
	Rating            float64        `gorm:"default:5.0" json:"rating"`
	TotalHelped       int            `gorm:"default:0" json:"total_helped"`
	TotalRequests     int            `gorm:"default:0" json:"total_requests"`
	PreferredLanguage string         `gorm:"size:10;default:'en'" json:"preferred_language"`
	StripeCustomerID  *string        `gorm:"size:255" json:"-"`
	StripeAccountID   *string        `gorm:"size:255" json:"-"`
	PaymentMethods    datatypes.JSON `gorm:"type:jsonb;default:'[]'" json:"payment_methods"`
	JoinedAt          time.Time      `json:"joined_at"`
	CreatedAt         time.Time      `json:"created_at"`
	UpdatedAt         time.Time      `json:"updated_at"`
	DeletedAt         gorm.DeletedAt `gorm:"index" json:"-"`
}

// PaymentMethod is card metadata stored on the user; the processor holds the
// real instrument, this service only ever sees the summary.
type PaymentMethod struct {
	ID          string `json:"id"`
	Type        string `json:"type"` // card, bank_account
	Last4       string `json:"last4"`
	Brand       string `json:"brand,omitempty"`
	ExpiryMonth int    `json:"expiry_month,omitempty"`
	ExpiryYear  int    `json:"expiry_year,omitempty"`
	IsDefault   bool   `json:"is_default"`
}
