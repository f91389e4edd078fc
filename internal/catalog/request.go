package catalog

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Category of a help request.
type Category string

const (
	CategoryEducation Category = "education"
	CategoryErrands   Category = "errands"
	CategoryDonations Category = "donations"
	CategorySkills    Category = "skills"
	CategoryElderCare Category = "elder-care"
)

// Urgency of a help request.
type Urgency string

const (
	UrgencyLow    Urgency = "low"
	UrgencyMedium Urgency = "medium"
	UrgencyHigh   Urgency = "high"
)

// Status is the request lifecycle state.
type Status string

const (
	StatusOpen       Status = "open"
	StatusInProgress Status = "in-progress"
	StatusCompleted  Status = "completed"
	StatusCancelled  Status = "cancelled"
)

// PaymentType describes how a request is compensated.
type PaymentType string

const (
	PaymentFree     PaymentType = "free"
	PaymentPaid     PaymentType = "paid"
	PaymentDonation PaymentType = "donation"
)

const maxDescriptionLen = 500

var (
	ErrMissingField    = errors.New("missing required field")
	ErrInvalidField    = errors.New("invalid field value")
	ErrRequestNotFound = errors.New("request not found")
)

// Requester is the owner snapshot embedded in a request at creation time.
type Requester struct {
	ID       uuid.UUID `json:"id"`
	Name     string    `json:"name"`
	Avatar   string    `json:"avatar,omitempty"`
	Rating   float64   `json:"rating"`
	Verified bool      `json:"verified"`
}

// Offer is a helper's proposal on a request. Offers are carried on the
// request and serialized with it; there is no creation endpoint yet.
type Offer struct {
	ID             uuid.UUID `json:"id"`
	RequestID      uuid.UUID `json:"request_id"`
	HelperID       uuid.UUID `json:"helper_id"`
	HelperName     string    `json:"helper_name"`
	Message        string    `json:"message"`
	ProposedAmount float64   `json:"proposed_amount,omitempty"`
	Currency       string    `json:"currency,omitempty"`
	Status         string    `json:"status"` // pending, accepted, declined
	CreatedAt      time.Time `json:"created_at"`
}

// HelpRequest is a community ask for assistance. Requests live in the
// in-memory catalog only; they are not persisted.
type HelpRequest struct {
	ID               uuid.UUID   `json:"id"`
	Title            string      `json:"title"`
	Description      string      `json:"description"`
	Category         Category    `json:"category"`
	Urgency          Urgency     `json:"urgency"`
	Location         string      `json:"location"`
	Latitude         *float64    `json:"latitude,omitempty"`
	Longitude        *float64    `json:"longitude,omitempty"`
	RequesterID      uuid.UUID   `json:"requester_id"`
	Requester        Requester   `json:"requester"`
	Status           Status      `json:"status"`
	CreatedAt        time.Time   `json:"created_at"`
	CompletedAt      *time.Time  `json:"completed_at,omitempty"`
	Offers           []Offer     `json:"offers"`
	AcceptedOffer    *uuid.UUID  `json:"accepted_offer,omitempty"`
	OriginalLanguage string      `json:"original_language,omitempty"`
	PaymentType      PaymentType `json:"payment_type"`
	SuggestedAmount  float64     `json:"suggested_amount,omitempty"`
	Currency         string      `json:"currency,omitempty"`
}

// NewRequestInput is the caller-supplied shape validated by NewHelpRequest.
type NewRequestInput struct {
	Title           string
	Description     string
	Category        Category
	Urgency         Urgency
	Location        string
	Latitude        *float64
	Longitude       *float64
	PaymentType     PaymentType
	SuggestedAmount float64
	Currency        string
}

// NewHelpRequest validates input at the boundary and builds an open request
// owned by the given requester. A free request drops any suggested amount;
// a paid request must carry a positive one.
func NewHelpRequest(in NewRequestInput, requester Requester, language string) (*HelpRequest, error) {
	if strings.TrimSpace(in.Title) == "" {
		return nil, fmt.Errorf("%w: title", ErrMissingField)
	}
	if strings.TrimSpace(in.Description) == "" {
		return nil, fmt.Errorf("%w: description", ErrMissingField)
	}
	if len(in.Description) > maxDescriptionLen {
		return nil, fmt.Errorf("%w: description exceeds %d characters", ErrInvalidField, maxDescriptionLen)
	}
	if strings.TrimSpace(in.Location) == "" {
		return nil, fmt.Errorf("%w: location", ErrMissingField)
	}
	if !in.Category.Valid() {
		return nil, fmt.Errorf("%w: category %q", ErrInvalidField, in.Category)
	}
	if !in.Urgency.Valid() {
		return nil, fmt.Errorf("%w: urgency %q", ErrInvalidField, in.Urgency)
	}

	paymentType := in.PaymentType
	if paymentType == "" {
		paymentType = PaymentFree
	}
	if !paymentType.Valid() {
		return nil, fmt.Errorf("%w: payment_type %q", ErrInvalidField, in.PaymentType)
	}

	amount := in.SuggestedAmount
	currency := in.Currency
	switch paymentType {
	case PaymentFree:
		// free requests never carry an amount
		amount = 0
		currency = ""
	case PaymentPaid:
		if amount <= 0 {
			return nil, fmt.Errorf("%w: paid request requires a positive suggested_amount", ErrInvalidField)
		}
	case PaymentDonation:
		if amount < 0 {
			return nil, fmt.Errorf("%w: suggested_amount must not be negative", ErrInvalidField)
		}
	}
	if amount > 0 && currency == "" {
		currency = "USD"
	}

	if language == "" {
		language = "en"
	}

	return &HelpRequest{
		ID:               uuid.New(),
		Title:            strings.TrimSpace(in.Title),
		Description:      strings.TrimSpace(in.Description),
		Category:         in.Category,
		Urgency:          in.Urgency,
		Location:         strings.TrimSpace(in.Location),
		Latitude:         in.Latitude,
		Longitude:        in.Longitude,
		RequesterID:      requester.ID,
		Requester:        requester,
		Status:           StatusOpen,
		CreatedAt:        time.Now().UTC(),
		Offers:           []Offer{},
		OriginalLanguage: language,
		PaymentType:      paymentType,
		SuggestedAmount:  amount,
		Currency:         currency,
	}, nil
}

func (c Category) Valid() bool {
	switch c {
	case CategoryEducation, CategoryErrands, CategoryDonations, CategorySkills, CategoryElderCare:
		return true
	}
	return false
}

func (u Urgency) Valid() bool {
	switch u {
	case UrgencyLow, UrgencyMedium, UrgencyHigh:
		return true
	}
	return false
}

func (s Status) Valid() bool {
	switch s {
	case StatusOpen, StatusInProgress, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

func (p PaymentType) Valid() bool {
	switch p {
	case PaymentFree, PaymentPaid, PaymentDonation:
		return true
	}
	return false
}

// HasCoordinates reports whether the request can be pinned on a map.
func (r *HelpRequest) HasCoordinates() bool {
	return r.Latitude != nil && r.Longitude != nil
}
