package dto

import "github.com/neighborlyhelp/backend/internal/models"

type CreateIntentRequest struct {
	Amount      float64 `json:"amount"`
	Currency    string  `json:"currency"`
	Description string  `json:"description"`
}

type CreateIntentResponse struct {
	ClientSecret string `json:"client_secret"`
}

type ProcessPaymentRequest struct {
	RequestID  string  `json:"request_id"`
	ReceiverID string  `json:"receiver_id"`
	Amount     float64 `json:"amount"`
	Currency   string  `json:"currency,omitempty"`
	Purpose    string  `json:"purpose,omitempty"` // service, donation, tip
}

type ProcessPaymentResponse struct {
	Success bool           `json:"success"`
	Payment models.Payment `json:"payment"`
}

type AddPaymentMethodRequest struct {
	PaymentMethodID string `json:"payment_method_id"`
	Type            string `json:"type,omitempty"`
	Last4           string `json:"last4,omitempty"`
	Brand           string `json:"brand,omitempty"`
	ExpiryMonth     int    `json:"expiry_month,omitempty"`
	ExpiryYear      int    `json:"expiry_year,omitempty"`
}

// PaymentWebhook is the processor's asynchronous outcome callback.
type PaymentWebhook struct {
	Event PaymentEvent `json:"event"`
}

type PaymentEvent struct {
	Type         string `json:"type"` // payment.completed, payment.failed, payment.refunded
	ProcessorRef string `json:"processor_ref"`
	OccurredAtMs int64  `json:"occurred_at_ms"`
}
