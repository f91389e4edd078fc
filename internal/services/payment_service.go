package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/neighborlyhelp/backend/internal/dto"
	"github.com/neighborlyhelp/backend/internal/models"
)

var (
	ErrInvalidAmount   = errors.New("amount must be positive")
	ErrPaymentFailed   = errors.New("payment failed")
	ErrPaymentNotFound = errors.New("payment not found")
)

// PaymentService orchestrates the payment-intent lifecycle against the
// external processor and records every transfer. It holds no funds and
// computes no balances.
type PaymentService struct {
	db              *gorm.DB
	processor       Processor
	defaultCurrency string
}

func NewPaymentService(db *gorm.DB, processor Processor, defaultCurrency string) *PaymentService {
	return &PaymentService{db: db, processor: processor, defaultCurrency: defaultCurrency}
}

// CreateIntent validates the amount and asks the processor for a
// client-side confirmation handle.
func (s *PaymentService) CreateIntent(ctx context.Context, amount float64, currency, description string) (*Intent, error) {
	if amount <= 0 {
		return nil, ErrInvalidAmount
	}
	if currency == "" {
		currency = s.defaultCurrency
	}

	intent, err := s.processor.CreateIntent(ctx, amount, currency, description)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPaymentFailed, err)
	}
	return intent, nil
}

// ProcessPayment records a pending payment, runs the charge, and finalizes
// the record. On processor rejection the payment is marked failed and
// ErrPaymentFailed is returned; the session and catalog are untouched.
func (s *PaymentService) ProcessPayment(ctx context.Context, requestID, payerID, receiverID uuid.UUID, amount float64, currency, purpose string) (*models.Payment, error) {
	if amount <= 0 {
		return nil, ErrInvalidAmount
	}
	if currency == "" {
		currency = s.defaultCurrency
	}
	if purpose == "" {
		purpose = models.PaymentPurposeService
	}

	payment := models.Payment{
		ID:          uuid.New(),
		RequestID:   requestID,
		PayerID:     payerID,
		ReceiverID:  receiverID,
		Amount:      amount,
		Currency:    currency,
		Purpose:     purpose,
		Status:      models.PaymentStatusPending,
		Description: fmt.Sprintf("Help request payment (%s)", purpose),
	}
	if err := s.db.Create(&payment).Error; err != nil {
		return nil, fmt.Errorf("failed to record payment: %w", err)
	}

	intent, err := s.processor.CreateIntent(ctx, amount, currency, payment.Description)
	if err != nil {
		s.markFailed(&payment)
		return &payment, fmt.Errorf("%w: %v", ErrPaymentFailed, err)
	}

	s.db.Model(&payment).Update("processor_ref", intent.Ref)
	payment.ProcessorRef = intent.Ref

	if err := s.processor.Charge(ctx, intent.Ref); err != nil {
		s.markFailed(&payment)
		return &payment, fmt.Errorf("%w: %v", ErrPaymentFailed, err)
	}

	now := time.Now().UTC()
	if err := s.db.Model(&payment).Updates(map[string]interface{}{
		"status":       models.PaymentStatusCompleted,
		"completed_at": now,
	}).Error; err != nil {
		return nil, fmt.Errorf("failed to finalize payment: %w", err)
	}
	payment.Status = models.PaymentStatusCompleted
	payment.CompletedAt = &now

	slog.Info("payment completed", "payment_id", payment.ID, "request_id", requestID, "amount", amount)
	return &payment, nil
}

func (s *PaymentService) markFailed(payment *models.Payment) {
	if err := s.db.Model(payment).Update("status", models.PaymentStatusFailed).Error; err != nil {
		slog.Error("failed to mark payment failed", "payment_id", payment.ID, "error", err)
	}
	payment.Status = models.PaymentStatusFailed
}

// ListByPayer returns the user's payment history, newest first.
func (s *PaymentService) ListByPayer(payerID uuid.UUID) ([]models.Payment, error) {
	var payments []models.Payment
	if err := s.db.Where("payer_id = ?", payerID).
		Order("created_at DESC").Find(&payments).Error; err != nil {
		return nil, fmt.Errorf("failed to list payments: %w", err)
	}
	return payments, nil
}

// HandleWebhookEvent applies the processor's asynchronous outcome to the
// matching payment record.
func (s *PaymentService) HandleWebhookEvent(event *dto.PaymentEvent) error {
	var payment models.Payment
	if err := s.db.Where("processor_ref = ?", event.ProcessorRef).First(&payment).Error; err != nil {
		return fmt.Errorf("%w: ref %s", ErrPaymentNotFound, event.ProcessorRef)
	}

	switch event.Type {
	case "payment.completed":
		return s.db.Model(&payment).Updates(map[string]interface{}{
			"status":       models.PaymentStatusCompleted,
			"completed_at": msToTime(event.OccurredAtMs),
		}).Error
	case "payment.failed":
		return s.db.Model(&payment).Update("status", models.PaymentStatusFailed).Error
	case "payment.refunded":
		return s.db.Model(&payment).Update("status", models.PaymentStatusRefunded).Error
	default:
		return nil
	}
}

// AddPaymentMethod appends card metadata to the user's stored methods; the
// first method becomes the default.
func (s *PaymentService) AddPaymentMethod(userID uuid.UUID, method models.PaymentMethod) ([]models.PaymentMethod, error) {
	var user models.User
	if err := s.db.First(&user, "id = ?", userID).Error; err != nil {
		return nil, ErrUserNotFound
	}

	methods, err := decodePaymentMethods(user.PaymentMethods)
	if err != nil {
		// corrupt stored state degrades to an empty list
		methods = nil
	}

	method.IsDefault = len(methods) == 0
	methods = append(methods, method)

	raw, err := json.Marshal(methods)
	if err != nil {
		return nil, fmt.Errorf("failed to encode payment methods: %w", err)
	}
	if err := s.db.Model(&user).Update("payment_methods", raw).Error; err != nil {
		return nil, fmt.Errorf("failed to store payment method: %w", err)
	}

	return methods, nil
}

// ListPaymentMethods returns the user's stored card metadata.
func (s *PaymentService) ListPaymentMethods(userID uuid.UUID) ([]models.PaymentMethod, error) {
	var user models.User
	if err := s.db.First(&user, "id = ?", userID).Error; err != nil {
		return nil, ErrUserNotFound
	}

	methods, err := decodePaymentMethods(user.PaymentMethods)
	if err != nil {
		return []models.PaymentMethod{}, nil
	}
	return methods, nil
}

func decodePaymentMethods(raw []byte) ([]models.PaymentMethod, error) {
	if len(raw) == 0 {
		return []models.PaymentMethod{}, nil
	}
	var methods []models.PaymentMethod
	if err := json.Unmarshal(raw, &methods); err != nil {
		return nil, err
	}
	if methods == nil {
		methods = []models.PaymentMethod{}
	}
	return methods, nil
}

func msToTime(ms int64) time.Time {
	if ms <= 0 {
		return time.Now().UTC()
	}
	return time.Unix(ms/1000, (ms%1000)*int64(time.Millisecond))
}
