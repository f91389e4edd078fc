package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/neighborlyhelp/backend/internal/dto"
	"github.com/neighborlyhelp/backend/internal/models"
	"github.com/neighborlyhelp/backend/internal/services"
	"github.com/neighborlyhelp/backend/internal/session"
)

type PaymentHandler struct {
	payments *services.PaymentService
}

func NewPaymentHandler(payments *services.PaymentService) *PaymentHandler {
	return &PaymentHandler{payments: payments}
}

// CreateIntent handles POST /api/payments/intent.
func (h *PaymentHandler) CreateIntent(c *fiber.Ctx) error {
	if _, err := session.UserID(c); err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	var req dto.CreateIntentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	intent, err := h.payments.CreateIntent(c.Context(), req.Amount, req.Currency, req.Description)
	if err != nil {
		if errors.Is(err, services.ErrInvalidAmount) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: true, Message: "Amount must be positive",
			})
		}
		return c.Status(fiber.StatusBadGateway).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to create payment intent",
		})
	}

	return c.JSON(dto.CreateIntentResponse{ClientSecret: intent.ClientSecret})
}

// Process handles POST /api/payments/process.
func (h *PaymentHandler) Process(c *fiber.Ctx) error {
	payerID, err := session.UserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	var req dto.ProcessPaymentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	requestID, err := uuid.Parse(req.RequestID)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request ID",
		})
	}
	receiverID, err := uuid.Parse(req.ReceiverID)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid receiver ID",
		})
	}

	payment, err := h.payments.ProcessPayment(c.Context(), requestID, payerID, receiverID, req.Amount, req.Currency, req.Purpose)
	if err != nil {
		if errors.Is(err, services.ErrInvalidAmount) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: true, Message: "Amount must be positive",
			})
		}
		if errors.Is(err, services.ErrPaymentFailed) {
			resp := dto.ProcessPaymentResponse{Success: false}
			if payment != nil {
				resp.Payment = *payment
			}
			return c.Status(fiber.StatusPaymentRequired).JSON(resp)
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Internal server error",
		})
	}

	return c.JSON(dto.ProcessPaymentResponse{Success: true, Payment: *payment})
}

// List handles GET /api/payments — the caller's payment history.
func (h *PaymentHandler) List(c *fiber.Ctx) error {
	payerID, err := session.UserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	payments, err := h.payments.ListByPayer(payerID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to list payments",
		})
	}

	return c.JSON(fiber.Map{"payments": payments, "total": len(payments)})
}

// AddPaymentMethod handles POST /api/payment-methods.
func (h *PaymentHandler) AddPaymentMethod(c *fiber.Ctx) error {
	userID, err := session.UserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	var req dto.AddPaymentMethodRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}
	if req.PaymentMethodID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Payment method ID is required",
		})
	}

	methodType := req.Type
	if methodType == "" {
		methodType = "card"
	}

	methods, err := h.payments.AddPaymentMethod(userID, models.PaymentMethod{
		ID:          req.PaymentMethodID,
		Type:        methodType,
		Last4:       req.Last4,
		Brand:       req.Brand,
		ExpiryMonth: req.ExpiryMonth,
		ExpiryYear:  req.ExpiryYear,
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to add payment method",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"payment_methods": methods})
}

// ListPaymentMethods handles GET /api/payment-methods.
func (h *PaymentHandler) ListPaymentMethods(c *fiber.Ctx) error {
	userID, err := session.UserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	methods, err := h.payments.ListPaymentMethods(userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to list payment methods",
		})
	}

	return c.JSON(fiber.Map{"payment_methods": methods})
}
