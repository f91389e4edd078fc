package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/neighborlyhelp/backend/internal/dto"
	"github.com/neighborlyhelp/backend/internal/i18n"
)

type I18nHandler struct {
	registry   *i18n.Registry
	translator *i18n.Translator
}

func NewI18nHandler(registry *i18n.Registry, translator *i18n.Translator) *I18nHandler {
	return &I18nHandler{registry: registry, translator: translator}
}

// Languages handles GET /api/languages.
func (h *I18nHandler) Languages(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"languages": h.registry.All()})
}

// Translate handles POST /api/translate. Translation never fails from the
// caller's point of view: unavailable translations return the original text.
func (h *I18nHandler) Translate(c *fiber.Ctx) error {
	var req struct {
		Text   string `json:"text"`
		Target string `json:"target"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}
	if req.Text == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Text is required",
		})
	}

	translated := h.translator.Translate(req.Text, req.Target)
	return c.JSON(fiber.Map{
		"text":       req.Text,
		"target":     req.Target,
		"translated": translated,
	})
}
