package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/neighborlyhelp/backend/internal/catalog"
	"github.com/neighborlyhelp/backend/internal/database"
	"github.com/neighborlyhelp/backend/internal/dto"
)

type HealthHandler struct {
	catalog *catalog.Catalog
}

func NewHealthHandler(cat *catalog.Catalog) *HealthHandler {
	return &HealthHandler{catalog: cat}
}

func (h *HealthHandler) Check(c *fiber.Ctx) error {
	dbStatus := "ok"
	if err := database.Ping(); err != nil {
		dbStatus = "unhealthy: " + err.Error()
	}

	return c.JSON(dto.HealthResponse{
		Status:    "ok",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		DB:        dbStatus,
		Requests:  h.catalog.Len(),
	})
}
