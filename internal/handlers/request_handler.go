package handlers

import (
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/neighborlyhelp/backend/internal/catalog"
	"github.com/neighborlyhelp/backend/internal/dto"
	"github.com/neighborlyhelp/backend/internal/feed"
	"github.com/neighborlyhelp/backend/internal/geo"
	"github.com/neighborlyhelp/backend/internal/services"
	"github.com/neighborlyhelp/backend/internal/session"
)

type RequestHandler struct {
	catalog  *catalog.Catalog
	identity *services.IdentityService
	geocoder geo.Geocoder
}

func NewRequestHandler(cat *catalog.Catalog, identity *services.IdentityService, geocoder geo.Geocoder) *RequestHandler {
	return &RequestHandler{catalog: cat, identity: identity, geocoder: geocoder}
}

// List handles GET /api/requests — the filtered feed.
func (h *RequestHandler) List(c *fiber.Ctx) error {
	var q dto.FilterQuery
	if err := c.QueryParser(&q); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid query parameters",
		})
	}

	all := h.catalog.List()
	filter := q.Filter()
	visible := feed.Visible(all, q.Q, filter)

	return c.JSON(dto.FeedResponse{
		Requests: visible,
		Total:    len(all),
		Visible:  len(visible),
		Filtered: q.Q != "" || !filter.Empty(),
	})
}

// Get handles GET /api/requests/:id.
func (h *RequestHandler) Get(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request ID",
		})
	}

	req, err := h.catalog.Get(id)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
			Error: true, Message: "Request not found",
		})
	}

	return c.JSON(req)
}

// Create handles POST /api/requests.
func (h *RequestHandler) Create(c *fiber.Ctx) error {
	userID, err := session.UserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	user, err := h.identity.GetUser(userID)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	var req dto.CreateRequestRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	input := catalog.NewRequestInput{
		Title:           req.Title,
		Description:     req.Description,
		Category:        catalog.Category(req.Category),
		Urgency:         catalog.Urgency(req.Urgency),
		Location:        req.Location,
		Latitude:        req.Latitude,
		Longitude:       req.Longitude,
		PaymentType:     catalog.PaymentType(req.PaymentType),
		SuggestedAmount: req.SuggestedAmount,
		Currency:        req.Currency,
	}

	// backfill coordinates from the free-text location when possible;
	// a failed lookup leaves the address display-only
	if input.Latitude == nil || input.Longitude == nil {
		if point, err := h.geocoder.Geocode(c.Context(), req.Location); err == nil {
			input.Latitude = &point.Lat
			input.Longitude = &point.Lng
		} else if !errors.Is(err, geo.ErrNoGeocodeResult) {
			slog.Error("geocoding failed", "location", req.Location, "error", err)
		}
	}

	owner := catalog.Requester{
		ID:       user.ID,
		Name:     user.Name,
		Avatar:   user.Avatar,
		Rating:   user.Rating,
		Verified: user.Verified,
	}

	created, err := catalog.NewHelpRequest(input, owner, user.PreferredLanguage)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: err.Error(),
		})
	}

	h.catalog.Add(created)
	h.identity.RecordRequestCreated(user.ID)

	return c.Status(fiber.StatusCreated).JSON(created)
}

// Mine handles GET /api/requests/mine.
func (h *RequestHandler) Mine(c *fiber.Ctx) error {
	userID, err := session.UserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	mine := h.catalog.ListByOwner(userID)
	return c.JSON(dto.MyRequestsContent{Requests: mine, Total: len(mine)})
}
