package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/neighborlyhelp/backend/internal/catalog"
	"github.com/neighborlyhelp/backend/internal/dto"
	"github.com/neighborlyhelp/backend/internal/feed"
	"github.com/neighborlyhelp/backend/internal/geo"
	"github.com/neighborlyhelp/backend/internal/services"
	"github.com/neighborlyhelp/backend/internal/session"
	"github.com/neighborlyhelp/backend/internal/view"
)

type ViewHandler struct {
	catalog  *catalog.Catalog
	identity *services.IdentityService
	payments *services.PaymentService
}

func NewViewHandler(cat *catalog.Catalog, identity *services.IdentityService, payments *services.PaymentService) *ViewHandler {
	return &ViewHandler{catalog: cat, identity: identity, payments: payments}
}

// Resolve handles GET /api/views/:name. The access gate runs first: a
// protected view without a session resolves to the feed with the sign-in
// prompt raised, never an error.
func (h *ViewHandler) Resolve(c *fiber.Ctx) error {
	authenticated := session.Authenticated(c)

	res, err := view.Resolve(view.Name(c.Params("name")), authenticated)
	if err != nil {
		var unknown view.ErrUnknownView
		if errors.As(err, &unknown) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Internal server error",
		})
	}

	content, err := h.content(c, res.View)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to load view content",
		})
	}

	return c.JSON(dto.ViewResponse{
		View:         string(res.View),
		SignInPrompt: res.SignInPrompt,
		Content:      content,
	})
}

func (h *ViewHandler) content(c *fiber.Ctx, name view.Name) (interface{}, error) {
	switch name {
	case view.Feed:
		var q dto.FilterQuery
		if err := c.QueryParser(&q); err != nil {
			q = dto.FilterQuery{}
		}
		all := h.catalog.List()
		filter := q.Filter()
		visible := feed.Visible(all, q.Q, filter)
		return dto.FeedResponse{
			Requests: visible,
			Total:    len(all),
			Visible:  len(visible),
			Filtered: q.Q != "" || !filter.Empty(),
		}, nil

	case view.Map:
		return dto.MapContent{Markers: h.markers(c)}, nil

	case view.MyRequests:
		userID, err := session.UserID(c)
		if err != nil {
			return nil, err
		}
		mine := h.catalog.ListByOwner(userID)
		return dto.MyRequestsContent{Requests: mine, Total: len(mine)}, nil

	case view.Profile:
		userID, err := session.UserID(c)
		if err != nil {
			return nil, err
		}
		user, err := h.identity.GetUser(userID)
		if err != nil {
			return nil, err
		}
		methods, err := h.payments.ListPaymentMethods(userID)
		if err != nil {
			methods = nil
		}
		return dto.ProfileContent{User: *user, PaymentMethods: methods}, nil

	case view.CreateRequest:
		return dto.CreateRequestContent{
			Categories: []catalog.Category{
				catalog.CategoryEducation, catalog.CategoryErrands,
				catalog.CategoryDonations, catalog.CategorySkills,
				catalog.CategoryElderCare,
			},
			Urgencies: []catalog.Urgency{
				catalog.UrgencyLow, catalog.UrgencyMedium, catalog.UrgencyHigh,
			},
			PaymentTypes: []catalog.PaymentType{
				catalog.PaymentFree, catalog.PaymentPaid, catalog.PaymentDonation,
			},
		}, nil
	}
	return nil, nil
}

// Markers handles GET /api/map/markers. Public: the map is readable without
// a session. The radius constraint applies here and only here.
func (h *ViewHandler) Markers(c *fiber.Ctx) error {
	return c.JSON(dto.MapContent{Markers: h.markers(c)})
}

func (h *ViewHandler) markers(c *fiber.Ctx) []geo.Marker {
	var q dto.FilterQuery
	if err := c.QueryParser(&q); err != nil {
		q = dto.FilterQuery{}
	}

	visible := feed.Visible(h.catalog.List(), q.Q, q.Filter())
	markers := geo.Markers(visible)

	lat := c.QueryFloat("lat")
	lng := c.QueryFloat("lng")
	if q.RadiusKm > 0 && (lat != 0 || lng != 0) {
		markers = geo.WithinRadius(markers, geo.Point{Lat: lat, Lng: lng}, q.RadiusKm)
	}
	return markers
}
