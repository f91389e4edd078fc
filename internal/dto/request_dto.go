package dto

import (
	"github.com/neighborlyhelp/backend/internal/catalog"
	"github.com/neighborlyhelp/backend/internal/feed"
	"github.com/neighborlyhelp/backend/internal/geo"
	"github.com/neighborlyhelp/backend/internal/models"
)

type CreateRequestRequest struct {
	Title           string   `json:"title"`
	Description     string   `json:"description"`
	Category        string   `json:"category"`
	Urgency         string   `json:"urgency"`
	Location        string   `json:"location"`
	Latitude        *float64 `json:"latitude,omitempty"`
	Longitude       *float64 `json:"longitude,omitempty"`
	PaymentType     string   `json:"payment_type"`
	SuggestedAmount float64  `json:"suggested_amount,omitempty"`
	Currency        string   `json:"currency,omitempty"`
}

// FeedResponse carries the filtered feed plus the counts the front end uses
// for its welcome banner and empty states.
type FeedResponse struct {
	Requests []*catalog.HelpRequest `json:"requests"`
	Total    int                    `json:"total"`
	Visible  int                    `json:"visible"`
	Filtered bool                   `json:"filtered"`
}

// ViewResponse is the resolved view state plus the content that view renders.
type ViewResponse struct {
	View         string      `json:"view"`
	SignInPrompt bool        `json:"sign_in_prompt"`
	Content      interface{} `json:"content,omitempty"`
}

// MyRequestsContent is the owner's request list for the my-requests view and
// the /api/requests/mine endpoint.
type MyRequestsContent struct {
	Requests []*catalog.HelpRequest `json:"requests"`
	Total    int                    `json:"total"`
}

type ProfileContent struct {
	User           models.User            `json:"user"`
	PaymentMethods []models.PaymentMethod `json:"payment_methods"`
}

type MapContent struct {
	Markers []geo.Marker `json:"markers"`
}

// CreateRequestContent is the form metadata for the create-request view.
type CreateRequestContent struct {
	Categories   []catalog.Category    `json:"categories"`
	Urgencies    []catalog.Urgency     `json:"urgencies"`
	PaymentTypes []catalog.PaymentType `json:"payment_types"`
}

// FilterQuery mirrors feed.Filter for query-string binding.
type FilterQuery struct {
	Q           string  `query:"q"`
	Category    string  `query:"category"`
	Urgency     string  `query:"urgency"`
	Status      string  `query:"status"`
	PaymentType string  `query:"payment_type"`
	RadiusKm    float64 `query:"radius_km"`
}

// Filter converts the bound query values into the engine's filter shape.
func (q FilterQuery) Filter() feed.Filter {
	return feed.Filter{
		Category:    catalog.Category(q.Category),
		Urgency:     catalog.Urgency(q.Urgency),
		Status:      catalog.Status(q.Status),
		PaymentType: catalog.PaymentType(q.PaymentType),
		RadiusKm:    q.RadiusKm,
	}
}
