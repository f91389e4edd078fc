package catalog

import (
	"log/slog"
	"time"

	"github.com/google/uuid"
)

type seedRequest struct {
	Title           string
	Description     string
	Category        Category
	Urgency         Urgency
	Location        string
	Lat, Lng        float64
	PaymentType     PaymentType
	SuggestedAmount float64
	Requester       Requester
}

var seedRequesters = []Requester{
	{ID: uuid.MustParse("0b1f8c1a-55c8-4b6e-9a52-0a2f64f5d101"), Name: "Maria Santos", Rating: 4.8, Verified: true},
	{ID: uuid.MustParse("3d92a7de-8a3c-4d0f-bb1e-57a3a9c2d202"), Name: "James Chen", Rating: 4.6, Verified: true},
	{ID: uuid.MustParse("7f44b0c2-1e9d-4f7a-8c3b-91d2e8b4a303"), Name: "Dorothy Miller", Rating: 5.0, Verified: false},
	{ID: uuid.MustParse("a95cd3f1-6b72-4e18-9d4c-28c5f7e1b404"), Name: "Ahmed Hassan", Rating: 4.9, Verified: true},
}

// seedRequests mirror the demo content the product ships with. Titles are
// also keys of the mock translation table in internal/i18n.
var seedRequests = []seedRequest{
	{
		Title:       "Need help with grocery shopping",
		Description: "Looking for someone to help me with weekly grocery shopping. I have mobility issues and would appreciate help carrying bags from the store.",
		Category:    CategoryErrands, Urgency: UrgencyMedium,
		Location: "Mission District, San Francisco", Lat: 37.7599, Lng: -122.4148,
		PaymentType: PaymentPaid, SuggestedAmount: 25,
		Requester: seedRequesters[2],
	},
	{
		Title:       "Math tutoring for high school student",
		Description: "My daughter needs help with algebra and geometry. Looking for a patient tutor, two evenings a week.",
		Category:    CategoryEducation, Urgency: UrgencyLow,
		Location: "Sunset District, San Francisco", Lat: 37.7431, Lng: -122.4660,
		PaymentType: PaymentPaid, SuggestedAmount: 40,
		Requester: seedRequesters[1],
	},
	{
		Title:       "Furniture donation pickup",
		Description: "Giving away a sofa and two chairs in good condition. Need someone with a truck to pick them up this weekend.",
		Category:    CategoryDonations, Urgency: UrgencyLow,
		Location: "Oakland, CA", Lat: 37.8044, Lng: -122.2712,
		PaymentType: PaymentFree,
		Requester:   seedRequesters[0],
	},
	{
		Title:       "Computer repair assistance",
		Description: "My laptop won't start and I have important documents on it. Looking for someone who knows computers.",
		Category:    CategorySkills, Urgency: UrgencyHigh,
		Location: "Berkeley, CA", Lat: 37.8715, Lng: -122.2730,
		PaymentType: PaymentPaid, SuggestedAmount: 50,
		Requester: seedRequesters[3],
	},
	{
		Title:       "Companion for elderly parent",
		Description: "Looking for a kind person to spend a few hours a week with my mother. She enjoys card games and walks in the park.",
		Category:    CategoryElderCare, Urgency: UrgencyMedium,
		Location: "Richmond District, San Francisco", Lat: 37.7775, Lng: -122.4747,
		PaymentType: PaymentPaid, SuggestedAmount: 20,
		Requester: seedRequesters[1],
	},
	{
		Title:       "Dog walking service needed",
		Description: "Recovering from surgery and can't walk my golden retriever for the next two weeks. He's friendly and well behaved.",
		Category:    CategoryErrands, Urgency: UrgencyHigh,
		Location: "Noe Valley, San Francisco", Lat: 37.7502, Lng: -122.4337,
		PaymentType: PaymentDonation, SuggestedAmount: 15,
		Requester: seedRequesters[0],
	},
	{
		Title:       "Piano lessons for beginner",
		Description: "Always wanted to learn piano. Looking for someone patient who can teach an absolute beginner on weekends.",
		Category:    CategorySkills, Urgency: UrgencyLow,
		Location: "Castro District, San Francisco", Lat: 37.7609, Lng: -122.4350,
		PaymentType: PaymentPaid, SuggestedAmount: 35,
		Requester: seedRequesters[3],
	},
	{
		Title:       "Garden tools to donate",
		Description: "Downsizing and giving away a full set of garden tools, pots and a wheelbarrow. First come, first served.",
		Category:    CategoryDonations, Urgency: UrgencyLow,
		Location: "Daly City, CA", Lat: 37.6879, Lng: -122.4702,
		PaymentType: PaymentFree,
		Requester:   seedRequesters[2],
	},
}

// Seed fills an empty catalog with the demo requests. The first entry of
// seedRequests ends up newest in the feed.
func Seed(c *Catalog) {
	if c.Len() > 0 {
		return
	}

	now := time.Now().UTC()
	for i := len(seedRequests) - 1; i >= 0; i-- {
		sr := seedRequests[i]
		lat, lng := sr.Lat, sr.Lng
		req, err := NewHelpRequest(NewRequestInput{
			Title:           sr.Title,
			Description:     sr.Description,
			Category:        sr.Category,
			Urgency:         sr.Urgency,
			Location:        sr.Location,
			Latitude:        &lat,
			Longitude:       &lng,
			PaymentType:     sr.PaymentType,
			SuggestedAmount: sr.SuggestedAmount,
			Currency:        "USD",
		}, sr.Requester, "en")
		if err != nil {
			slog.Error("invalid seed request", "title", sr.Title, "error", err)
			continue
		}
		// stagger timestamps so the feed has a stable, plausible history
		req.CreatedAt = now.Add(-time.Duration(i*7) * time.Hour)
		c.Add(req)
	}

	slog.Info("catalog seeded", "requests", c.Len())
}
