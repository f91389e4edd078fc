// Package feed derives the visible request feed from the catalog: free-text
// search plus a sparse set of conjunctive field filters.
package feed

import (
	"strings"

	"github.com/neighborlyhelp/backend/internal/catalog"
)

// Filter is a sparse conjunctive predicate set. A zero-valued field imposes
// no constraint. RadiusKm is part of the shape but is not evaluated here —
// it only narrows the map view (see internal/geo).
type Filter struct {
	Category    catalog.Category    `json:"category,omitempty"`
	Urgency     catalog.Urgency     `json:"urgency,omitempty"`
	Status      catalog.Status      `json:"status,omitempty"`
	PaymentType catalog.PaymentType `json:"payment_type,omitempty"`
	RadiusKm    float64             `json:"radius_km,omitempty"`
}

// Empty reports whether the filter constrains anything the feed evaluates.
func (f Filter) Empty() bool {
	return f.Category == "" && f.Urgency == "" && f.Status == "" && f.PaymentType == ""
}

// Visible returns the requests matching the search term and every populated
// filter field, preserving input order. Search is a case-insensitive
// substring match on title or description.
func Visible(requests []*catalog.HelpRequest, searchTerm string, f Filter) []*catalog.HelpRequest {
	term := strings.ToLower(strings.TrimSpace(searchTerm))

	out := make([]*catalog.HelpRequest, 0, len(requests))
	for _, r := range requests {
		if term != "" &&
			!strings.Contains(strings.ToLower(r.Title), term) &&
			!strings.Contains(strings.ToLower(r.Description), term) {
			continue
		}
		if f.Category != "" && r.Category != f.Category {
			continue
		}
		if f.Urgency != "" && r.Urgency != f.Urgency {
			continue
		}
		if f.Status != "" && r.Status != f.Status {
			continue
		}
		if f.PaymentType != "" && r.PaymentType != f.PaymentType {
			continue
		}
		out = append(out, r)
	}
	return out
}
