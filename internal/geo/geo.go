// Package geo supplies the map boundary: marker projection, distance, and
// optional geocoding of free-text locations.
package geo

import (
	"math"

	"github.com/google/uuid"

	"github.com/neighborlyhelp/backend/internal/catalog"
)

const earthRadiusKm = 6371.0

// Point is a WGS84 coordinate pair.
type Point struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Marker is what the map renders for a request. Requests without
// coordinates never become markers; addresses stay display-only.
type Marker struct {
	RequestID uuid.UUID        `json:"request_id"`
	Title     string           `json:"title"`
	Category  catalog.Category `json:"category"`
	Urgency   catalog.Urgency  `json:"urgency"`
	Position  Point            `json:"position"`
}

// DistanceKm returns the great-circle distance between two points.
func DistanceKm(a, b Point) float64 {
	latA := a.Lat * math.Pi / 180
	latB := b.Lat * math.Pi / 180
	dLat := (b.Lat - a.Lat) * math.Pi / 180
	dLng := (b.Lng - a.Lng) * math.Pi / 180

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(latA)*math.Cos(latB)*math.Sin(dLng/2)*math.Sin(dLng/2)
	return 2 * earthRadiusKm * math.Asin(math.Sqrt(h))
}

// Markers projects the requests that carry coordinates, preserving order.
func Markers(requests []*catalog.HelpRequest) []Marker {
	out := make([]Marker, 0, len(requests))
	for _, r := range requests {
		if !r.HasCoordinates() {
			continue
		}
		out = append(out, Marker{
			RequestID: r.ID,
			Title:     r.Title,
			Category:  r.Category,
			Urgency:   r.Urgency,
			Position:  Point{Lat: *r.Latitude, Lng: *r.Longitude},
		})
	}
	return out
}

// WithinRadius keeps the markers at most radiusKm from origin. The radius
// constraint belongs to the map view only; the feed never applies it.
func WithinRadius(markers []Marker, origin Point, radiusKm float64) []Marker {
	if radiusKm <= 0 {
		return markers
	}
	out := make([]Marker, 0, len(markers))
	for _, m := range markers {
		if DistanceKm(origin, m.Position) <= radiusKm {
			out = append(out, m)
		}
	}
	return out
}
