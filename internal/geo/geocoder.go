package geo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"googlemaps.github.io/maps"
)

var ErrNoGeocodeResult = errors.New("no geocoding result for location")

// Geocoder resolves a free-text location to coordinates. The zero value
// (no API key configured) resolves nothing, so addresses stay display-only.
type Geocoder interface {
	Geocode(ctx context.Context, address string) (Point, error)
}

// GoogleGeocoder resolves addresses through the Google Maps geocoding API.
type GoogleGeocoder struct {
	client *maps.Client
}

func NewGoogleGeocoder(apiKey string) (*GoogleGeocoder, error) {
	client, err := maps.NewClient(maps.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to init maps client: %w", err)
	}
	return &GoogleGeocoder{client: client}, nil
}

func (g *GoogleGeocoder) Geocode(ctx context.Context, address string) (Point, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	results, err := g.client.Geocode(ctx, &maps.GeocodingRequest{
		Address:  address,
		Language: "en",
	})
	if err != nil {
		return Point{}, fmt.Errorf("geocode failed: %w", err)
	}
	if len(results) == 0 {
		return Point{}, ErrNoGeocodeResult
	}

	loc := results[0].Geometry.Location
	return Point{Lat: loc.Lat, Lng: loc.Lng}, nil
}

// NoopGeocoder is used when no maps API key is configured.
type NoopGeocoder struct{}

func (NoopGeocoder) Geocode(context.Context, string) (Point, error) {
	return Point{}, ErrNoGeocodeResult
}
