package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/neighborlyhelp/backend/internal/catalog"
)

var (
	missionSF = Point{Lat: 37.7599, Lng: -122.4148}
	oakland   = Point{Lat: 37.8044, Lng: -122.2712}
)

func TestDistanceKm(t *testing.T) {
	assert.Zero(t, DistanceKm(missionSF, missionSF))

	// Mission District to downtown Oakland is roughly 13.5 km
	d := DistanceKm(missionSF, oakland)
	assert.InDelta(t, 13.5, d, 1.0)

	// symmetric
	assert.InDelta(t, d, DistanceKm(oakland, missionSF), 1e-9)
}

func TestMarkersSkipRequestsWithoutCoordinates(t *testing.T) {
	lat, lng := missionSF.Lat, missionSF.Lng

	withCoords, err := catalog.NewHelpRequest(catalog.NewRequestInput{
		Title:       "Grocery help",
		Description: "Weekly grocery run",
		Category:    catalog.CategoryErrands,
		Urgency:     catalog.UrgencyHigh,
		Location:    "Mission District, San Francisco",
		Latitude:    &lat,
		Longitude:   &lng,
	}, catalog.Requester{Name: "Fixture User"}, "en")
	require.NoError(t, err)

	withoutCoords, err := catalog.NewHelpRequest(catalog.NewRequestInput{
		Title:       "Math tutor",
		Description: "Algebra tutoring",
		Category:    catalog.CategoryEducation,
		Urgency:     catalog.UrgencyLow,
		Location:    "somewhere without a pin",
	}, catalog.Requester{Name: "Fixture User"}, "en")
	require.NoError(t, err)

	markers := Markers([]*catalog.HelpRequest{withCoords, withoutCoords})

	require.Len(t, markers, 1)
	assert.Equal(t, withCoords.ID, markers[0].RequestID)
	assert.Equal(t, "Grocery help", markers[0].Title)
	assert.Equal(t, missionSF, markers[0].Position)
}

func TestWithinRadius(t *testing.T) {
	markers := []Marker{
		{Title: "near", Position: Point{Lat: 37.7609, Lng: -122.4350}},
		{Title: "far", Position: oakland},
	}

	got := WithinRadius(markers, missionSF, 5)
	require.Len(t, got, 1)
	assert.Equal(t, "near", got[0].Title)
}

func TestWithinRadiusZeroIsPassthrough(t *testing.T) {
	markers := []Marker{
		{Title: "near", Position: missionSF},
		{Title: "far", Position: oakland},
	}

	assert.Equal(t, markers, WithinRadius(markers, missionSF, 0))
	assert.Equal(t, markers, WithinRadius(markers, missionSF, -1))
}
