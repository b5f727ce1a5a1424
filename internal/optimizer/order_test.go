package optimizer

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aicc6/weather-flick-back-sub000/internal/geo"
	"github.com/aicc6/weather-flick-back-sub000/internal/models"
)

// A north-to-south line of places around Seoul, roughly 2 km apart
func linePlaces() []models.Place {
	places := make([]models.Place, 5)
	for i := range places {
		places[i] = models.Place{
			ID:                   string(rune('a' + i)),
			Name:                 "Place " + string(rune('A'+i)),
			Location:             models.Coordinate{Latitude: 37.50 + float64(i)*0.02, Longitude: 127.0},
			VisitDurationMinutes: 30,
			Priority:             1.0,
		}
	}
	return places
}

func buildTestMatrix(t *testing.T, places []models.Place, start *models.Coordinate) *Matrix {
	t.Helper()

	var points []models.Coordinate
	if start != nil {
		points = append(points, *start)
	}
	for _, p := range places {
		points = append(points, p.Location)
	}

	m, err := BuildMatrix(context.Background(), geo.NewEstimator(), points, models.ModeTransit)
	require.NoError(t, err)
	return m
}

func TestOrderVisitsEveryOpenPlace(t *testing.T) {
	places := linePlaces()
	matrix := buildTestMatrix(t, places, nil)

	result := Order(places, false, matrix, models.DefaultConstraints(), "mon")

	assert.Len(t, result.Ordered, len(places))
	assert.Empty(t, result.Unvisited)

	// The output must be a permutation of the input
	seen := map[string]int{}
	for _, p := range result.Ordered {
		seen[p.ID]++
	}
	for _, p := range places {
		assert.Equal(t, 1, seen[p.ID], "place %s must appear exactly once", p.ID)
	}
}

func TestOrderFollowsGeography(t *testing.T) {
	places := linePlaces()

	// Start south of the line: nearest-neighbor should sweep north
	start := models.Coordinate{Latitude: 37.48, Longitude: 127.0}
	matrix := buildTestMatrix(t, places, &start)

	result := Order(places, true, matrix, models.DefaultConstraints(), "mon")
	require.Len(t, result.Ordered, len(places))

	for i := 1; i < len(result.Ordered); i++ {
		assert.Greater(t, result.Ordered[i].Location.Latitude, result.Ordered[i-1].Location.Latitude,
			"a line of places should be visited in sweep order")
	}
}

func TestOrderPriorityPullsPlaceForward(t *testing.T) {
	places := linePlaces()

	// Without priorities the farthest place is visited last. Boosting its
	// priority against lukewarm neighbors pulls it forward.
	for i := range places {
		places[i].Priority = 0.2
	}
	places[len(places)-1].Priority = 1.0

	start := models.Coordinate{Latitude: 37.48, Longitude: 127.0}
	matrix := buildTestMatrix(t, places, &start)

	result := Order(places, true, matrix, models.DefaultConstraints(), "mon")
	require.NotEmpty(t, result.Ordered)

	assert.NotEqual(t, places[len(places)-1].ID, result.Ordered[len(result.Ordered)-1].ID,
		"high-priority place should not be left for last")
}

func TestOrderSkipsClosedPlaces(t *testing.T) {
	places := linePlaces()

	// Closed on Mondays
	places[2].OperatingHours = models.OperatingHours{
		"sat": {Open: 10 * 60, Close: 18 * 60},
	}

	matrix := buildTestMatrix(t, places, nil)
	result := Order(places, false, matrix, models.DefaultConstraints(), "mon")

	require.Len(t, result.Unvisited, 1)
	assert.Equal(t, places[2].ID, result.Unvisited[0].ID)
	assert.Len(t, result.Ordered, len(places)-1)
}

func TestOrderStopsAtDayEnd(t *testing.T) {
	places := linePlaces()
	for i := range places {
		places[i].VisitDurationMinutes = 180
	}

	constraints := models.DefaultConstraints()
	constraints.DayStart, _ = models.ParseClock("09:00")
	constraints.DayEnd, _ = models.ParseClock("12:00")

	matrix := buildTestMatrix(t, places, nil)
	result := Order(places, false, matrix, constraints, "mon")

	assert.NotEmpty(t, result.Unvisited, "a three hour day cannot hold five three hour visits")
	assert.Equal(t, len(places), len(result.Ordered)+len(result.Unvisited))
}

func TestOrderEmptyInput(t *testing.T) {
	result := Order(nil, false, &Matrix{}, models.DefaultConstraints(), "mon")
	assert.Empty(t, result.Ordered)
	assert.Empty(t, result.Unvisited)
}
