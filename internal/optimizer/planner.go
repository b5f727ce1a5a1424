package optimizer

import (
	"context"
	"fmt"

	"github.com/aicc6/weather-flick-back-sub000/internal/models"
	"github.com/aicc6/weather-flick-back-sub000/internal/provider"
)

// Planner is the itinerary engine facade the HTTP layer talks to. It owns no
// state beyond its collaborators and is safe for concurrent use; every
// optimization request works on fresh data.
type Planner struct {
	client *provider.RouteClient
}

// NewPlanner builds a planner over the given route client
func NewPlanner(client *provider.RouteClient) *Planner {
	return &Planner{client: client}
}

// matrixMode picks the transport mode used for matrix construction and
// ordering: the caller's preference, or transit as the neutral default.
func matrixMode(constraints models.RouteConstraints) models.TransportMode {
	if constraints.TransportModePreference.Valid() {
		return constraints.TransportModePreference
	}
	return models.ModeTransit
}

// OptimizeDay orders one day's places and assembles the timed route.
// Start, when present, anchors the route but is not itself visited.
func (p *Planner) OptimizeDay(
	ctx context.Context,
	places []models.Place,
	start *models.Coordinate,
	constraints models.RouteConstraints,
	prefs models.Preferences,
	weekday string,
	day int,
) (*models.OptimizedRoute, error) {
	if len(places) == 0 {
		return nil, fmt.Errorf("optimize day %d: no places given", day)
	}

	for i := range places {
		places[i].Normalize()
	}

	points := make([]models.Coordinate, 0, len(places)+1)
	if start != nil {
		points = append(points, *start)
	}
	for _, place := range places {
		points = append(points, place.Location)
	}

	matrix, err := BuildMatrix(ctx, p.client.Estimator(), points, matrixMode(constraints))
	if err != nil {
		return nil, fmt.Errorf("optimize day %d: build distance matrix: %w", day, err)
	}

	result := Order(places, start != nil, matrix, constraints, weekday)
	if len(result.Ordered) == 0 {
		route := &models.OptimizedRoute{Day: day, Unvisited: result.Unvisited}
		return route, nil
	}

	route, err := p.assemble(ctx, result.Ordered, start, constraints, prefs, day)
	if err != nil {
		return nil, err
	}
	route.Unvisited = result.Unvisited

	return route, nil
}

// OptimizeTrip clusters places across days and optimizes each day. The
// accommodation, when given, anchors every day's route.
func (p *Planner) OptimizeTrip(
	ctx context.Context,
	places []models.Place,
	days int,
	start *models.Coordinate,
	constraints models.RouteConstraints,
	prefs models.Preferences,
	weekdays []string,
) (*models.MultiDayItinerary, error) {
	buckets := Cluster(places, days)

	itinerary := &models.MultiDayItinerary{Days: len(buckets)}

	for i, bucket := range buckets {
		weekday := ""
		if i < len(weekdays) {
			weekday = weekdays[i]
		}

		route, err := p.OptimizeDay(ctx, bucket, start, constraints, prefs, weekday, i+1)
		if err != nil {
			return nil, fmt.Errorf("optimize trip day %d: %w", i+1, err)
		}
		itinerary.DailyRoutes = append(itinerary.DailyRoutes, *route)

		itinerary.Summary.TotalPlaces += len(route.Places)
		itinerary.Summary.TotalDistanceKm += route.TotalDistanceKm
		itinerary.Summary.TotalDurationMinutes += route.TotalDurationMinutes
		itinerary.Summary.AverageEfficiency += route.EfficiencyScore
	}

	if len(itinerary.DailyRoutes) > 0 {
		itinerary.Summary.AverageEfficiency /= float64(len(itinerary.DailyRoutes))
	}

	return itinerary, nil
}
