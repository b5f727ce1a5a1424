package optimizer

import (
	"context"
	"fmt"

	"github.com/aicc6/weather-flick-back-sub000/internal/geo"
	"github.com/aicc6/weather-flick-back-sub000/internal/models"
)

// Compare measures how much the optimizer improves on the caller's own
// visiting order. Both orders are costed with the local estimator so the
// comparison is deterministic and burns no provider quota.
func (p *Planner) Compare(
	ctx context.Context,
	places []models.Place,
	start *models.Coordinate,
	constraints models.RouteConstraints,
	weekday string,
) (*models.RouteComparison, error) {
	if len(places) < 2 {
		return nil, fmt.Errorf("compare: need at least 2 places, got %d", len(places))
	}

	normalized := make([]models.Place, len(places))
	copy(normalized, places)
	for i := range normalized {
		normalized[i].Normalize()
	}

	mode := matrixMode(constraints)
	estimator := p.client.Estimator()

	original := orderTotals(estimator, normalized, start, mode)

	points := make([]models.Coordinate, 0, len(normalized)+1)
	if start != nil {
		points = append(points, *start)
	}
	for _, place := range normalized {
		points = append(points, place.Location)
	}

	matrix, err := BuildMatrix(ctx, estimator, points, mode)
	if err != nil {
		return nil, fmt.Errorf("compare: build distance matrix: %w", err)
	}

	result := Order(normalized, start != nil, matrix, constraints, weekday)
	ordered := append(result.Ordered, result.Unvisited...)
	optimized := orderTotals(estimator, ordered, start, mode)

	return &models.RouteComparison{
		Original:               original,
		Optimized:              optimized,
		DistanceImprovementPct: improvementPct(original.DistanceKm, optimized.DistanceKm),
		DurationImprovementPct: improvementPct(float64(original.DurationMinutes), float64(optimized.DurationMinutes)),
	}, nil
}

// orderTotals sums the leg estimates of one visiting order
func orderTotals(estimator *geo.Estimator, places []models.Place, start *models.Coordinate, mode models.TransportMode) models.RouteTotals {
	var totals models.RouteTotals

	prev := start
	for i := range places {
		if prev != nil {
			km, minutes := estimator.DistanceAndTime(*prev, places[i].Location, mode)
			totals.DistanceKm += km
			totals.DurationMinutes += minutes
		}
		prev = &places[i].Location
	}

	return totals
}

func improvementPct(original, optimized float64) float64 {
	if original <= 0 {
		return 0
	}
	return (original - optimized) / original * 100
}
