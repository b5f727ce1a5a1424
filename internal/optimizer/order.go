package optimizer

import (
	"github.com/aicc6/weather-flick-back-sub000/internal/models"
)

// priorityPenalty is the score penalty, in minutes (or km when optimizing
// for distance), applied per unit of missing priority.
const priorityPenalty = 30.0

// OrderResult is the outcome of ordering one day. Unvisited places were
// pruned by operating hours or the day budget and are reported, never
// silently dropped.
type OrderResult struct {
	Ordered   []models.Place
	Unvisited []models.Place
}

// Order produces a feasible visiting order with a priority-weighted
// nearest-neighbor walk over the matrix.
//
// The matrix must cover the start location (row 0) followed by the places
// when hasStart is true, or just the places otherwise; without a start the
// first supplied place seeds the route. This is a deliberately greedy
// heuristic: day sizes stay small (around 15 places) and an exact ordering
// is a non-goal.
func Order(places []models.Place, hasStart bool, matrix *Matrix, constraints models.RouteConstraints, weekday string) OrderResult {
	if len(places) == 0 {
		return OrderResult{}
	}

	offset := 0
	if hasStart {
		offset = 1
	}

	currentTime := int(constraints.DayStart)
	dayEnd := int(constraints.DayEnd)

	visited := make([]bool, len(places))
	ordered := make([]models.Place, 0, len(places))
	currentIdx := 0 // matrix row of the current position

	if !hasStart {
		// First place seeds the route and is visited immediately.
		visited[0] = true
		ordered = append(ordered, places[0])
		currentTime += places[0].VisitDurationMinutes
	}

	metric := func(from, to int) float64 {
		if constraints.PrioritizeDistanceOverTime {
			return matrix.Km[from][to]
		}
		return matrix.Minutes[from][to]
	}

	for len(ordered) < len(places) && currentTime <= dayEnd {
		bestIdx := -1
		bestScore := 0.0

		for i, place := range places {
			if visited[i] {
				continue
			}
			if !place.OperatingHours.OpenAt(weekday, models.Clock(currentTime)) {
				continue
			}

			score := metric(currentIdx, i+offset) + (1-place.Priority)*priorityPenalty
			if bestIdx == -1 || score < bestScore {
				bestIdx = i
				bestScore = score
			}
		}

		// Everything left is closed, or the day budget ran out.
		if bestIdx == -1 {
			break
		}

		visited[bestIdx] = true
		ordered = append(ordered, places[bestIdx])
		currentTime += int(matrix.Minutes[currentIdx][bestIdx+offset]) + places[bestIdx].VisitDurationMinutes
		currentIdx = bestIdx + offset
	}

	var unvisited []models.Place
	for i, place := range places {
		if !visited[i] {
			unvisited = append(unvisited, place)
		}
	}

	return OrderResult{Ordered: ordered, Unvisited: unvisited}
}
