package optimizer

import (
	"context"

	"github.com/aicc6/weather-flick-back-sub000/internal/geo"
	"github.com/aicc6/weather-flick-back-sub000/internal/models"
	"github.com/aicc6/weather-flick-back-sub000/internal/provider"
)

// Mode recommendation distance thresholds (straight-line km)
const (
	walkThresholdKm    = 1.0
	transitThresholdKm = 10.0
	ecoWalkKm          = 2.0
)

// assemble resolves a concrete estimate per leg and lays the ordered places
// onto a running clock.
func (p *Planner) assemble(
	ctx context.Context,
	ordered []models.Place,
	start *models.Coordinate,
	constraints models.RouteConstraints,
	prefs models.Preferences,
	day int,
) (*models.OptimizedRoute, error) {
	route := &models.OptimizedRoute{Day: day, Places: ordered}

	type leg struct {
		from models.Place
		to   models.Place
	}

	currentClock := int(constraints.DayStart)
	legs := make([]leg, 0, len(ordered))

	// Start anchors the first leg when present; otherwise the first place
	// is the origin and the first leg connects it to the second.
	if start != nil {
		origin := models.Place{
			ID:       "start",
			Name:     "Start",
			Location: *start,
			Category: "start",
		}
		for i, place := range ordered {
			from := origin
			if i > 0 {
				from = ordered[i-1]
			}
			legs = append(legs, leg{from, place})
		}
	} else {
		for i := 1; i < len(ordered); i++ {
			legs = append(legs, leg{ordered[i-1], ordered[i]})
		}
		if len(ordered) > 0 {
			currentClock += ordered[0].VisitDurationMinutes
		}
	}

	for _, l := range legs {
		est, err := p.resolveLeg(ctx, l.from, l.to, constraints, prefs)
		if err != nil {
			return nil, err
		}

		departure := models.Clock(currentClock % (24 * 60))
		arrivalMinutes := currentClock + est.DurationMinutes
		arrival := models.Clock(arrivalMinutes % (24 * 60))

		route.Segments = append(route.Segments, models.RouteSegment{
			From:          l.from,
			To:            l.to,
			Estimate:      est,
			DepartureTime: departure,
			ArrivalTime:   arrival,
		})

		route.TotalDistanceKm += est.DistanceKm
		route.TotalDurationMinutes += est.DurationMinutes
		route.TotalCost += est.Cost

		currentClock = arrivalMinutes + l.to.VisitDurationMinutes
	}

	route.EfficiencyScore = efficiencyScore(ordered, route.TotalDurationMinutes)

	return route, nil
}

// resolveLeg picks the transport mode for one leg and fetches its estimate,
// trying alternative modes when the first choice is infeasible. Exhausting
// every mode aborts the request.
func (p *Planner) resolveLeg(
	ctx context.Context,
	from, to models.Place,
	constraints models.RouteConstraints,
	prefs models.Preferences,
) (models.RouteEstimate, error) {
	straight := geo.Haversine(from.Location, to.Location)
	order := modeOrder(straight, constraints.TransportModePreference, prefs)

	var lastReason string
	for _, mode := range order {
		out := p.client.GetRoute(ctx, from.Location, to.Location, mode, constraints)
		switch out.Status {
		case provider.StatusOK:
			return out.Estimate, nil
		case provider.StatusInfeasible:
			lastReason = out.Reason
		case provider.StatusFailed:
			if out.Err != nil {
				lastReason = out.Err.Error()
			}
		}
	}

	if lastReason == "" {
		lastReason = "no transport mode produced an estimate"
	}
	return models.RouteEstimate{}, &provider.NoFeasibleRouteError{
		FromID:   from.ID,
		FromName: from.Name,
		ToID:     to.ID,
		ToName:   to.Name,
		Reason:   lastReason,
	}
}

// modeOrder derives the modes to attempt, most preferred first. An explicit
// mode preference goes first; otherwise distance decides: short hops walk,
// mid-range rides transit, everything else drives. Soft preference flags
// reorder the defaults.
func modeOrder(straightKm float64, preference models.TransportMode, prefs models.Preferences) []models.TransportMode {
	var order []models.TransportMode

	switch {
	case preference.Valid():
		order = []models.TransportMode{preference}
	case prefs.PreferCost:
		order = []models.TransportMode{models.ModeTransit}
	case prefs.PreferSpeed:
		order = []models.TransportMode{models.ModeDrive}
	case prefs.PreferEco && straightKm <= ecoWalkKm:
		order = []models.TransportMode{models.ModeWalk}
	case straightKm <= walkThresholdKm:
		order = []models.TransportMode{models.ModeWalk}
	case straightKm <= transitThresholdKm:
		order = []models.TransportMode{models.ModeTransit, models.ModeDrive}
	default:
		order = []models.TransportMode{models.ModeDrive, models.ModeTransit}
	}

	// Remaining modes serve as fallbacks when the preferred ones are
	// infeasible for the geography.
	for _, mode := range models.AllModes() {
		seen := false
		for _, chosen := range order {
			if chosen == mode {
				seen = true
				break
			}
		}
		if !seen {
			order = append(order, mode)
		}
	}

	return order
}

// efficiencyScore rewards routes that spend time visiting rather than
// traveling and that favor high-priority places. Clamped to [0,1].
func efficiencyScore(places []models.Place, travelMinutes int) float64 {
	if len(places) == 0 {
		return 0
	}

	visitMinutes := 0
	prioritySum := 0.0
	for _, p := range places {
		visitMinutes += p.VisitDurationMinutes
		prioritySum += p.Priority
	}

	travelEfficiency := 0.0
	if visitMinutes+travelMinutes > 0 {
		travelEfficiency = float64(visitMinutes) / float64(visitMinutes+travelMinutes)
	}
	meanPriority := prioritySum / float64(len(places))

	score := 0.6*travelEfficiency + 0.4*meanPriority
	if score > 1 {
		score = 1
	}
	if score < 0 {
		score = 0
	}
	return score
}
