package optimizer

import (
	"context"
	"fmt"
	"sync"

	"github.com/aicc6/weather-flick-back-sub000/internal/geo"
	"github.com/aicc6/weather-flick-back-sub000/internal/models"
	"github.com/aicc6/weather-flick-back-sub000/internal/provider"
)

type modeResult struct {
	mode    models.TransportMode
	outcome provider.Outcome
}

// Recommend fetches estimates for every transport mode concurrently and
// picks the one a traveler should use for this leg, returning the chosen
// estimate alongside. The losing modes come back as alternatives so callers
// can still show them. A nil estimate means no provider produced anything.
func (p *Planner) Recommend(
	ctx context.Context,
	origin, destination models.Coordinate,
	constraints models.RouteConstraints,
	prefs models.Preferences,
) (models.TransportRecommendation, *models.RouteEstimate) {
	modes := models.AllModes()
	results := make(chan modeResult, len(modes))

	var wg sync.WaitGroup
	for _, mode := range modes {
		wg.Add(1)
		go func(m models.TransportMode) {
			defer wg.Done()
			results <- modeResult{
				mode:    m,
				outcome: p.client.GetRoute(ctx, origin, destination, m, constraints),
			}
		}(mode)
	}
	wg.Wait()
	close(results)

	byMode := make(map[models.TransportMode]provider.Outcome, len(modes))
	for r := range results {
		byMode[r.mode] = r.outcome
	}

	straight := geo.Haversine(origin, destination)
	preferred := modeOrder(straight, constraints.TransportModePreference, prefs)

	// First pass takes only estimates that passed realism validation; the
	// second settles for a flagged one rather than returning nothing.
	for _, realisticOnly := range []bool{true, false} {
		for _, mode := range preferred {
			out, ok := byMode[mode]
			if !ok || out.Status != provider.StatusOK {
				continue
			}
			if realisticOnly && !out.Estimate.Realistic {
				continue
			}

			rec := models.TransportRecommendation{
				Mode:       mode,
				Reason:     recommendReason(mode, straight, prefs),
				Confidence: ConfidenceFor(out.Estimate),
			}
			for _, other := range modes {
				if other == mode {
					continue
				}
				if alt, ok := byMode[other]; ok && alt.Status == provider.StatusOK {
					rec.Alternatives = append(rec.Alternatives, alt.Estimate)
				}
			}
			chosen := out.Estimate
			return rec, &chosen
		}
	}

	return models.TransportRecommendation{
		Mode:       models.ModeTransit,
		Reason:     fmt.Sprintf("no provider could estimate this %.1f km leg, defaulting to public transit", straight),
		Confidence: models.ConfidenceLow,
	}, nil
}

// ConfidenceFor maps an estimate's realism flag to a confidence label.
func ConfidenceFor(est models.RouteEstimate) string {
	if est.Realistic {
		return models.ConfidenceNormal
	}
	return models.ConfidenceLow
}

func recommendReason(mode models.TransportMode, straightKm float64, prefs models.Preferences) string {
	switch {
	case prefs.PreferCost && mode == models.ModeTransit:
		return "public transit keeps the cost down for this leg"
	case prefs.PreferSpeed && mode == models.ModeDrive:
		return "driving is the fastest option for this leg"
	case prefs.PreferEco && mode == models.ModeWalk:
		return fmt.Sprintf("%.1f km is walkable and emission free", straightKm)
	}

	switch mode {
	case models.ModeWalk:
		return fmt.Sprintf("%.1f km is within comfortable walking range", straightKm)
	case models.ModeTransit:
		return fmt.Sprintf("public transit suits this %.1f km leg", straightKm)
	default:
		return fmt.Sprintf("driving is practical for this %.1f km leg", straightKm)
	}
}
