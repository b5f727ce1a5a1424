package provider

import (
	"context"

	"github.com/aicc6/weather-flick-back-sub000/internal/geo"
	"github.com/aicc6/weather-flick-back-sub000/internal/models"
)

// OfflineProvider is the estimator-backed fallback of last resort. It never
// calls the network and never fails, so it terminates every chain.
type OfflineProvider struct {
	estimator *geo.Estimator
}

// NewOfflineProvider wraps the geographic estimator as a routing provider
func NewOfflineProvider(estimator *geo.Estimator) *OfflineProvider {
	return &OfflineProvider{estimator: estimator}
}

func (p *OfflineProvider) Name() string { return "offline" }

// GetRoute estimates the leg from corrected straight-line distance with a
// synthetic fare (transit) or fuel cost (drive). Walking is free.
func (p *OfflineProvider) GetRoute(_ context.Context, origin, destination models.Coordinate, mode models.TransportMode) (models.RouteEstimate, error) {
	if !mode.Valid() {
		return models.RouteEstimate{}, ErrUnsupportedMode
	}

	km, minutes := p.estimator.DistanceAndTime(origin, destination, mode)

	est := models.RouteEstimate{
		DistanceKm:      km,
		DurationMinutes: minutes,
		Mode:            mode,
		ProviderSource:  p.Name(),
	}

	switch mode {
	case models.ModeTransit:
		est.Cost = TransitFare(km)
	case models.ModeDrive:
		est.Cost = DriveFuelCost(km)
	}

	return est, nil
}
