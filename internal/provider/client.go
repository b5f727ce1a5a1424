package provider

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/aicc6/weather-flick-back-sub000/internal/geo"
	"github.com/aicc6/weather-flick-back-sub000/internal/models"
	"github.com/aicc6/weather-flick-back-sub000/internal/routecache"
)

// ClientConfig aggregates per-provider configuration
type ClientConfig struct {
	Transit    TransitConfig
	Navigation NavigationConfig
	Directions DirectionsConfig
}

// LoadClientConfigFromEnv loads every provider's settings from environment
// variables
func LoadClientConfigFromEnv() ClientConfig {
	return ClientConfig{
		Transit:    LoadTransitConfigFromEnv(),
		Navigation: LoadNavigationConfigFromEnv(),
		Directions: LoadDirectionsConfigFromEnv(),
	}
}

// RouteClient is the single entry point for leg estimates. It runs the
// regional feasibility pre-check, consults the shared estimate cache, and
// dispatches to the per-mode fallback chain.
type RouteClient struct {
	estimator *geo.Estimator
	cache     routecache.EstimateCache
	chains    map[models.TransportMode]*Chain
}

// NewRouteClient wires the fallback chains. Providers without credentials are
// left out of their chains; the offline estimator terminates every chain so
// a client with no credentials at all still answers every lookup.
func NewRouteClient(config ClientConfig, estimator *geo.Estimator, cache routecache.EstimateCache) *RouteClient {
	offline := NewOfflineProvider(estimator)

	var transit, navigation, directions RoutingProvider
	if config.Transit.APIKey != "" {
		transit = NewTransitProvider(config.Transit)
	}
	if config.Navigation.APIKey != "" {
		navigation = NewNavigationProvider(config.Navigation)
	}
	if config.Directions.APIKey != "" {
		directions = NewDirectionsProvider(config.Directions)
	}

	buildChain := func(mode models.TransportMode, primary RoutingProvider, primaryTimeout time.Duration) *Chain {
		var entries []ChainEntry
		if primary != nil {
			entries = append(entries, ChainEntry{Provider: primary, Timeout: primaryTimeout})
		}
		if directions != nil {
			entries = append(entries, ChainEntry{Provider: directions, Timeout: config.Directions.Timeout})
		}
		entries = append(entries, ChainEntry{Provider: offline})
		return NewChain(mode, entries...)
	}

	return &RouteClient{
		estimator: estimator,
		cache:     cache,
		chains: map[models.TransportMode]*Chain{
			models.ModeTransit: buildChain(models.ModeTransit, transit, config.Transit.Timeout),
			models.ModeDrive:   buildChain(models.ModeDrive, navigation, config.Navigation.Timeout),
			models.ModeWalk:    buildChain(models.ModeWalk, navigation, config.Navigation.Timeout),
		},
	}
}

// NewRouteClientWithChains injects prebuilt chains; used by tests
func NewRouteClientWithChains(estimator *geo.Estimator, cache routecache.EstimateCache, chains map[models.TransportMode]*Chain) *RouteClient {
	return &RouteClient{estimator: estimator, cache: cache, chains: chains}
}

// GetRoute resolves a single leg estimate for the given mode. The regional
// pre-check can short-circuit the chain with an Infeasible outcome before
// any provider is called.
func (c *RouteClient) GetRoute(ctx context.Context, origin, destination models.Coordinate, mode models.TransportMode, constraints models.RouteConstraints) Outcome {
	if !mode.Valid() {
		return Failed(fmt.Errorf("unsupported transport mode %q", mode))
	}

	if feas := c.estimator.CheckFeasibility(origin, destination, mode); !feas.Feasible {
		return Infeasible(feas.Reason, feas.SuggestedModes...)
	}

	// Walking legs far past the caller's walking cap are not worth a
	// provider round-trip.
	if mode == models.ModeWalk && constraints.MaxWalkDistanceMeters > 0 {
		straightM := geo.Haversine(origin, destination) * 1000
		if straightM > float64(4*constraints.MaxWalkDistanceMeters) {
			return Infeasible("leg is far beyond the configured walking limit",
				models.ModeTransit, models.ModeDrive)
		}
	}

	key := routecache.Key(origin, destination, mode)
	if c.cache != nil {
		if est, ok := c.cache.Get(ctx, key); ok {
			return Ok(est)
		}
	}

	chain, ok := c.chains[mode]
	if !ok {
		return Failed(fmt.Errorf("no chain configured for mode %s", mode))
	}

	out := chain.Resolve(ctx, origin, destination)

	// Demoted estimates stay out of the cache so a healthier provider can
	// win on the next lookup.
	if out.Status == StatusOK && out.Estimate.Realistic && c.cache != nil {
		c.cache.Set(ctx, key, out.Estimate)
	}

	if out.Status == StatusFailed {
		log.Printf("route lookup failed %s: %v", mode, out.Err)
	}

	return out
}

// Estimator exposes the underlying geographic estimator for callers that
// need straight-line distances (mode recommendation, comparisons).
func (c *RouteClient) Estimator() *geo.Estimator { return c.estimator }
