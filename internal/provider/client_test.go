package provider

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aicc6/weather-flick-back-sub000/internal/geo"
	"github.com/aicc6/weather-flick-back-sub000/internal/models"
	"github.com/aicc6/weather-flick-back-sub000/internal/routecache"
)

var jeju = models.Coordinate{Latitude: 33.5067, Longitude: 126.4930}

func newTestClient(p RoutingProvider, cache routecache.EstimateCache) *RouteClient {
	estimator := geo.NewEstimator()
	chains := map[models.TransportMode]*Chain{
		models.ModeWalk:    NewChain(models.ModeWalk, ChainEntry{Provider: p}),
		models.ModeTransit: NewChain(models.ModeTransit, ChainEntry{Provider: p}),
		models.ModeDrive:   NewChain(models.ModeDrive, ChainEntry{Provider: p}),
	}
	return NewRouteClientWithChains(estimator, cache, chains)
}

func TestGetRouteInfeasibleSkipsProviders(t *testing.T) {
	stub := &stubProvider{name: "stub", est: plausibleDrive("stub")}
	client := newTestClient(stub, nil)

	out := client.GetRoute(context.Background(), testOrigin, jeju, models.ModeDrive, models.DefaultConstraints())

	require.Equal(t, StatusInfeasible, out.Status)
	assert.NotEmpty(t, out.Reason)
	assert.Contains(t, out.SuggestedModes, models.ModeTransit)
	assert.Equal(t, 0, stub.calls, "infeasible legs must not reach providers")
}

func TestGetRouteRejectsInvalidMode(t *testing.T) {
	client := newTestClient(&stubProvider{name: "stub"}, nil)

	out := client.GetRoute(context.Background(), testOrigin, testDest, models.TransportMode("teleport"), models.DefaultConstraints())

	assert.Equal(t, StatusFailed, out.Status)
}

func TestGetRouteWalkCap(t *testing.T) {
	stub := &stubProvider{name: "stub", est: models.RouteEstimate{
		Mode: models.ModeWalk, DistanceKm: 8, DurationMinutes: 120,
	}}
	client := newTestClient(stub, nil)

	// Seoul Station to Gangnam is about 8 km; far past a 1 km walking cap
	out := client.GetRoute(context.Background(), testOrigin, testDest, models.ModeWalk, models.DefaultConstraints())

	require.Equal(t, StatusInfeasible, out.Status)
	assert.Equal(t, 0, stub.calls)
}

func TestGetRouteCachesRealisticEstimates(t *testing.T) {
	stub := &stubProvider{name: "stub", est: plausibleDrive("stub")}
	cache := routecache.NewMemoryCache(10, time.Minute)
	client := newTestClient(stub, cache)

	ctx := context.Background()
	constraints := models.DefaultConstraints()

	first := client.GetRoute(ctx, testOrigin, testDest, models.ModeDrive, constraints)
	require.Equal(t, StatusOK, first.Status)
	assert.Equal(t, 1, stub.calls)

	second := client.GetRoute(ctx, testOrigin, testDest, models.ModeDrive, constraints)
	require.Equal(t, StatusOK, second.Status)
	assert.Equal(t, 1, stub.calls, "second lookup must come from cache")
	assert.Equal(t, first.Estimate, second.Estimate)
}

func TestGetRouteDoesNotCacheDemotedEstimates(t *testing.T) {
	stub := &stubProvider{name: "stub", est: models.RouteEstimate{
		Mode:            models.ModeDrive,
		DistanceKm:      200,
		DurationMinutes: 10,
		ProviderSource:  "stub",
	}}
	cache := routecache.NewMemoryCache(10, time.Minute)
	client := newTestClient(stub, cache)

	ctx := context.Background()
	constraints := models.DefaultConstraints()

	first := client.GetRoute(ctx, testOrigin, testDest, models.ModeDrive, constraints)
	require.Equal(t, StatusOK, first.Status)
	assert.False(t, first.Estimate.Realistic)

	client.GetRoute(ctx, testOrigin, testDest, models.ModeDrive, constraints)
	assert.Equal(t, 2, stub.calls, "demoted estimates stay out of the cache")
}

func TestOfflineProviderAlwaysAnswers(t *testing.T) {
	offline := NewOfflineProvider(geo.NewEstimator())

	for _, mode := range models.AllModes() {
		t.Run(string(mode), func(t *testing.T) {
			est, err := offline.GetRoute(context.Background(), testOrigin, testDest, mode)
			require.NoError(t, err)
			assert.Equal(t, mode, est.Mode)
			assert.Greater(t, est.DistanceKm, 0.0)
			assert.Greater(t, est.DurationMinutes, 0)
			assert.Equal(t, "offline", est.ProviderSource)
		})
	}
}
