package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aicc6/weather-flick-back-sub000/internal/geo"
	"github.com/aicc6/weather-flick-back-sub000/internal/models"
	"github.com/aicc6/weather-flick-back-sub000/internal/optimizer"
	"github.com/aicc6/weather-flick-back-sub000/internal/provider"
)

func newTestApp() *fiber.App {
	estimator := geo.NewEstimator()
	offline := provider.NewOfflineProvider(estimator)

	chains := map[models.TransportMode]*provider.Chain{}
	for _, mode := range models.AllModes() {
		chains[mode] = provider.NewChain(mode, provider.ChainEntry{Provider: offline})
	}

	client := provider.NewRouteClientWithChains(estimator, nil, chains)
	handler := NewHandler(optimizer.NewPlanner(client), nil, nil)

	app := fiber.New()
	handler.RegisterRoutes(app)
	return app
}

func postJSON(t *testing.T, app *fiber.App, path string, body interface{}) *http.Response {
	t.Helper()

	data, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, out interface{}) {
	t.Helper()

	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(data, out), "body: %s", data)
}

func optimizeBody(n int) fiber.Map {
	places := make([]fiber.Map, n)
	for i := range places {
		places[i] = fiber.Map{
			"id":   fmt.Sprintf("p%d", i),
			"name": fmt.Sprintf("Place %d", i),
			"location": fiber.Map{
				"latitude":  37.50 + float64(i)*0.015,
				"longitude": 127.0,
			},
			"visit_duration_minutes": 60,
			"priority":               1.0,
		}
	}
	return fiber.Map{"places": places}
}

func TestHealthWithoutBackends(t *testing.T) {
	app := newTestApp()

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Status string            `json:"status"`
		Checks map[string]string `json:"checks"`
	}
	decodeBody(t, resp, &body)

	assert.Equal(t, "healthy", body.Status)
	assert.Equal(t, "disabled", body.Checks["redis"])
	assert.Equal(t, "disabled", body.Checks["database"])
}

func TestOptimizeSingleDay(t *testing.T) {
	app := newTestApp()

	body := optimizeBody(3)
	body["start"] = fiber.Map{"latitude": 37.49, "longitude": 127.0}

	resp := postJSON(t, app, "/v1/routes/optimize", body)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var decoded OptimizeDayResponse
	decodeBody(t, resp, &decoded)

	require.NotNil(t, decoded.Route)
	assert.Len(t, decoded.Route.Places, 3)
	assert.Len(t, decoded.Route.Segments, 3)
	assert.Greater(t, decoded.Route.TotalDurationMinutes, 0)
}

func TestOptimizeMultiDay(t *testing.T) {
	app := newTestApp()

	body := optimizeBody(6)
	body["days"] = 2
	body["start_date"] = "2026-09-04"

	resp := postJSON(t, app, "/v1/routes/optimize", body)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var decoded OptimizeTripResponse
	decodeBody(t, resp, &decoded)

	require.NotNil(t, decoded.Itinerary)
	assert.Equal(t, 2, decoded.Itinerary.Days)
	assert.Len(t, decoded.Itinerary.DailyRoutes, 2)
}

func TestOptimizeRejectsEmptyPlaces(t *testing.T) {
	app := newTestApp()

	resp := postJSON(t, app, "/v1/routes/optimize", fiber.Map{"places": []fiber.Map{}})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestOptimizeRejectsBadCoordinates(t *testing.T) {
	app := newTestApp()

	body := fiber.Map{"places": []fiber.Map{{
		"id":       "bad",
		"name":     "Bad",
		"location": fiber.Map{"latitude": 123.0, "longitude": 500.0},
	}}}

	resp := postJSON(t, app, "/v1/routes/optimize", body)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestOptimizeRejectsBadDayWindow(t *testing.T) {
	app := newTestApp()

	body := optimizeBody(2)
	body["constraints"] = fiber.Map{"day_start": "18:00", "day_end": "09:00"}

	resp := postJSON(t, app, "/v1/routes/optimize", body)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestOptimizePlaceIDsWithoutCatalog(t *testing.T) {
	app := newTestApp()

	resp := postJSON(t, app, "/v1/routes/optimize", fiber.Map{"place_ids": []string{"x1"}})
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
}

func TestCompare(t *testing.T) {
	app := newTestApp()

	resp := postJSON(t, app, "/v1/routes/compare", optimizeBody(4))
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var decoded models.RouteComparison
	decodeBody(t, resp, &decoded)

	assert.Greater(t, decoded.Original.DistanceKm, 0.0)
	assert.Greater(t, decoded.Optimized.DistanceKm, 0.0)
}

func TestCompareNeedsTwoPlaces(t *testing.T) {
	app := newTestApp()

	resp := postJSON(t, app, "/v1/routes/compare", optimizeBody(1))
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestBetween(t *testing.T) {
	app := newTestApp()

	req := httptest.NewRequest(http.MethodGet,
		"/v1/routes/between?from=37.5547,126.9706&to=37.5796,126.9770", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var decoded BetweenResponse
	decodeBody(t, resp, &decoded)

	assert.True(t, decoded.Recommendation.Mode.Valid())
	require.NotNil(t, decoded.Estimate)
	assert.Greater(t, decoded.Estimate.DurationMinutes, 0)
}

func TestBetweenWithExplicitMode(t *testing.T) {
	app := newTestApp()

	req := httptest.NewRequest(http.MethodGet,
		"/v1/routes/between?from=37.5547,126.9706&to=37.4979,127.0276&mode=drive", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var decoded BetweenResponse
	decodeBody(t, resp, &decoded)

	assert.Equal(t, models.ModeDrive, decoded.Recommendation.Mode)
}

func TestPlacesEndpoint(t *testing.T) {
	app := newTestApp()

	req := httptest.NewRequest(http.MethodGet, "/v1/places", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode, "category is required")

	req = httptest.NewRequest(http.MethodGet, "/v1/places?category=museum", nil)
	resp, err = app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode, "no catalog configured")
}

func TestBetweenValidation(t *testing.T) {
	app := newTestApp()

	tests := []struct {
		name string
		url  string
	}{
		{name: "Missing params", url: "/v1/routes/between"},
		{name: "Malformed from", url: "/v1/routes/between?from=abc&to=37.5,127.0"},
		{name: "Out of range", url: "/v1/routes/between?from=95.0,127.0&to=37.5,127.0"},
		{name: "Bad mode", url: "/v1/routes/between?from=37.5,127.0&to=37.51,127.0&mode=rocket"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.url, nil)
			resp, err := app.Test(req, -1)
			require.NoError(t, err)
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		})
	}
}
