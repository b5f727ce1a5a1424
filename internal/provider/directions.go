package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"os"
	"time"

	"github.com/aicc6/weather-flick-back-sub000/internal/models"
)

// DirectionsConfig holds the generic multi-modal directions provider
// configuration
type DirectionsConfig struct {
	APIKey  string
	BaseURL string
	Timeout time.Duration
}

// LoadDirectionsConfigFromEnv loads directions provider settings from
// environment variables. An empty API key disables the provider.
func LoadDirectionsConfigFromEnv() DirectionsConfig {
	timeout, _ := time.ParseDuration(getEnv("GOOGLE_DIRECTIONS_TIMEOUT", "10s"))
	return DirectionsConfig{
		APIKey:  os.Getenv("GOOGLE_API_KEY"),
		BaseURL: getEnv("GOOGLE_DIRECTIONS_URL", "https://maps.googleapis.com/maps/api/directions/json"),
		Timeout: timeout,
	}
}

// DirectionsProvider queries the generic directions API. It serves every
// mode and sits second in each fallback chain.
type DirectionsProvider struct {
	session *http.Client
	apiKey  string
	baseURL string
}

// NewDirectionsProvider builds the provider from config
func NewDirectionsProvider(config DirectionsConfig) *DirectionsProvider {
	return &DirectionsProvider{
		session: &http.Client{Timeout: config.Timeout},
		apiKey:  config.APIKey,
		baseURL: config.BaseURL,
	}
}

func (p *DirectionsProvider) Name() string { return "google" }

// directionsMode maps transport modes onto the directions API vocabulary
func directionsMode(mode models.TransportMode) (string, bool) {
	switch mode {
	case models.ModeWalk:
		return "walking", true
	case models.ModeDrive:
		return "driving", true
	case models.ModeTransit:
		return "transit", true
	}
	return "", false
}

type directionsResponse struct {
	Status string `json:"status"`
	Routes []struct {
		Legs []struct {
			Duration struct {
				Value int `json:"value"` // seconds
			} `json:"duration"`
			Distance struct {
				Value float64 `json:"value"` // meters
			} `json:"distance"`
		} `json:"legs"`
		Fare *struct {
			Value float64 `json:"value"`
		} `json:"fare"`
	} `json:"routes"`
	ErrorMessage string `json:"error_message"`
}

// GetRoute requests directions for the given mode. Transit fares missing
// from the response are synthesized from distance.
func (p *DirectionsProvider) GetRoute(ctx context.Context, origin, destination models.Coordinate, mode models.TransportMode) (models.RouteEstimate, error) {
	apiMode, ok := directionsMode(mode)
	if !ok {
		return models.RouteEstimate{}, ErrUnsupportedMode
	}

	params := url.Values{}
	params.Set("origin", fmt.Sprintf("%f,%f", origin.Latitude, origin.Longitude))
	params.Set("destination", fmt.Sprintf("%f,%f", destination.Latitude, destination.Longitude))
	params.Set("mode", apiMode)
	params.Set("key", p.apiKey)
	params.Set("language", "ko")
	params.Set("region", "kr")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return models.RouteEstimate{}, fmt.Errorf("create directions request: %w", err)
	}

	resp, err := p.session.Do(req)
	if err != nil {
		return models.RouteEstimate{}, fmt.Errorf("directions request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return models.RouteEstimate{}, fmt.Errorf("directions API returned status %d", resp.StatusCode)
	}

	var parsed directionsResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return models.RouteEstimate{}, fmt.Errorf("decode directions response: %w", err)
	}

	if parsed.Status != "OK" || len(parsed.Routes) == 0 || len(parsed.Routes[0].Legs) == 0 {
		msg := parsed.ErrorMessage
		if msg == "" {
			msg = parsed.Status
		}
		return models.RouteEstimate{}, fmt.Errorf("directions API error: %s", msg)
	}

	route := parsed.Routes[0]
	leg := route.Legs[0]
	km := leg.Distance.Value / 1000
	minutes := int(math.Ceil(float64(leg.Duration.Value) / 60))

	est := models.RouteEstimate{
		DistanceKm:      km,
		DurationMinutes: minutes,
		Mode:            mode,
		ProviderSource:  p.Name(),
	}

	switch mode {
	case models.ModeTransit:
		if route.Fare != nil {
			est.Cost = route.Fare.Value
		} else {
			est.Cost = TransitFare(km)
		}
	case models.ModeDrive:
		est.Cost = DriveFuelCost(km)
	}

	return est, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
