package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/aicc6/weather-flick-back-sub000/internal/models"
)

// Route search options accepted by the navigation API
const (
	RouteOptionFastest = "trafast"
	RouteOptionComfort = "tracomfort"
	RouteOptionOptimal = "traoptimal"
)

// NavigationConfig holds the turn-by-turn navigation provider configuration
type NavigationConfig struct {
	APIKey      string
	BaseURL     string
	RouteOption string
	Timeout     time.Duration
}

// LoadNavigationConfigFromEnv loads navigation provider settings from
// environment variables. An empty app key disables the provider.
func LoadNavigationConfigFromEnv() NavigationConfig {
	timeout, _ := time.ParseDuration(getEnv("TMAP_TIMEOUT", "8s"))
	return NavigationConfig{
		APIKey:      os.Getenv("TMAP_APP_KEY"),
		BaseURL:     getEnv("TMAP_API_URL", "https://apis.openapi.sk.com/tmap"),
		RouteOption: getEnv("TMAP_ROUTE_OPTION", RouteOptionFastest),
		Timeout:     timeout,
	}
}

// NavigationProvider queries the turn-by-turn routing API for car and
// pedestrian legs. It is the primary provider for drive and walk modes.
type NavigationProvider struct {
	session     *http.Client
	apiKey      string
	baseURL     string
	routeOption string
}

// NewNavigationProvider builds the provider from config
func NewNavigationProvider(config NavigationConfig) *NavigationProvider {
	option := config.RouteOption
	if option == "" {
		option = RouteOptionFastest
	}
	return &NavigationProvider{
		session:     &http.Client{Timeout: config.Timeout},
		apiKey:      config.APIKey,
		baseURL:     config.BaseURL,
		routeOption: option,
	}
}

func (p *NavigationProvider) Name() string { return "tmap" }

// navigationResponse carries per-feature totals; the first feature of a
// route response holds the route summary.
type navigationResponse struct {
	Features []struct {
		Properties struct {
			TotalTime     int     `json:"totalTime"`     // seconds
			TotalDistance float64 `json:"totalDistance"` // meters
			TotalFare     float64 `json:"totalFare"`     // toll
			TaxiFare      float64 `json:"taxiFare"`
		} `json:"properties"`
	} `json:"features"`
}

// GetRoute requests a car or pedestrian route. Car requests use the
// configured search option ("trafast" unless overridden).
func (p *NavigationProvider) GetRoute(ctx context.Context, origin, destination models.Coordinate, mode models.TransportMode) (models.RouteEstimate, error) {
	var path string
	switch mode {
	case models.ModeDrive:
		path = "/routes"
	case models.ModeWalk:
		path = "/routes/pedestrian"
	default:
		return models.RouteEstimate{}, ErrUnsupportedMode
	}

	payload := map[string]interface{}{
		"startX":       strconv.FormatFloat(origin.Longitude, 'f', -1, 64),
		"startY":       strconv.FormatFloat(origin.Latitude, 'f', -1, 64),
		"endX":         strconv.FormatFloat(destination.Longitude, 'f', -1, 64),
		"endY":         strconv.FormatFloat(destination.Latitude, 'f', -1, 64),
		"reqCoordType": "WGS84GEO",
		"resCoordType": "WGS84GEO",
	}
	if mode == models.ModeDrive {
		payload["searchOption"] = p.routeOption
		payload["carType"] = 1
	} else {
		// Pedestrian requests require named endpoints
		payload["startName"] = "origin"
		payload["endName"] = "destination"
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return models.RouteEstimate{}, fmt.Errorf("marshal navigation request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return models.RouteEstimate{}, fmt.Errorf("create navigation request: %w", err)
	}
	req.Header.Set("appKey", p.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.session.Do(req)
	if err != nil {
		return models.RouteEstimate{}, fmt.Errorf("navigation request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return models.RouteEstimate{}, fmt.Errorf("navigation API returned status %d", resp.StatusCode)
	}

	var parsed navigationResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return models.RouteEstimate{}, fmt.Errorf("decode navigation response: %w", err)
	}
	if len(parsed.Features) == 0 {
		return models.RouteEstimate{}, fmt.Errorf("navigation API returned no route")
	}

	props := parsed.Features[0].Properties
	km := props.TotalDistance / 1000
	minutes := int(math.Ceil(float64(props.TotalTime) / 60))

	est := models.RouteEstimate{
		DistanceKm:      km,
		DurationMinutes: minutes,
		Mode:            mode,
		ProviderSource:  p.Name(),
	}
	if mode == models.ModeDrive {
		est.TollFee = props.TotalFare
		est.Cost = DriveFuelCost(km) + props.TotalFare
	}

	return est, nil
}
