package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"time"

	"github.com/aicc6/weather-flick-back-sub000/internal/models"
)

// TransitConfig holds the transit-routing provider configuration
type TransitConfig struct {
	APIKey  string
	BaseURL string
	Timeout time.Duration
}

// LoadTransitConfigFromEnv loads transit provider settings from environment
// variables. An empty API key disables the provider.
func LoadTransitConfigFromEnv() TransitConfig {
	timeout, _ := time.ParseDuration(getEnv("ODSAY_TIMEOUT", "8s"))
	return TransitConfig{
		APIKey:  os.Getenv("ODSAY_API_KEY"),
		BaseURL: getEnv("ODSAY_API_URL", "https://api.odsay.com/v1/api"),
		Timeout: timeout,
	}
}

// TransitProvider queries the specialized public-transit routing API. It is
// the primary provider for transit legs.
type TransitProvider struct {
	session *http.Client
	apiKey  string
	baseURL string
}

// NewTransitProvider builds the provider from config
func NewTransitProvider(config TransitConfig) *TransitProvider {
	return &TransitProvider{
		session: &http.Client{Timeout: config.Timeout},
		apiKey:  config.APIKey,
		baseURL: config.BaseURL,
	}
}

func (p *TransitProvider) Name() string { return "odsay" }

// transitResponse is the subset of the search response the engine needs
type transitResponse struct {
	Result *struct {
		Path []struct {
			Info struct {
				TotalTime     int     `json:"totalTime"`
				TotalDistance float64 `json:"totalDistance"`
				Payment       float64 `json:"payment"`
			} `json:"info"`
		} `json:"path"`
	} `json:"result"`
	Error *struct {
		Msg string `json:"msg"`
	} `json:"error"`
}

// GetRoute searches public-transit paths and returns the fastest one
func (p *TransitProvider) GetRoute(ctx context.Context, origin, destination models.Coordinate, mode models.TransportMode) (models.RouteEstimate, error) {
	if mode != models.ModeTransit {
		return models.RouteEstimate{}, ErrUnsupportedMode
	}

	params := url.Values{}
	params.Set("SX", fmt.Sprintf("%f", origin.Longitude))
	params.Set("SY", fmt.Sprintf("%f", origin.Latitude))
	params.Set("EX", fmt.Sprintf("%f", destination.Longitude))
	params.Set("EY", fmt.Sprintf("%f", destination.Latitude))
	params.Set("apiKey", p.apiKey)

	reqURL := fmt.Sprintf("%s/searchPubTransPathT?%s", p.baseURL, params.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return models.RouteEstimate{}, fmt.Errorf("create transit request: %w", err)
	}

	resp, err := p.session.Do(req)
	if err != nil {
		return models.RouteEstimate{}, fmt.Errorf("transit request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return models.RouteEstimate{}, fmt.Errorf("transit API returned status %d", resp.StatusCode)
	}

	var body transitResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return models.RouteEstimate{}, fmt.Errorf("decode transit response: %w", err)
	}

	if body.Error != nil {
		return models.RouteEstimate{}, fmt.Errorf("transit API error: %s", body.Error.Msg)
	}
	if body.Result == nil || len(body.Result.Path) == 0 {
		return models.RouteEstimate{}, fmt.Errorf("transit API returned no paths")
	}

	// Fastest path wins
	best := body.Result.Path[0]
	for _, path := range body.Result.Path[1:] {
		if path.Info.TotalTime < best.Info.TotalTime {
			best = path
		}
	}

	return models.RouteEstimate{
		DistanceKm:      best.Info.TotalDistance / 1000,
		DurationMinutes: best.Info.TotalTime,
		Mode:            models.ModeTransit,
		Cost:            best.Info.Payment,
		ProviderSource:  p.Name(),
	}, nil
}
