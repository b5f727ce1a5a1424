package api

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/aicc6/weather-flick-back-sub000/internal/models"
)

// --- Request types ---

// OptimizeRequest is the body of POST /v1/routes/optimize. Places can be
// inlined or referenced by catalog ID; mixing both is allowed.
type OptimizeRequest struct {
	Places        []models.Place      `json:"places" validate:"omitempty,dive"`
	PlaceIDs      []string            `json:"place_ids" validate:"omitempty,dive,required"`
	Days          int                 `json:"days" validate:"omitempty,min=1,max=14"`
	Start         *models.Coordinate  `json:"start,omitempty"`
	Accommodation *models.Coordinate  `json:"accommodation,omitempty"`
	StartDate     string              `json:"start_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Constraints   *ConstraintsRequest `json:"constraints,omitempty"`
	Preferences   models.Preferences  `json:"preferences"`
}

// ConstraintsRequest carries the optional constraint overrides as strings so
// callers write times as "HH:MM"
type ConstraintsRequest struct {
	DayStart              string `json:"day_start,omitempty"`
	DayEnd                string `json:"day_end,omitempty"`
	TransportMode         string `json:"transport_mode,omitempty" validate:"omitempty,oneof=walk transit drive"`
	MaxWalkDistanceMeters int    `json:"max_walk_distance_meters,omitempty" validate:"omitempty,min=0"`
	PrioritizeDistance    bool   `json:"prioritize_distance,omitempty"`
}

// CompareRequest is the body of POST /v1/routes/compare. Place order is the
// caller's own itinerary.
type CompareRequest struct {
	Places      []models.Place      `json:"places" validate:"omitempty,dive"`
	PlaceIDs    []string            `json:"place_ids" validate:"omitempty,dive,required"`
	Start       *models.Coordinate  `json:"start,omitempty"`
	StartDate   string              `json:"start_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Constraints *ConstraintsRequest `json:"constraints,omitempty"`
}

// --- Response types ---

// OptimizeDayResponse is the single-day optimization result
type OptimizeDayResponse struct {
	Route *models.OptimizedRoute `json:"route"`
}

// OptimizeTripResponse is the multi-day optimization result
type OptimizeTripResponse struct {
	Itinerary *models.MultiDayItinerary `json:"itinerary"`
}

// BetweenResponse answers GET /v1/routes/between
type BetweenResponse struct {
	Recommendation models.TransportRecommendation `json:"recommendation"`
	Estimate       *models.RouteEstimate          `json:"estimate,omitempty"`
}

// toConstraints resolves the request overrides against the documented defaults
func (r *ConstraintsRequest) toConstraints() (models.RouteConstraints, error) {
	constraints := models.DefaultConstraints()
	if r == nil {
		return constraints, nil
	}

	if r.DayStart != "" {
		start, err := models.ParseClock(r.DayStart)
		if err != nil {
			return constraints, fmt.Errorf("invalid day_start: %w", err)
		}
		constraints.DayStart = start
	}
	if r.DayEnd != "" {
		end, err := models.ParseClock(r.DayEnd)
		if err != nil {
			return constraints, fmt.Errorf("invalid day_end: %w", err)
		}
		constraints.DayEnd = end
	}
	if constraints.DayEnd <= constraints.DayStart {
		return constraints, fmt.Errorf("day_end %s must be after day_start %s",
			constraints.DayEnd, constraints.DayStart)
	}
	if r.TransportMode != "" {
		constraints.TransportModePreference = models.TransportMode(r.TransportMode)
	}
	if r.MaxWalkDistanceMeters > 0 {
		constraints.MaxWalkDistanceMeters = r.MaxWalkDistanceMeters
	}
	constraints.PrioritizeDistanceOverTime = r.PrioritizeDistance

	return constraints, nil
}

// weekdaysFrom derives lowercase weekday keys for each trip day, starting at
// startDate ("2006-01-02") or today when absent.
func weekdaysFrom(startDate string, days int) []string {
	start := time.Now()
	if startDate != "" {
		if parsed, err := time.Parse("2006-01-02", startDate); err == nil {
			start = parsed
		}
	}

	weekdays := make([]string, days)
	for i := range weekdays {
		day := start.AddDate(0, 0, i)
		weekdays[i] = strings.ToLower(day.Weekday().String()[:3])
	}
	return weekdays
}

// parseCoordinates parses "lat,lon" string into a coordinate
func parseCoordinates(coordStr string) (models.Coordinate, error) {
	parts := strings.Split(coordStr, ",")
	if len(parts) != 2 {
		return models.Coordinate{}, fmt.Errorf("expected format: lat,lon")
	}

	lat, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return models.Coordinate{}, fmt.Errorf("invalid latitude: %w", err)
	}

	lon, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return models.Coordinate{}, fmt.Errorf("invalid longitude: %w", err)
	}

	coord := models.Coordinate{Latitude: lat, Longitude: lon}
	if !coord.Valid() {
		return models.Coordinate{}, fmt.Errorf("coordinates out of range")
	}

	return coord, nil
}
