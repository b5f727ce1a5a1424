package models

// TransportMode represents how a traveler moves between two places
type TransportMode string

const (
	ModeWalk    TransportMode = "walk"
	ModeTransit TransportMode = "transit"
	ModeDrive   TransportMode = "drive"
)

// AllModes returns every supported transport mode in recommendation order
func AllModes() []TransportMode {
	return []TransportMode{ModeWalk, ModeTransit, ModeDrive}
}

// Valid reports whether the mode is one of the supported transport modes
func (m TransportMode) Valid() bool {
	switch m {
	case ModeWalk, ModeTransit, ModeDrive:
		return true
	}
	return false
}

// Coordinate is a WGS84 point
type Coordinate struct {
	Latitude  float64 `json:"latitude" validate:"min=-90,max=90"`
	Longitude float64 `json:"longitude" validate:"min=-180,max=180"`
}

// Valid reports whether the coordinate is within WGS84 bounds
func (c Coordinate) Valid() bool {
	return c.Latitude >= -90 && c.Latitude <= 90 &&
		c.Longitude >= -180 && c.Longitude <= 180
}

// DayHours is an open/close window for a single weekday
type DayHours struct {
	Open  Clock `json:"open"`
	Close Clock `json:"close"`
}

// OperatingHours maps lowercase weekday names ("mon".."sun") to open/close
// windows. A nil map means the place is always open.
type OperatingHours map[string]DayHours

// WeekdayKeys are the accepted OperatingHours keys, Monday first
var WeekdayKeys = []string{"mon", "tue", "wed", "thu", "fri", "sat", "sun"}

// OpenAt reports whether the hours include the given clock time on the given
// weekday. Missing weekday entries mean closed that day; a nil map is always
// open.
func (h OperatingHours) OpenAt(weekday string, t Clock) bool {
	if h == nil {
		return true
	}
	day, ok := h[weekday]
	if !ok {
		return false
	}
	return t >= day.Open && t <= day.Close
}

// Place is a geolocated point of interest submitted to the optimizer.
// Places are immutable for the duration of an optimization run.
type Place struct {
	ID                   string         `json:"id"`
	Name                 string         `json:"name"`
	Location             Coordinate     `json:"location"`
	Address              string         `json:"address,omitempty"`
	Category             string         `json:"category,omitempty"`
	VisitDurationMinutes int            `json:"visit_duration_minutes"`
	OperatingHours       OperatingHours `json:"operating_hours,omitempty"`
	Priority             float64        `json:"priority"`
}

// DefaultVisitDuration is applied when a place carries no visit duration
const DefaultVisitDuration = 120

// Normalize fills zero-valued optional fields with their documented defaults
func (p *Place) Normalize() {
	if p.VisitDurationMinutes <= 0 {
		p.VisitDurationMinutes = DefaultVisitDuration
	}
	if p.Priority <= 0 || p.Priority > 1 {
		p.Priority = 1.0
	}
}

// ClockWindow is a start/end pair of times of day
type ClockWindow struct {
	Start Clock `json:"start"`
	End   Clock `json:"end"`
}

// RouteConstraints bound a single optimization day
type RouteConstraints struct {
	DayStart                   Clock         `json:"day_start"`
	DayEnd                     Clock         `json:"day_end"`
	LunchWindow                *ClockWindow  `json:"lunch_window,omitempty"`
	TransportModePreference    TransportMode `json:"transport_mode,omitempty"`
	MaxWalkDistanceMeters      int           `json:"max_walk_distance_meters"`
	PrioritizeDistanceOverTime bool          `json:"prioritize_distance"`
}

// DefaultConstraints are a 09:00-21:00 day with a two hour lunch window
// and a 1 km walking cap.
func DefaultConstraints() RouteConstraints {
	return RouteConstraints{
		DayStart:              9 * 60,
		DayEnd:                21 * 60,
		LunchWindow:           &ClockWindow{Start: 12 * 60, End: 14 * 60},
		MaxWalkDistanceMeters: 1000,
	}
}

// RouteEstimate is a normalized travel estimate for one leg, regardless of
// which provider produced it.
type RouteEstimate struct {
	DistanceKm      float64       `json:"distance_km"`
	DurationMinutes int           `json:"duration_minutes"`
	Mode            TransportMode `json:"mode"`
	Cost            float64       `json:"cost"`
	TollFee         float64       `json:"toll_fee,omitempty"`
	ProviderSource  string        `json:"provider_source"`

	// Set by the realism validator. Warnings explain why an estimate was
	// demoted; an estimate with Realistic=false is still usable as a
	// low-confidence answer.
	Realistic bool     `json:"realistic"`
	Warnings  []string `json:"warnings,omitempty"`
}

// RouteSegment is the travel leg between two consecutive places
type RouteSegment struct {
	From          Place         `json:"from"`
	To            Place         `json:"to"`
	Estimate      RouteEstimate `json:"estimate"`
	DepartureTime Clock         `json:"departure_time"`
	ArrivalTime   Clock         `json:"arrival_time"`
}

// OptimizedRoute is a fully timed single-day itinerary.
// Invariant: Segments[i].To equals Segments[i+1].From.
type OptimizedRoute struct {
	Day                  int            `json:"day"`
	Places               []Place        `json:"places"`
	Segments             []RouteSegment `json:"segments"`
	TotalDistanceKm      float64        `json:"total_distance_km"`
	TotalDurationMinutes int            `json:"total_duration_minutes"`
	TotalCost            float64        `json:"total_cost"`
	EfficiencyScore      float64        `json:"efficiency_score"`

	// Places that could not be scheduled (closed, or the day ran out).
	// Never silently dropped.
	Unvisited []Place `json:"unvisited,omitempty"`
}

// TransportRecommendation explains which mode a traveler should use for a leg
type TransportRecommendation struct {
	Mode         TransportMode   `json:"mode"`
	Reason       string          `json:"reason"`
	Confidence   string          `json:"confidence"`
	Alternatives []RouteEstimate `json:"alternatives,omitempty"`
}

const (
	ConfidenceNormal = "normal"
	ConfidenceLow    = "low"
)

// ItinerarySummary aggregates a multi-day itinerary
type ItinerarySummary struct {
	TotalPlaces          int     `json:"total_places"`
	TotalDistanceKm      float64 `json:"total_distance_km"`
	TotalDurationMinutes int     `json:"total_duration_minutes"`
	AverageEfficiency    float64 `json:"average_efficiency"`
}

// MultiDayItinerary is the multi-day optimization result
type MultiDayItinerary struct {
	Days        int              `json:"days"`
	DailyRoutes []OptimizedRoute `json:"daily_routes"`
	Summary     ItinerarySummary `json:"summary"`
}

// RouteTotals are the aggregate metrics of one visiting order
type RouteTotals struct {
	DistanceKm      float64 `json:"distance_km"`
	DurationMinutes int     `json:"duration_minutes"`
}

// RouteComparison contrasts the submitted order with the optimized one
type RouteComparison struct {
	Original               RouteTotals `json:"original"`
	Optimized              RouteTotals `json:"optimized"`
	DistanceImprovementPct float64     `json:"distance_improvement_pct"`
	DurationImprovementPct float64     `json:"duration_improvement_pct"`
}

// Preferences are the caller-supplied soft preferences for mode selection
type Preferences struct {
	TransportMode      TransportMode `json:"transport_mode,omitempty"`
	PrioritizeDistance bool          `json:"prioritize_distance,omitempty"`
	PreferCost         bool          `json:"prefer_cost,omitempty"`
	PreferSpeed        bool          `json:"prefer_speed,omitempty"`
	PreferEco          bool          `json:"prefer_eco,omitempty"`
}
