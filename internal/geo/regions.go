package geo

import "github.com/aicc6/weather-flick-back-sub000/internal/models"

// RegionKind classifies the terrain character of a named region
type RegionKind string

const (
	RegionIsland   RegionKind = "island"
	RegionMetro    RegionKind = "metro"
	RegionMountain RegionKind = "mountain"
)

// Region is a named bounding box with a road-correction factor. Keeping the
// table data-driven lets new regions be added without touching the estimator.
type Region struct {
	Name   string
	Kind   RegionKind
	MinLat float64
	MaxLat float64
	MinLon float64
	MaxLon float64
	Factor float64
}

// Contains reports whether the coordinate falls inside the bounding box
func (r Region) Contains(c models.Coordinate) bool {
	return c.Latitude >= r.MinLat && c.Latitude <= r.MaxLat &&
		c.Longitude >= r.MinLon && c.Longitude <= r.MaxLon
}

// DefaultRegions covers the Korean peninsula areas the travel backend serves.
// Islands are listed first so island membership wins over overlapping boxes.
func DefaultRegions() []Region {
	return []Region{
		{Name: "jeju", Kind: RegionIsland, MinLat: 33.1, MaxLat: 33.6, MinLon: 126.1, MaxLon: 127.0, Factor: 1.2},
		{Name: "ulleung", Kind: RegionIsland, MinLat: 37.45, MaxLat: 37.56, MinLon: 130.78, MaxLon: 130.93, Factor: 1.2},
		{Name: "seoul_metro", Kind: RegionMetro, MinLat: 37.4, MaxLat: 37.7, MinLon: 126.8, MaxLon: 127.2, Factor: 1.1},
		{Name: "gangwon", Kind: RegionMountain, MinLat: 37.0, MaxLat: 38.6, MinLon: 127.9, MaxLon: 129.4, Factor: 1.18},
	}
}

// Classify returns the first region containing the coordinate, or nil
func (e *Estimator) Classify(c models.Coordinate) *Region {
	for i := range e.regions {
		if e.regions[i].Contains(c) {
			return &e.regions[i]
		}
	}
	return nil
}

// islandName returns the island region name for a coordinate, or "" when the
// point is on the mainland
func (e *Estimator) islandName(c models.Coordinate) string {
	r := e.Classify(c)
	if r != nil && r.Kind == RegionIsland {
		return r.Name
	}
	return ""
}

// Feasibility is the result of the regional pre-check that runs before any
// provider is called
type Feasibility struct {
	Feasible       bool
	Reason         string
	SuggestedModes []models.TransportMode
}

// longHaulKm is the straight-line distance beyond which surface travel is
// treated as requiring air or rail
const longHaulKm = 300

// CheckFeasibility classifies origin and destination and rejects modes that
// are categorically impossible for the geography, short-circuiting the
// provider chain.
func (e *Estimator) CheckFeasibility(origin, destination models.Coordinate, mode models.TransportMode) Feasibility {
	originIsland := e.islandName(origin)
	destIsland := e.islandName(destination)
	crossSea := originIsland != destIsland

	if crossSea && (mode == models.ModeWalk || mode == models.ModeDrive) {
		return Feasibility{
			Reason:         "origin and destination are separated by open sea",
			SuggestedModes: []models.TransportMode{models.ModeTransit},
		}
	}

	straight := Haversine(origin, destination)
	if straight > longHaulKm && mode != models.ModeTransit {
		return Feasibility{
			Reason:         "distance exceeds 300 km; surface travel requires rail or air",
			SuggestedModes: []models.TransportMode{models.ModeTransit},
		}
	}

	return Feasibility{Feasible: true}
}
