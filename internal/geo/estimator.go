package geo

import (
	"math"

	"github.com/aicc6/weather-flick-back-sub000/internal/models"
)

const earthRadiusKm = 6371

// Haversine returns the great-circle distance between two points in km
func Haversine(a, b models.Coordinate) float64 {
	dLat := radians(b.Latitude - a.Latitude)
	dLon := radians(b.Longitude - a.Longitude)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(radians(a.Latitude))*math.Cos(radians(b.Latitude))*
			math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return earthRadiusKm * c
}

func radians(deg float64) float64 {
	return deg * math.Pi / 180
}

// Assumed average speeds in km/h, transfers and traffic included
const (
	walkSpeedKmh    = 4.0
	transitSpeedKmh = 22.0
	driveSpeedKmh   = 28.0
)

// shortWalkKm is the distance under which walking time is taken directly
// from the straight line at 15 min/km
const shortWalkKm = 1.5

// Estimator computes offline distance and travel-time estimates. It is a
// pure function of its region table and never touches the network; the
// provider layer uses it as the fallback of last resort.
type Estimator struct {
	regions []Region
}

// NewEstimator builds an estimator over the default region table
func NewEstimator() *Estimator {
	return &Estimator{regions: DefaultRegions()}
}

// NewEstimatorWithRegions builds an estimator over a custom region table
func NewEstimatorWithRegions(regions []Region) *Estimator {
	return &Estimator{regions: regions}
}

// DistanceAndTime estimates the corrected road distance (km) and travel time
// (minutes) between two points for the given mode. The returned distance is
// never less than the straight-line distance.
func (e *Estimator) DistanceAndTime(a, b models.Coordinate, mode models.TransportMode) (km float64, minutes int) {
	straight := Haversine(a, b)

	if mode == models.ModeWalk && straight <= shortWalkKm {
		return straight, int(math.Ceil(straight * 15))
	}

	km = straight * e.roadCorrection(a, b, straight)

	speed := transitSpeedKmh
	switch mode {
	case models.ModeWalk:
		speed = walkSpeedKmh
	case models.ModeDrive:
		speed = driveSpeedKmh
	}

	minutes = int(math.Ceil(km / speed * 60))
	return km, minutes
}

// roadCorrection combines the distance-tier factor with the regional factor
// of whichever endpoint region corrects hardest
func (e *Estimator) roadCorrection(a, b models.Coordinate, straightKm float64) float64 {
	factor := tierFactor(straightKm)

	regional := 1.0
	for _, c := range []models.Coordinate{a, b} {
		if r := e.Classify(c); r != nil && r.Factor > regional {
			regional = r.Factor
		}
	}

	return factor * regional
}

// tierFactor maps straight-line distance to a road-vs-crow-flies multiplier.
// Short hops wander the most; long hauls ride expressways.
func tierFactor(straightKm float64) float64 {
	switch {
	case straightKm <= 5:
		return 1.6
	case straightKm <= 20:
		return 1.5
	case straightKm <= 50:
		return 1.4
	case straightKm <= 100:
		return 1.35
	case straightKm <= 200:
		return 1.25
	default:
		return 1.15
	}
}
