package provider

import "math"

// Synthetic cost constants used when a provider does not return a fare:
// a 1500 base transit fare with a per-km surcharge past 10 km, and fuel
// costed at 1600 per liter against a 12 km/L average.
const (
	transitBaseFare      = 1500.0
	transitFareFreeKm    = 10.0
	transitFarePerKm     = 100.0
	fuelEfficiencyKmPerL = 12.0
	fuelPricePerLiter    = 1600.0
)

// TransitFare estimates a transit fare from distance
func TransitFare(km float64) float64 {
	surcharge := 0.0
	if km > transitFareFreeKm {
		surcharge = (km - transitFareFreeKm) * transitFarePerKm
	}
	return transitBaseFare + surcharge
}

// DriveFuelCost estimates fuel spend for a drive of the given distance
func DriveFuelCost(km float64) float64 {
	return math.Round(km / fuelEfficiencyKmPerL * fuelPricePerLiter)
}
