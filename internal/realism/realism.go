// Package realism applies heuristic plausibility bounds to provider route
// estimates before the rest of the engine trusts them. Estimates are flagged,
// never rejected outright: the caller decides whether to demote them.
package realism

import (
	"fmt"

	"github.com/aicc6/weather-flick-back-sub000/internal/models"
)

// Per-mode plausibility bounds. Values outside them mark an estimate as
// unrealistic.
const (
	maxWalkDistanceKm   = 50
	maxWalkDurationMin  = 600
	longWalkKm          = 20
	minWalkMinPerKm     = 10.0
	maxDriveDistanceKm  = 1000
	maxDriveDurationMin = 720
	longDriveKm         = 100
	minDriveMinPerKm    = 0.5
	shortDriveKm        = 0.5
	shortDriveMaxMin    = 30
	maxTransitKm        = 500
	maxTransitMin       = 480
	longTransitKm       = 50
	minTransitMinPerKm  = 1.5
	shortTransitKm      = 0.3
	shortTransitMaxMin  = 60

	maxDriveCostPerKm = 1000
	maxTransitCost    = 100000
)

// Verdict is the result of validating one estimate
type Verdict struct {
	Realistic bool
	Warnings  []string
}

// Validate checks the estimate against the per-mode bounds. Validation is
// idempotent: the verdict depends only on distance, duration, mode and cost,
// so re-validating an already validated estimate yields the same result.
func Validate(est models.RouteEstimate) Verdict {
	var warnings []string

	km := est.DistanceKm
	min := float64(est.DurationMinutes)

	switch est.Mode {
	case models.ModeWalk:
		if km > maxWalkDistanceKm {
			warnings = append(warnings, fmt.Sprintf("walking distance %.1f km exceeds %d km", km, maxWalkDistanceKm))
		}
		if min > maxWalkDurationMin {
			warnings = append(warnings, fmt.Sprintf("walking duration %.0f min exceeds %d min", min, maxWalkDurationMin))
		}
		if km > longWalkKm && min < km*minWalkMinPerKm {
			warnings = append(warnings, fmt.Sprintf("walking %.1f km in %.0f min is implausibly fast", km, min))
		}
	case models.ModeDrive:
		if km > maxDriveDistanceKm {
			warnings = append(warnings, fmt.Sprintf("driving distance %.1f km exceeds %d km", km, maxDriveDistanceKm))
		}
		if min > maxDriveDurationMin {
			warnings = append(warnings, fmt.Sprintf("driving duration %.0f min exceeds %d min", min, maxDriveDurationMin))
		}
		if km > longDriveKm && min < km*minDriveMinPerKm {
			warnings = append(warnings, fmt.Sprintf("driving %.1f km in %.0f min is implausibly fast", km, min))
		}
		if km < shortDriveKm && min > shortDriveMaxMin {
			warnings = append(warnings, fmt.Sprintf("driving %.2f km should not take %.0f min", km, min))
		}
	case models.ModeTransit:
		if km > maxTransitKm {
			warnings = append(warnings, fmt.Sprintf("transit distance %.1f km exceeds %d km", km, maxTransitKm))
		}
		if min > maxTransitMin {
			warnings = append(warnings, fmt.Sprintf("transit duration %.0f min exceeds %d min", min, maxTransitMin))
		}
		if km > longTransitKm && min < km*minTransitMinPerKm {
			warnings = append(warnings, fmt.Sprintf("transit %.1f km in %.0f min is implausibly fast", km, min))
		}
		if km < shortTransitKm && min > shortTransitMaxMin {
			warnings = append(warnings, fmt.Sprintf("transit %.2f km should not take %.0f min", km, min))
		}
	}

	if est.Cost < 0 {
		warnings = append(warnings, "negative cost")
	}
	if est.Mode == models.ModeDrive && km > 0 && est.Cost > km*maxDriveCostPerKm {
		warnings = append(warnings, fmt.Sprintf("driving cost %.0f exceeds %.0f per km", est.Cost, float64(maxDriveCostPerKm)))
	}
	if est.Mode == models.ModeTransit && est.Cost > maxTransitCost {
		warnings = append(warnings, fmt.Sprintf("transit cost %.0f exceeds ceiling %d", est.Cost, maxTransitCost))
	}

	return Verdict{Realistic: len(warnings) == 0, Warnings: warnings}
}

// Apply validates the estimate and writes the verdict onto it
func Apply(est *models.RouteEstimate) {
	v := Validate(*est)
	est.Realistic = v.Realistic
	est.Warnings = v.Warnings
}
