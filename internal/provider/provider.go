// Package provider abstracts the upstream routing services (transit search,
// turn-by-turn navigation, generic directions) behind a single interface and
// implements the per-mode fallback chains the itinerary engine relies on.
package provider

import (
	"context"
	"errors"
	"fmt"

	"github.com/aicc6/weather-flick-back-sub000/internal/models"
)

// RoutingProvider is one upstream source of route estimates. Implementations
// return ErrUnsupportedMode for modes they do not serve.
type RoutingProvider interface {
	Name() string
	GetRoute(ctx context.Context, origin, destination models.Coordinate, mode models.TransportMode) (models.RouteEstimate, error)
}

// ErrUnsupportedMode is returned by providers asked for a mode they cannot
// serve; the chain treats it like any other provider failure.
var ErrUnsupportedMode = errors.New("transport mode not supported by this provider")

// Status tags a route lookup outcome
type Status int

const (
	// StatusOK means an estimate was produced (possibly demoted, see
	// RouteEstimate.Realistic).
	StatusOK Status = iota
	// StatusInfeasible means the mode is categorically impossible for the
	// geography; no provider was called.
	StatusInfeasible
	// StatusFailed means every provider and fallback failed.
	StatusFailed
)

// Outcome is the tagged result of a route lookup. Callers switch on Status
// instead of catching errors for control flow.
type Outcome struct {
	Status         Status
	Estimate       models.RouteEstimate
	Reason         string
	SuggestedModes []models.TransportMode
	Err            error
}

// Ok wraps a successful estimate
func Ok(est models.RouteEstimate) Outcome {
	return Outcome{Status: StatusOK, Estimate: est}
}

// Infeasible reports a categorically impossible mode with alternatives
func Infeasible(reason string, suggested ...models.TransportMode) Outcome {
	return Outcome{Status: StatusInfeasible, Reason: reason, SuggestedModes: suggested}
}

// Failed reports that the whole chain was exhausted
func Failed(err error) Outcome {
	return Outcome{Status: StatusFailed, Err: err}
}

// NoFeasibleRouteError aborts an optimization request when one leg has no
// feasible route by any mode. It identifies the offending leg.
type NoFeasibleRouteError struct {
	FromID   string
	FromName string
	ToID     string
	ToName   string
	Reason   string
}

func (e *NoFeasibleRouteError) Error() string {
	return fmt.Sprintf("no feasible route from %q (%s) to %q (%s): %s",
		e.FromName, e.FromID, e.ToName, e.ToID, e.Reason)
}
