package provider

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/aicc6/weather-flick-back-sub000/internal/models"
	"github.com/aicc6/weather-flick-back-sub000/internal/realism"
)

// ChainEntry pairs a provider with its per-attempt timeout. A zero timeout
// means the attempt only honors the caller's context.
type ChainEntry struct {
	Provider RoutingProvider
	Timeout  time.Duration
}

// Chain tries providers in fixed priority order for one transport mode.
// Attempts are sequential: trying providers in parallel would burn quota and
// the order encodes trust.
type Chain struct {
	mode    models.TransportMode
	entries []ChainEntry
}

// NewChain builds a fallback chain for the given mode
func NewChain(mode models.TransportMode, entries ...ChainEntry) *Chain {
	return &Chain{mode: mode, entries: entries}
}

// Mode returns the transport mode this chain serves
func (c *Chain) Mode() models.TransportMode { return c.mode }

// Resolve walks the chain until a provider produces a realistic estimate.
// Provider failures and timeouts advance the chain; they are never fatal.
// Estimates that fail realism validation are demoted but remembered, so if
// nothing validates the best raw estimate is still returned, annotated as
// unrealistic, rather than failing the lookup.
func (c *Chain) Resolve(ctx context.Context, origin, destination models.Coordinate) Outcome {
	var demoted *models.RouteEstimate
	var lastErr error

	for _, entry := range c.entries {
		if err := ctx.Err(); err != nil {
			return Failed(err)
		}

		attemptCtx := ctx
		cancel := func() {}
		if entry.Timeout > 0 {
			attemptCtx, cancel = context.WithTimeout(ctx, entry.Timeout)
		}

		est, err := entry.Provider.GetRoute(attemptCtx, origin, destination, c.mode)
		cancel()

		if err != nil {
			// Treated identically to a timeout: advance the chain.
			if err != ErrUnsupportedMode {
				log.Printf("provider %s failed for %s leg: %v", entry.Provider.Name(), c.mode, err)
			}
			lastErr = err
			continue
		}

		realism.Apply(&est)
		if est.Realistic {
			return Ok(est)
		}

		log.Printf("provider %s returned unrealistic %s estimate (%.1f km, %d min): demoted",
			entry.Provider.Name(), c.mode, est.DistanceKm, est.DurationMinutes)
		if demoted == nil {
			saved := est
			demoted = &saved
		}
	}

	if demoted != nil {
		return Ok(*demoted)
	}

	if lastErr == nil {
		lastErr = fmt.Errorf("no providers configured for mode %s", c.mode)
	}
	return Failed(fmt.Errorf("all providers failed for mode %s: %w", c.mode, lastErr))
}
