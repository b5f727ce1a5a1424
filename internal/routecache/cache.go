// Package routecache holds memoized provider estimates keyed by coordinate
// pair and transport mode. The cache is injected into the route client rather
// than living as process-global state, and it never holds user-identifying
// data.
package routecache

import (
	"context"
	"crypto/sha256"
	"fmt"

	"github.com/aicc6/weather-flick-back-sub000/internal/models"
)

// EstimateCache is the contract the route client depends on. Implementations
// must be safe for concurrent use.
type EstimateCache interface {
	Get(ctx context.Context, key string) (models.RouteEstimate, bool)
	Set(ctx context.Context, key string, est models.RouteEstimate)
}

// Key builds a deterministic cache key for an origin/destination pair and
// mode. Coordinates are truncated to six decimals (about 10 cm) so float
// noise does not fragment the cache.
func Key(origin, destination models.Coordinate, mode models.TransportMode) string {
	data := fmt.Sprintf("%.6f,%.6f:%.6f,%.6f",
		origin.Latitude, origin.Longitude,
		destination.Latitude, destination.Longitude)
	hash := sha256.Sum256([]byte(data))
	return fmt.Sprintf("est:%x:%s", hash[:8], mode)
}
