package optimizer

import (
	"github.com/aicc6/weather-flick-back-sub000/internal/models"
)

// Cluster partitions places into day-sized geographic buckets using a 1-D
// latitude grid. It is intentionally dependency-free: day counts are tiny
// and a full clustering pass buys nothing over the grid.
//
// Guarantees: the union of the buckets is exactly the input (no duplicates),
// no bucket is empty, and len(result) == days whenever enough places exist.
func Cluster(places []models.Place, days int) [][]models.Place {
	if days < 1 {
		days = 1
	}

	// Fewer places than days: one singleton bucket each.
	if len(places) <= days {
		buckets := make([][]models.Place, 0, len(places))
		for _, p := range places {
			buckets = append(buckets, []models.Place{p})
		}
		return buckets
	}

	latMin, latMax := places[0].Location.Latitude, places[0].Location.Latitude
	for _, p := range places[1:] {
		if p.Location.Latitude < latMin {
			latMin = p.Location.Latitude
		}
		if p.Location.Latitude > latMax {
			latMax = p.Location.Latitude
		}
	}

	// Epsilon keeps the division sane when every place shares a latitude.
	span := latMax - latMin + 1e-4

	buckets := make([][]models.Place, days)
	for _, p := range places {
		idx := int((p.Location.Latitude - latMin) / span * float64(days))
		if idx >= days {
			idx = days - 1
		}
		buckets[idx] = append(buckets[idx], p)
	}

	// Drop empty buckets, then split the largest until the day count is
	// restored (or nothing is left to split).
	nonEmpty := buckets[:0]
	for _, b := range buckets {
		if len(b) > 0 {
			nonEmpty = append(nonEmpty, b)
		}
	}
	buckets = nonEmpty

	for len(buckets) < days {
		largest := 0
		for i, b := range buckets {
			if len(b) > len(buckets[largest]) {
				largest = i
			}
		}
		if len(buckets[largest]) <= 1 {
			break
		}
		mid := len(buckets[largest]) / 2
		head, tail := buckets[largest][:mid], buckets[largest][mid:]
		buckets[largest] = head
		buckets = append(buckets, tail)
	}

	return buckets
}
