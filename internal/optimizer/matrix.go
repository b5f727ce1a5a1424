// Package optimizer turns a set of geolocated places into timed, ordered
// daily itineraries: distance-matrix construction, priority-weighted
// ordering under time windows, multi-day clustering and segment assembly.
package optimizer

import (
	"context"
	"sync"

	"github.com/aicc6/weather-flick-back-sub000/internal/geo"
	"github.com/aicc6/weather-flick-back-sub000/internal/models"
)

// Matrix holds pairwise corrected distances (km) and travel times (minutes)
// for a list of points. The diagonal is zero.
type Matrix struct {
	Km      [][]float64
	Minutes [][]float64
}

// BuildMatrix computes the full pairwise matrix. Lookups are independent, so
// they fan out across goroutines and the builder waits for all of them;
// each goroutine writes its own cells, no cell is shared.
func BuildMatrix(ctx context.Context, estimator *geo.Estimator, points []models.Coordinate, mode models.TransportMode) (*Matrix, error) {
	n := len(points)
	m := &Matrix{
		Km:      make([][]float64, n),
		Minutes: make([][]float64, n),
	}
	for i := 0; i < n; i++ {
		m.Km[i] = make([]float64, n)
		m.Minutes[i] = make([]float64, n)
	}

	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			wg.Add(1)
			go func(i, j int) {
				defer wg.Done()
				km, minutes := estimator.DistanceAndTime(points[i], points[j], mode)
				m.Km[i][j], m.Km[j][i] = km, km
				m.Minutes[i][j], m.Minutes[j][i] = float64(minutes), float64(minutes)
			}(i, j)
		}
	}
	wg.Wait()

	// Partial matrices are never returned.
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return m, nil
}
