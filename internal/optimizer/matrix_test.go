package optimizer

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aicc6/weather-flick-back-sub000/internal/geo"
	"github.com/aicc6/weather-flick-back-sub000/internal/models"
)

func TestBuildMatrix(t *testing.T) {
	points := []models.Coordinate{
		{Latitude: 37.5547, Longitude: 126.9706},
		{Latitude: 37.4979, Longitude: 127.0276},
		{Latitude: 37.5796, Longitude: 126.9770},
	}

	m, err := BuildMatrix(context.Background(), geo.NewEstimator(), points, models.ModeTransit)
	require.NoError(t, err)

	n := len(points)
	require.Len(t, m.Km, n)
	require.Len(t, m.Minutes, n)

	for i := 0; i < n; i++ {
		assert.Zero(t, m.Km[i][i], "diagonal must be zero")
		assert.Zero(t, m.Minutes[i][i])
		for j := 0; j < n; j++ {
			assert.Equal(t, m.Km[i][j], m.Km[j][i], "matrix must be symmetric")
			assert.Equal(t, m.Minutes[i][j], m.Minutes[j][i])
			if i != j {
				assert.Greater(t, m.Km[i][j], 0.0)
				assert.Greater(t, m.Minutes[i][j], 0.0)
			}
		}
	}
}

func TestBuildMatrixCancelledContext(t *testing.T) {
	points := []models.Coordinate{
		{Latitude: 37.5547, Longitude: 126.9706},
		{Latitude: 37.4979, Longitude: 127.0276},
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	m, err := BuildMatrix(ctx, geo.NewEstimator(), points, models.ModeTransit)
	assert.Error(t, err)
	assert.Nil(t, m)
}
