package optimizer

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aicc6/weather-flick-back-sub000/internal/models"
)

func clusterPlace(id string, lat float64) models.Place {
	return models.Place{
		ID:       id,
		Name:     id,
		Location: models.Coordinate{Latitude: lat, Longitude: 127.0},
	}
}

func assertPartition(t *testing.T, places []models.Place, buckets [][]models.Place) {
	t.Helper()

	seen := map[string]int{}
	for _, bucket := range buckets {
		assert.NotEmpty(t, bucket, "no bucket may be empty")
		for _, p := range bucket {
			seen[p.ID]++
		}
	}
	require.Len(t, seen, len(places))
	for _, p := range places {
		assert.Equal(t, 1, seen[p.ID], "place %s must land in exactly one bucket", p.ID)
	}
}

func TestClusterSplitsIntoRequestedDays(t *testing.T) {
	var places []models.Place
	for i := 0; i < 12; i++ {
		places = append(places, clusterPlace(fmt.Sprintf("p%d", i), 33.2+float64(i)*0.03))
	}

	for _, days := range []int{1, 2, 3, 4} {
		t.Run(fmt.Sprintf("%d days", days), func(t *testing.T) {
			buckets := Cluster(places, days)
			assert.Len(t, buckets, days)
			assertPartition(t, places, buckets)
		})
	}
}

func TestClusterFewerPlacesThanDays(t *testing.T) {
	places := []models.Place{
		clusterPlace("a", 33.3),
		clusterPlace("b", 33.5),
	}

	buckets := Cluster(places, 5)

	assert.Len(t, buckets, 2, "two places cannot fill five days")
	assertPartition(t, places, buckets)
	for _, b := range buckets {
		assert.Len(t, b, 1)
	}
}

func TestClusterKeepsNeighborsTogether(t *testing.T) {
	// Two tight groups far apart: a 2-day split must not mix them
	var north, south []models.Place
	for i := 0; i < 4; i++ {
		north = append(north, clusterPlace(fmt.Sprintf("n%d", i), 37.50+float64(i)*0.01))
		south = append(south, clusterPlace(fmt.Sprintf("s%d", i), 33.30+float64(i)*0.01))
	}
	places := append(append([]models.Place{}, north...), south...)

	buckets := Cluster(places, 2)
	require.Len(t, buckets, 2)
	assertPartition(t, places, buckets)

	for _, bucket := range buckets {
		prefix := bucket[0].ID[:1]
		for _, p := range bucket {
			assert.Equal(t, prefix, p.ID[:1], "groups must not be mixed across days")
		}
	}
}

func TestClusterSameLatitude(t *testing.T) {
	places := []models.Place{
		clusterPlace("a", 35.0),
		clusterPlace("b", 35.0),
		clusterPlace("c", 35.0),
		clusterPlace("d", 35.0),
	}

	buckets := Cluster(places, 2)

	assert.Len(t, buckets, 2, "identical latitudes still split by largest-bucket halving")
	assertPartition(t, places, buckets)
}
