package cluster

import (
	"testing"

	"github.com/lintang-b-s/campsite-explorer/pkg/datastructure"
	"github.com/stretchr/testify/assert"
)

func TestFilterVisible(t *testing.T) {
	bounds := datastructure.NewBounds(44.0, 43.0, -74.0, -75.0)

	inside := datastructure.Cluster{Lat: 43.5, Lng: -74.5, Count: 3,
		Bounds: datastructure.NewBounds(43.6, 43.4, -74.4, -74.6)}
	// centroid outside, bbox reaching into the viewport
	spilling := datastructure.Cluster{Lat: 44.2, Lng: -74.5, Count: 4,
		Bounds: datastructure.NewBounds(44.5, 43.9, -74.4, -74.6)}
	// centroid inside, members outside
	straddling := datastructure.Cluster{Lat: 43.95, Lng: -74.95, Count: 2,
		Bounds: datastructure.NewBounds(44.3, 43.6, -74.6, -75.3)}

	singles := []datastructure.Campsite{
		datastructure.NewCampsite(1, "in", "1", "tent", 43.2, -74.2),
		datastructure.NewCampsite(2, "north edge", "2", "tent", 44.0, -74.5),
		datastructure.NewCampsite(3, "south west corner", "3", "tent", 43.0, -75.0),
		datastructure.NewCampsite(4, "out", "4", "tent", 42.99, -74.5),
		datastructure.NewCampsite(5, "out east", "5", "tent", 43.5, -73.99),
	}

	t.Run("centroid only", func(t *testing.T) {
		clusters, _ := FilterVisible([]datastructure.Cluster{inside, spilling, straddling}, nil, bounds)
		assert.Equal(t, []datastructure.Cluster{inside, straddling}, clusters)
	})

	t.Run("inclusive edges", func(t *testing.T) {
		_, visible := FilterVisible(nil, singles, bounds)
		assert.Equal(t, []int{1, 2, 3}, idsOf(visible))
	})

	t.Run("cluster on the edge", func(t *testing.T) {
		edge := datastructure.Cluster{Lat: 44.0, Lng: -74.0, Count: 2}
		clusters, _ := FilterVisible([]datastructure.Cluster{edge}, nil, bounds)
		assert.Len(t, clusters, 1)
	})

	t.Run("inputs untouched", func(t *testing.T) {
		res := Result{Clusters: []datastructure.Cluster{inside, spilling}, Singles: singles}
		visible := res.Visible(bounds)
		assert.Len(t, visible.Clusters, 1)
		assert.Len(t, visible.Singles, 3)
		assert.Len(t, res.Clusters, 2)
		assert.Len(t, res.Singles, 5)
	})

	t.Run("empty", func(t *testing.T) {
		clusters, visible := FilterVisible(nil, nil, bounds)
		assert.Empty(t, clusters)
		assert.Empty(t, visible)
	})
}
