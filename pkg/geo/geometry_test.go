package geo

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHaversineDistance(t *testing.T) {
	cases := []struct {
		name                string
		latOne, lonOne      float64
		latTwo, lonTwo      float64
		expected, tolerance float64
	}{
		{"same point", 43.371122, -74.730233, 43.371122, -74.730233, 0, 0},
		{"one degree of latitude", 0, 0, 1, 0, 111.195, 0.01},
		{"albany to nyc", 42.6526, -73.7562, 40.7128, -74.0060, 216.7, 1.5},
		{"antipodal", 0, 0, 0, 180, math.Pi * earthRadiusKM, 0.001},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := HaversineDistance(c.latOne, c.lonOne, c.latTwo, c.lonTwo)
			assert.InDelta(t, c.expected, got, c.tolerance)
		})
	}

	t.Run("symmetric", func(t *testing.T) {
		pts := [][2]float64{
			{43.371122, -74.730233},
			{44.2795, -73.9799},
			{-7.786841015007818, 110.35482068177964},
			{89.9, 179.9},
			{-89.9, -179.9},
		}
		for i := range pts {
			for j := range pts {
				ab := HaversineDistance(pts[i][0], pts[i][1], pts[j][0], pts[j][1])
				ba := HaversineDistance(pts[j][0], pts[j][1], pts[i][0], pts[i][1])
				assert.Equal(t, ab, ba)
				if i == j {
					assert.Equal(t, 0.0, ab)
				}
			}
		}
	})
}

func TestClusterRadius(t *testing.T) {
	cases := []struct {
		zoom     int
		expected float64
	}{
		{0, 100}, {3, 100}, {4, 60}, {5, 60}, {6, 30}, {7, 30},
		{8, 12}, {9, 12}, {10, 4}, {11, 4}, {12, 1.5}, {13, 1.5},
		{14, 0.5}, {15, 0.5}, {16, 0.1}, {18, 0.1}, {22, 0.1},
	}
	for _, c := range cases {
		assert.Equal(t, c.expected, ClusterRadius(c.zoom), "zoom %d", c.zoom)
	}

	t.Run("non increasing with zoom", func(t *testing.T) {
		for z := -2; z < 25; z++ {
			assert.GreaterOrEqual(t, ClusterRadius(z), ClusterRadius(z+1))
		}
	})
}

func TestBoundingBoxAndCentroid(t *testing.T) {
	lats := []float64{43.1, 43.5, 42.9}
	lons := []float64{-74.2, -74.9, -74.0}

	bb := NewBoundingBox(lats, lons)
	assert.Equal(t, 43.5, bb.North)
	assert.Equal(t, 42.9, bb.South)
	assert.Equal(t, -74.0, bb.East)
	assert.Equal(t, -74.9, bb.West)

	lat, lon := Centroid(lats, lons)
	assert.InDelta(t, 43.1666, lat, 1e-3)
	assert.InDelta(t, -74.3666, lon, 1e-3)

	t.Run("contains is inclusive", func(t *testing.T) {
		assert.True(t, bb.Contains(43.5, -74.5))
		assert.True(t, bb.Contains(42.9, -74.9))
		assert.False(t, bb.Contains(43.51, -74.5))
	})
}

func TestCellToken(t *testing.T) {
	a := CellToken(43.371122, -74.730233, 5)
	b := CellToken(43.371200, -74.730300, 5)
	assert.Equal(t, a, b)
	assert.NotEmpty(t, a)

	far := CellToken(-7.7868, 110.3548, 5)
	assert.NotEqual(t, a, far)

	// deep zoom is clamped to the leaf level
	assert.NotEmpty(t, CellToken(43.371122, -74.730233, 40))
}
