package geo

import (
	"github.com/lintang-b-s/campsite-explorer/pkg/datastructure"
)

// NewBoundingBox. min/max of lats & lons. lats and lons must be non-empty and the same length.
func NewBoundingBox(lats, lons []float64) datastructure.Bounds {
	bb := datastructure.NewBounds(lats[0], lats[0], lons[0], lons[0])
	for i := 1; i < len(lats); i++ {
		if lats[i] < bb.South {
			bb.South = lats[i]
		}
		if lats[i] > bb.North {
			bb.North = lats[i]
		}
		if lons[i] < bb.West {
			bb.West = lons[i]
		}
		if lons[i] > bb.East {
			bb.East = lons[i]
		}
	}
	return bb
}

// Centroid. arithmetic mean of the coordinates, not the geodesic center.
func Centroid(lats, lons []float64) (float64, float64) {
	sumLat, sumLon := 0.0, 0.0
	for i := range lats {
		sumLat += lats[i]
		sumLon += lons[i]
	}
	n := float64(len(lats))
	return sumLat / n, sumLon / n
}

func CampsitesBoundingBox(campsites []datastructure.Campsite) datastructure.Bounds {
	if len(campsites) == 0 {
		return datastructure.Bounds{}
	}
	lats := make([]float64, len(campsites))
	lons := make([]float64, len(campsites))
	for i, c := range campsites {
		lats[i] = c.Lat()
		lons[i] = c.Lon()
	}
	return NewBoundingBox(lats, lons)
}
