package geo

import (
	"github.com/golang/geo/s2"
)

const (
	minCellLevel = 2
	maxCellLevel = 30
)

// CellToken returns the s2 cell token containing (lat, lon) at a level derived from zoom.
// markers that land in the same cell at the same zoom share a token.
func CellToken(lat, lon float64, zoom int) string {
	level := zoom + minCellLevel
	if level < minCellLevel {
		level = minCellLevel
	}
	if level > maxCellLevel {
		level = maxCellLevel
	}
	cellID := s2.CellIDFromLatLng(s2.LatLngFromDegrees(lat, lon)).Parent(level)
	return cellID.ToToken()
}
