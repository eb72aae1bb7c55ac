package geo

// zoom breakpoints -> clustering radius in km. ordered from the highest zoom down.
var zoomRadiusKM = []struct {
	minZoom  int
	radiusKM float64
}{
	{16, 0.1}, // individual markers
	{14, 0.5},
	{12, 1.5}, // city
	{10, 4},
	{8, 12},
	{6, 30}, // county
	{4, 60}, // state
}

const maxRadiusKM = 100.0

// ClusterRadius returns the clustering radius (km) for a map zoom level.
// higher zoom = smaller radius.
func ClusterRadius(zoom int) float64 {
	for _, bp := range zoomRadiusKM {
		if zoom >= bp.minZoom {
			return bp.radiusKM
		}
	}
	return maxRadiusKM
}
