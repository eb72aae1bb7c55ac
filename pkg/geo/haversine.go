package geo

import "math"

const (
	earthRadiusKM = 6371.0
)

// https://scikit-learn.org/stable/modules/generated/sklearn.metrics.pairwise.haversine_distances.html
// sin^2(a/2)
func havFunction(angleRad float64) float64 {
	return math.Pow(math.Sin(angleRad/2.0), 2)
}

func degToRad(d float64) float64 {
	return d * math.Pi / 180.0
}

// HaversineDistance. great-circle distance in km between two coordinates given in degrees.
func HaversineDistance(latOne, longOne, latTwo, longTwo float64) float64 {
	latOne = degToRad(latOne)
	longOne = degToRad(longOne)
	latTwo = degToRad(latTwo)
	longTwo = degToRad(longTwo)

	centralAngleRad := 2.0 * math.Asin(math.Sqrt(havFunction(latOne-latTwo)+math.Cos(latOne)*math.Cos(latTwo)*havFunction(longOne-longTwo)))
	return earthRadiusKM * centralAngleRad
}
