// Package cluster groups campsites into map markers for a zoom level.
//
// The grouping is greedy and single pass: campsites are visited in input order,
// each unclaimed campsite seeds a group and claims every later unclaimed campsite
// within the zoom radius of the seed (not of other members, no chaining).
// A group becomes a Cluster only if it is dense enough for the zoom level,
// otherwise every member is returned as a single marker.
//
// Output is deterministic for a fixed input order but depends on that order.
package cluster

import (
	"github.com/lintang-b-s/campsite-explorer/pkg/datastructure"
	"github.com/lintang-b-s/campsite-explorer/pkg/geo"
)

// Result. every input campsite appears exactly once, either inside a cluster or in Singles.
type Result struct {
	Clusters []datastructure.Cluster `json:"clusters"`
	Singles  []datastructure.Campsite `json:"singles"`
}

func NewResult() Result {
	return Result{
		Clusters: []datastructure.Cluster{},
		Singles:  []datastructure.Campsite{},
	}
}

// Len. number of campsites covered by the result.
func (r Result) Len() int {
	n := len(r.Singles)
	for _, c := range r.Clusters {
		n += c.Count
	}
	return n
}

// minClusterSize is the smallest group promoted to a cluster at this zoom.
func minClusterSize(zoom int) int {
	switch {
	case zoom < 10:
		return 2
	case zoom < 13:
		return 3
	case zoom < 15:
		return 5
	default:
		return 8
	}
}

// ClusterCampsites partitions campsites into clusters and singles.
// radiusOverride <= 0 uses geo.ClusterRadius(zoom).
func ClusterCampsites(campsites []datastructure.Campsite, zoom int, radiusOverride float64) Result {
	radius := radiusOverride
	if radius <= 0 {
		radius = geo.ClusterRadius(zoom)
	}

	result := NewResult()
	if len(campsites) == 0 {
		return result
	}

	minSize := minClusterSize(zoom)
	claimed := make([]bool, len(campsites))

	for i := range campsites {
		if claimed[i] {
			continue
		}
		claimed[i] = true
		seed := campsites[i]
		group := []datastructure.Campsite{seed}

		for j := i + 1; j < len(campsites); j++ {
			if claimed[j] {
				continue
			}
			dist := geo.HaversineDistance(seed.Lat(), seed.Lon(), campsites[j].Lat(), campsites[j].Lon())
			if dist <= radius {
				group = append(group, campsites[j])
				claimed[j] = true
			}
		}

		if len(group) > 1 && len(group) >= minSize {
			result.Clusters = append(result.Clusters, newCluster(group))
		} else {
			result.Singles = append(result.Singles, group...)
		}
	}

	return result
}

func newCluster(members []datastructure.Campsite) datastructure.Cluster {
	lats := make([]float64, len(members))
	lons := make([]float64, len(members))
	for i, m := range members {
		lats[i] = m.Lat()
		lons[i] = m.Lon()
	}

	centerLat, centerLon := geo.Centroid(lats, lons)
	return datastructure.Cluster{
		Lat:       centerLat,
		Lng:       centerLon,
		Count:     len(members),
		Campsites: members,
		Bounds:    geo.NewBoundingBox(lats, lons),
	}
}
