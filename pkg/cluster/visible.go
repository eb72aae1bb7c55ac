package cluster

import (
	"github.com/lintang-b-s/campsite-explorer/pkg/datastructure"
)

// FilterVisible keeps the clusters whose centroid and the singles whose coordinate lie inside bounds.
// a cluster spilling over the edge is kept/dropped by its centroid only.
func FilterVisible(clusters []datastructure.Cluster, singles []datastructure.Campsite,
	bounds datastructure.Bounds) ([]datastructure.Cluster, []datastructure.Campsite) {
	visibleClusters := make([]datastructure.Cluster, 0, len(clusters))
	for _, c := range clusters {
		if bounds.Contains(c.Lat, c.Lng) {
			visibleClusters = append(visibleClusters, c)
		}
	}

	visibleSingles := make([]datastructure.Campsite, 0, len(singles))
	for _, s := range singles {
		if bounds.Contains(s.Lat(), s.Lon()) {
			visibleSingles = append(visibleSingles, s)
		}
	}

	return visibleClusters, visibleSingles
}

// Visible. FilterVisible applied to a Result.
func (r Result) Visible(bounds datastructure.Bounds) Result {
	clusters, singles := FilterVisible(r.Clusters, r.Singles, bounds)
	return Result{
		Clusters: clusters,
		Singles:  singles,
	}
}
