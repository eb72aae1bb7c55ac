package controllers

import (
	"github.com/lintang-b-s/campsite-explorer/pkg/cluster"
	"github.com/lintang-b-s/campsite-explorer/pkg/datastructure"
	"github.com/lintang-b-s/campsite-explorer/pkg/explorer"
	"github.com/lintang-b-s/campsite-explorer/pkg/geo"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// clusterMarker model info
//
//	@Description	a cluster marker. index is its position in this response, used by the zoom endpoint.
type clusterMarker struct {
	ID          string               `json:"id"` // s2 cell token of the centroid at this zoom
	Index       int                  `json:"index"`
	Lat         float64              `json:"lat"`
	Lng         float64              `json:"lng"`
	Count       int                  `json:"count"`
	Bounds      datastructure.Bounds `json:"bounds"`
	CampsiteIDs []int                `json:"campsite_ids"`
	Marker      cluster.MarkerStyle  `json:"marker"`
}

// markersResponse model info
//
//	@Description	markers visible in a map view.
type markersResponse struct {
	SessionID  string                   `json:"session_id,omitempty"`
	Zoom       int                      `json:"zoom"`
	Bounds     *datastructure.Bounds    `json:"bounds"`
	Clusters   []clusterMarker          `json:"clusters"`
	Campsites  []datastructure.Campsite `json:"campsites"`
	Recomputed bool                     `json:"recomputed"`
	Applied    *bool                    `json:"applied,omitempty"` // false: the view update was throttled

	SuggestedView *suggestedView `json:"suggested_view,omitempty"`
}

// suggestedView model info
//
//	@Description	where a new map without a view should start.
type suggestedView struct {
	Center datastructure.Coordinates `json:"center"`
	Zoom   int                       `json:"zoom"`
}

func defaultSuggestedView() *suggestedView {
	return &suggestedView{
		Center: datastructure.Coordinates{
			Latitude:  explorer.DEFAULT_CENTER_LAT,
			Longitude: explorer.DEFAULT_CENTER_LNG,
		},
		Zoom: explorer.DEFAULT_VIEW_ZOOM,
	}
}

func newClusterMarkers(zoom int, clusters []datastructure.Cluster) []clusterMarker {
	markers := make([]clusterMarker, 0, len(clusters))
	for i, c := range clusters {
		ids := make([]int, 0, len(c.Campsites))
		for _, campsite := range c.Campsites {
			ids = append(ids, campsite.ID)
		}
		markers = append(markers, clusterMarker{
			ID:          geo.CellToken(c.Lat, c.Lng, zoom),
			Index:       i,
			Lat:         c.Lat,
			Lng:         c.Lng,
			Count:       c.Count,
			Bounds:      c.Bounds,
			CampsiteIDs: ids,
			Marker:      cluster.NewMarkerStyle(c.Count),
		})
	}
	return markers
}

func newSnapshotResponse(sessionID string, snap explorer.Snapshot) markersResponse {
	return markersResponse{
		SessionID:  sessionID,
		Zoom:       snap.Zoom,
		Bounds:     snap.Bounds,
		Clusters:   newClusterMarkers(snap.Zoom, snap.Clusters),
		Campsites:  nonNilCampsites(snap.Singles),
		Recomputed: snap.Recomputed,
	}
}

func nonNilCampsites(campsites []datastructure.Campsite) []datastructure.Campsite {
	if campsites == nil {
		return []datastructure.Campsite{}
	}
	return campsites
}

// newFeatureCollection. clusters and singles as GeoJSON points, supercluster style properties.
func newFeatureCollection(zoom int, result cluster.Result) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	for i, c := range result.Clusters {
		f := geojson.NewFeature(orb.Point{c.Lng, c.Lat})
		f.ID = geo.CellToken(c.Lat, c.Lng, zoom)
		f.BBox = geojson.NewBBox(orb.Bound{
			Min: orb.Point{c.Bounds.West, c.Bounds.South},
			Max: orb.Point{c.Bounds.East, c.Bounds.North},
		})
		style := cluster.NewMarkerStyle(c.Count)
		f.Properties["cluster"] = true
		f.Properties["index"] = i
		f.Properties["point_count"] = c.Count
		f.Properties["point_count_abbreviated"] = style.Label
		f.Properties["marker_size"] = style.Size
		f.Properties["marker_color"] = style.Color
		fc.Append(f)
	}
	for _, campsite := range result.Singles {
		f := geojson.NewFeature(orb.Point{campsite.Lon(), campsite.Lat()})
		f.ID = campsite.ID
		f.Properties["cluster"] = false
		f.Properties["location_name"] = campsite.LocationName
		f.Properties["site_name"] = campsite.SiteName
		f.Properties["type"] = campsite.Type
		fc.Append(f)
	}
	return fc
}
