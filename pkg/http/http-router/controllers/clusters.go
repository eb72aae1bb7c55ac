package controllers

import (
	"net/http"

	"github.com/lintang-b-s/campsite-explorer/pkg/datastructure"

	"github.com/julienschmidt/httprouter"
)

// clustersRequest model info
//
//	@Description	viewport of a one-shot cluster query.
type clustersRequest struct {
	Zoom   int                  `validate:"min=0,max=22"`
	Bounds datastructure.Bounds
	Format string               `validate:"omitempty,oneof=json geojson"`
}

func parseClustersRequest(r *http.Request) (clustersRequest, error) {
	qs := r.URL.Query()
	var req clustersRequest
	var err error
	if req.Zoom, err = queryInt(qs, "zoom", -1); err != nil {
		return req, err
	}
	if req.Zoom == -1 {
		return req, errZoomRequired
	}
	for _, p := range []struct {
		key string
		dst *float64
	}{
		{"north", &req.Bounds.North},
		{"south", &req.Bounds.South},
		{"east", &req.Bounds.East},
		{"west", &req.Bounds.West},
	} {
		if *p.dst, err = queryFloat(qs, p.key); err != nil {
			return req, err
		}
	}
	req.Format = qs.Get("format")
	return req, nil
}

// clusters godoc
// @Summary		cluster the campsite dataset for a map viewport.
// @Description	clusters and single campsites whose centroid lies inside the viewport. format=geojson returns a FeatureCollection.
// @Tags			clusters
// @ID clusters
// @Param			zoom	query	int		true	"map zoom level"
// @Param			north	query	number	true	"north edge"
// @Param			south	query	number	true	"south edge"
// @Param			east	query	number	true	"east edge"
// @Param			west	query	number	true	"west edge"
// @Param			format	query	string	false	"json (default) or geojson"
// @Produce		application/json
// @Router			/api/clusters [get]
// @Success		200	{object}	markersResponse
// @Failure		400	{object}	errorResponse
// @Failure		500	{object}	errorResponse
func (api *campsiteAPI) clusters(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	request, err := parseClustersRequest(r)
	if err != nil {
		api.BadRequestResponse(w, r, err)
		return
	}
	if err := api.validate(request); err != nil {
		api.BadRequestResponse(w, r, err)
		return
	}

	result, err := api.clusterService.Clusters(request.Zoom, request.Bounds)
	if err != nil {
		api.ServerErrorResponse(w, r, err)
		return
	}

	headers := make(http.Header)
	if request.Format == "geojson" {
		headers.Set("Content-Type", "application/geo+json")
		if err := api.writeJSON(w, http.StatusOK, newFeatureCollection(request.Zoom, result), headers); err != nil {
			api.ServerErrorResponse(w, r, err)
		}
		return
	}

	bounds := request.Bounds
	resp := markersResponse{
		Zoom:      request.Zoom,
		Bounds:    &bounds,
		Clusters:  newClusterMarkers(request.Zoom, result.Clusters),
		Campsites: nonNilCampsites(result.Singles),
	}
	if err := api.writeJSON(w, http.StatusOK, envelope{"data": resp}, headers); err != nil {
		api.ServerErrorResponse(w, r, err)
	}
}
