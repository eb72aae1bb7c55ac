package controllers

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/lintang-b-s/campsite-explorer/pkg/explorer"
	"github.com/lintang-b-s/campsite-explorer/pkg/http/usecases"

	"github.com/julienschmidt/httprouter"
)

// viewRequest model info
//
//	@Description	map view reported by the client after a move or zoom.
type viewRequest struct {
	View explorer.ViewState `json:"view"`
}

// createSessionRequest model info
//
//	@Description	optional initial view of a new map session.
type createSessionRequest struct {
	View *explorer.ViewState `json:"view"`
}

// zoomResponse model info
//
//	@Description	bounds the client map should fit after a cluster click.
type zoomResponse struct {
	Fit usecases.FitInstruction `json:"fit"`
}

func (api *campsiteAPI) sessionErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, usecases.ErrSessionNotFound), errors.Is(err, usecases.ErrClusterNotFound):
		api.NotFoundResponse(w, r, err)
	case errors.Is(err, explorer.ErrMapNotReady):
		api.ConflictResponse(w, r, err)
	default:
		api.ServerErrorResponse(w, r, err)
	}
}

// createSession godoc
// @Summary		start a map session.
// @Description	creates a clustering session bound to one client map. the body may carry the initial view.
// @Tags			sessions
// @ID createSession
// @Param			body	body	createSessionRequest	false	"initial view"
// @Accept			application/json
// @Produce		application/json
// @Router			/api/sessions [post]
// @Success		201	{object}	markersResponse
// @Failure		400	{object}	errorResponse
// @Failure		500	{object}	errorResponse
func (api *campsiteAPI) createSession(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var request createSessionRequest
	if err := api.readJSON(w, r, &request); err != nil && !errors.Is(err, io.EOF) {
		api.BadRequestResponse(w, r, err)
		return
	}
	if request.View != nil {
		if err := api.validate(request.View); err != nil {
			api.BadRequestResponse(w, r, err)
			return
		}
	}

	id, snap, err := api.sessionService.CreateSession(request.View)
	if err != nil {
		api.ServerErrorResponse(w, r, err)
		return
	}

	resp := newSnapshotResponse(id, snap)
	if request.View == nil {
		resp.SuggestedView = defaultSuggestedView()
	}

	headers := make(http.Header)
	headers.Set("Location", fmt.Sprintf("/api/sessions/%s/markers", id))
	if err := api.writeJSON(w, http.StatusCreated, envelope{"data": resp}, headers); err != nil {
		api.ServerErrorResponse(w, r, err)
	}
}

// updateView godoc
// @Summary		report a map move or zoom.
// @Description	throttled: updates arriving within the throttle window of the last applied one are dropped (applied=false).
// @Tags			sessions
// @ID updateView
// @Param			id		path	string		true	"session id"
// @Param			body	body	viewRequest	true	"current map view"
// @Accept			application/json
// @Produce		application/json
// @Router			/api/sessions/{id}/view [put]
// @Success		200	{object}	markersResponse
// @Failure		400	{object}	errorResponse
// @Failure		404	{object}	errorResponse
func (api *campsiteAPI) updateView(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var request viewRequest
	if err := api.readJSON(w, r, &request); err != nil {
		if errors.Is(err, io.EOF) {
			err = errors.New("body must not be empty")
		}
		api.BadRequestResponse(w, r, err)
		return
	}
	if err := api.validate(request); err != nil {
		api.BadRequestResponse(w, r, err)
		return
	}

	id := ps.ByName("id")
	snap, applied, err := api.sessionService.UpdateView(id, request.View)
	if err != nil {
		api.sessionErrorResponse(w, r, err)
		return
	}

	resp := newSnapshotResponse(id, snap)
	resp.Applied = &applied
	if err := api.writeJSON(w, http.StatusOK, envelope{"data": resp}, nil); err != nil {
		api.ServerErrorResponse(w, r, err)
	}
}

// markers godoc
// @Summary		markers visible in the session's current view.
// @Tags			sessions
// @ID markers
// @Param			id	path	string	true	"session id"
// @Produce		application/json
// @Router			/api/sessions/{id}/markers [get]
// @Success		200	{object}	markersResponse
// @Failure		404	{object}	errorResponse
func (api *campsiteAPI) markers(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id := ps.ByName("id")
	snap, err := api.sessionService.Markers(id)
	if err != nil {
		api.sessionErrorResponse(w, r, err)
		return
	}
	if err := api.writeJSON(w, http.StatusOK, envelope{"data": newSnapshotResponse(id, snap)}, nil); err != nil {
		api.ServerErrorResponse(w, r, err)
	}
}

// zoomToCluster godoc
// @Summary		click on a cluster marker.
// @Description	returns the cluster bounds padded by 0.01 degrees and the max zoom the client should fit its map to.
// @Tags			sessions
// @ID zoomToCluster
// @Param			id		path	string	true	"session id"
// @Param			index	path	int		true	"cluster index in the last markers response"
// @Produce		application/json
// @Router			/api/sessions/{id}/clusters/{index}/zoom [post]
// @Failure		409	{object}	errorResponse
// @Success		200	{object}	zoomResponse
// @Failure		400	{object}	errorResponse
// @Failure		404	{object}	errorResponse
func (api *campsiteAPI) zoomToCluster(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	index, err := strconv.Atoi(ps.ByName("index"))
	if err != nil || index < 0 {
		api.BadRequestResponse(w, r, errors.New("cluster index must be a non-negative integer"))
		return
	}

	fit, err := api.sessionService.ZoomToCluster(ps.ByName("id"), index)
	if err != nil {
		api.sessionErrorResponse(w, r, err)
		return
	}
	if err := api.writeJSON(w, http.StatusOK, envelope{"data": zoomResponse{Fit: fit}}, nil); err != nil {
		api.ServerErrorResponse(w, r, err)
	}
}

// refresh godoc
// @Summary		recluster the session's view.
// @Description	drops the session's cached cluster results and rereads the view, ignoring the throttle.
// @Tags			sessions
// @ID refresh
// @Param			id	path	string	true	"session id"
// @Produce		application/json
// @Router			/api/sessions/{id}/refresh [post]
// @Success		200	{object}	markersResponse
// @Failure		404	{object}	errorResponse
func (api *campsiteAPI) refresh(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id := ps.ByName("id")
	snap, err := api.sessionService.Refresh(id)
	if err != nil {
		api.sessionErrorResponse(w, r, err)
		return
	}
	if err := api.writeJSON(w, http.StatusOK, envelope{"data": newSnapshotResponse(id, snap)}, nil); err != nil {
		api.ServerErrorResponse(w, r, err)
	}
}

// deleteSession godoc
// @Summary		end a map session.
// @Tags			sessions
// @ID deleteSession
// @Param			id	path	string	true	"session id"
// @Router			/api/sessions/{id} [delete]
// @Success		204
// @Failure		404	{object}	errorResponse
func (api *campsiteAPI) deleteSession(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	if err := api.sessionService.DeleteSession(ps.ByName("id")); err != nil {
		api.sessionErrorResponse(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
