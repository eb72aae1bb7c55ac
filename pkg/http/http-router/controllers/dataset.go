package controllers

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
)

// dataset godoc
// @Summary		metadata of the loaded campsite dataset.
// @Tags			dataset
// @ID dataset
// @Produce		application/json
// @Router			/api/dataset [get]
// @Success		200	{object}	datastructure.DatasetMeta
// @Failure		500	{object}	errorResponse
func (api *campsiteAPI) dataset(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	meta, err := api.datasetService.Meta()
	if err != nil {
		api.ServerErrorResponse(w, r, err)
		return
	}
	if err := api.writeJSON(w, http.StatusOK, envelope{"data": meta}, nil); err != nil {
		api.ServerErrorResponse(w, r, err)
	}
}
