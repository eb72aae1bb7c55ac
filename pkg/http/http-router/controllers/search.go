package controllers

import (
	"errors"
	"net/http"
	"regexp"

	"github.com/lintang-b-s/campsite-explorer/pkg/datastructure"

	"github.com/julienschmidt/httprouter"
)

var (
	regexSearch = regexp.MustCompile(`^[\p{L}0-9_ +,.()'&-]+$`)
)

// searchRequest model info
//
//	@Description	campsite name search.
type searchRequest struct {
	Query string `validate:"required,max=100"` // query entered by the user.
	Limit int    `validate:"min=1,max=100"`    // max number of campsites returned.
}

// searchResponse model info
//
//	@Description	campsites matching the query, best first.
type searchResponse struct {
	Data []datastructure.Campsite `json:"data"`
}

// search godoc
// @Summary		search campsites by location name, site name or type.
// @Description	prefix match on every query word, plus one-typo tolerance for words of 4 letters or more.
// @Tags			search
// @ID search
// @Param			q		query	string	true	"query"
// @Param			limit	query	int		false	"max results, default 20"
// @Produce		application/json
// @Router			/api/campsites/search [get]
// @Success		200	{object}	searchResponse
// @Failure		400	{object}	errorResponse
// @Failure		500	{object}	errorResponse
func (api *campsiteAPI) search(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	qs := r.URL.Query()
	limit, err := queryInt(qs, "limit", 20)
	if err != nil {
		api.BadRequestResponse(w, r, err)
		return
	}
	request := searchRequest{Query: qs.Get("q"), Limit: limit}

	if err := api.validate(request); err != nil {
		api.BadRequestResponse(w, r, err)
		return
	} else if !regexSearch.MatchString(request.Query) {
		api.BadRequestResponse(w, r, errors.New("validation error: query must be letters, digits or one of: _ + , . ( ) ' & -"))
		return
	}

	results, err := api.searchService.Search(request.Query, request.Limit)
	if err != nil {
		api.ServerErrorResponse(w, r, err)
		return
	}

	if err := api.writeJSON(w, http.StatusOK, searchResponse{Data: results}, nil); err != nil {
		api.ServerErrorResponse(w, r, err)
	}
}
