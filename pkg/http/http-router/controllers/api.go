package controllers

import (
	helper "github.com/lintang-b-s/campsite-explorer/pkg/http/http-router/router-helper"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	enTranslations "github.com/go-playground/validator/v10/translations/en"
	"go.uber.org/zap"
)

type campsiteAPI struct {
	clusterService ClusterService
	sessionService SessionService
	searchService  SearchService
	datasetService DatasetService
	log            *zap.Logger

	validator *validator.Validate
	trans     ut.Translator
}

func New(clusterService ClusterService, sessionService SessionService, searchService SearchService,
	datasetService DatasetService, log *zap.Logger) *campsiteAPI {
	validate := validator.New()
	english := en.New()
	uni := ut.New(english, english)
	trans, _ := uni.GetTranslator("en")
	_ = enTranslations.RegisterDefaultTranslations(validate, trans)

	return &campsiteAPI{
		clusterService: clusterService,
		sessionService: sessionService,
		searchService:  searchService,
		datasetService: datasetService,
		log:            log,
		validator:      validate,
		trans:          trans,
	}
}

func (api *campsiteAPI) Routes(group *helper.RouteGroup) {
	group.GET("/clusters", api.clusters)

	sessions := group.Group("/sessions")
	sessions.POST("", api.createSession)
	sessions.PUT("/:id/view", api.updateView)
	sessions.GET("/:id/markers", api.markers)
	sessions.POST("/:id/clusters/:index/zoom", api.zoomToCluster)
	sessions.POST("/:id/refresh", api.refresh)
	sessions.DELETE("/:id", api.deleteSession)

	group.GET("/campsites/search", api.search)
	group.GET("/dataset", api.dataset)
}
