package controllers

import (
	"github.com/lintang-b-s/campsite-explorer/pkg/cluster"
	"github.com/lintang-b-s/campsite-explorer/pkg/datastructure"
	"github.com/lintang-b-s/campsite-explorer/pkg/explorer"
	"github.com/lintang-b-s/campsite-explorer/pkg/http/usecases"
)

type ClusterService interface {
	Clusters(zoom int, bounds datastructure.Bounds) (cluster.Result, error)
}

type SessionService interface {
	CreateSession(view *explorer.ViewState) (string, explorer.Snapshot, error)
	UpdateView(id string, view explorer.ViewState) (explorer.Snapshot, bool, error)
	Markers(id string) (explorer.Snapshot, error)
	ZoomToCluster(id string, index int) (usecases.FitInstruction, error)
	Refresh(id string) (explorer.Snapshot, error)
	DeleteSession(id string) error
}

type SearchService interface {
	Search(query string, limit int) ([]datastructure.Campsite, error)
}

type DatasetService interface {
	Meta() (datastructure.DatasetMeta, error)
}
