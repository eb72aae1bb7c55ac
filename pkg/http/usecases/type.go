package usecases

import (
	"errors"

	"github.com/lintang-b-s/campsite-explorer/pkg/datastructure"
)

var (
	ErrSessionNotFound = errors.New("map session not found")
	ErrClusterNotFound = errors.New("cluster not found in the current view")
)

type CampsiteSearcher interface {
	Search(query string, limit int) ([]datastructure.Campsite, error)
}

type MetaStore interface {
	GetMeta() (datastructure.DatasetMeta, error)
}
