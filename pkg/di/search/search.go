package search_di

import (
	"github.com/lintang-b-s/campsite-explorer/pkg/datastructure"
	"github.com/lintang-b-s/campsite-explorer/pkg/search"

	"go.uber.org/zap"
)

func New(log *zap.Logger, ds *datastructure.Dataset) (*search.NameIndex, error) {
	idx, err := search.BuildNameIndex(ds.Campsites)
	if err != nil {
		return nil, err
	}
	log.Info("campsite name index built", zap.Int("campsites", idx.Len()), zap.Int("terms", idx.Terms()))
	return idx, nil
}
