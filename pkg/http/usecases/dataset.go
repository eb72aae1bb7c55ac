package usecases

import (
	"errors"

	"github.com/lintang-b-s/campsite-explorer/pkg/datastructure"
	"github.com/lintang-b-s/campsite-explorer/pkg/geo"
	"github.com/lintang-b-s/campsite-explorer/pkg/kvdb"

	"go.uber.org/zap"
)

type DatasetService struct {
	log     *zap.Logger
	store   MetaStore
	dataset *datastructure.Dataset
}

func NewDatasetService(log *zap.Logger, store MetaStore, dataset *datastructure.Dataset) *DatasetService {
	return &DatasetService{
		log:     log,
		store:   store,
		dataset: dataset,
	}
}

// Meta returns the stored import metadata, or a summary of the loaded dataset when nothing was stored.
func (s *DatasetService) Meta() (datastructure.DatasetMeta, error) {
	meta, err := s.store.GetMeta()
	if err == nil {
		return meta, nil
	}
	if !errors.Is(err, kvdb.ErrorsKeyNotExists) {
		return datastructure.DatasetMeta{}, err
	}

	if s.dataset == nil {
		return datastructure.DatasetMeta{}, nil
	}
	return datastructure.DatasetMeta{
		Name:       s.dataset.Name,
		Count:      s.dataset.Len(),
		Bounds:     geo.CampsitesBoundingBox(s.dataset.Campsites),
		ImportedAt: s.dataset.LoadedAt,
	}, nil
}
