package usecases

import (
	"github.com/lintang-b-s/campsite-explorer/pkg/datastructure"

	"go.uber.org/zap"
)

type SearcherService struct {
	log      *zap.Logger
	searcher CampsiteSearcher
}

func New(log *zap.Logger, searcher CampsiteSearcher) *SearcherService {
	return &SearcherService{
		log:      log,
		searcher: searcher,
	}
}

func (s *SearcherService) Search(query string, limit int) ([]datastructure.Campsite, error) {
	campsites, err := s.searcher.Search(query, limit)
	if err != nil {
		s.log.Error("campsite search failed", zap.String("query", query), zap.Error(err))
		return nil, err
	}
	return campsites, nil
}
