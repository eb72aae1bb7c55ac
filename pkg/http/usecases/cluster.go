package usecases

import (
	"sync"
	"time"

	"github.com/lintang-b-s/campsite-explorer/pkg/cache"
	"github.com/lintang-b-s/campsite-explorer/pkg/cluster"
	"github.com/lintang-b-s/campsite-explorer/pkg/datastructure"

	"go.uber.org/zap"
)

// ClusterService answers one-shot viewport queries. results are cached per (zoom, count) and
// shared by every caller, the dataset is fixed for the lifetime of the service.
type ClusterService struct {
	log      *zap.Logger
	dataset  *datastructure.Dataset
	radiusKM float64

	mu    sync.Mutex
	cache *cache.ResultCache[cluster.Result]
}

func NewClusterService(log *zap.Logger, dataset *datastructure.Dataset, radiusKM float64, cacheCapacity int) *ClusterService {
	return &ClusterService{
		log:      log,
		dataset:  dataset,
		radiusKM: radiusKM,
		cache:    cache.NewResultCache[cluster.Result](cacheCapacity),
	}
}

// Clusters. clusters and singles of the dataset at zoom whose centroid lies inside bounds.
func (s *ClusterService) Clusters(zoom int, bounds datastructure.Bounds) (cluster.Result, error) {
	if s.dataset.Len() == 0 {
		return cluster.NewResult(), nil
	}
	return s.clusterDataset(zoom).Visible(bounds), nil
}

func (s *ClusterService) clusterDataset(zoom int) cluster.Result {
	campsites := s.dataset.Campsites

	s.mu.Lock()
	defer s.mu.Unlock()
	if result, ok := s.cache.Get(zoom, len(campsites)); ok {
		return result
	}

	start := time.Now()
	result := cluster.ClusterCampsites(campsites, zoom, s.radiusKM)
	s.cache.Set(zoom, len(campsites), result)
	s.log.Debug("clustering pass",
		zap.Int("zoom", zoom),
		zap.Int("campsites", len(campsites)),
		zap.Int("clusters", len(result.Clusters)),
		zap.Int("singles", len(result.Singles)),
		zap.Duration("took", time.Since(start)))
	return result
}

func (s *ClusterService) CachedResults() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cache.Len()
}
