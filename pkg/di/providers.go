package di

import (
	"context"

	"github.com/lintang-b-s/campsite-explorer/pkg/cache"
	"github.com/lintang-b-s/campsite-explorer/pkg/datastructure"
	"github.com/lintang-b-s/campsite-explorer/pkg/explorer"
	searchHttp "github.com/lintang-b-s/campsite-explorer/pkg/http"
	http_router "github.com/lintang-b-s/campsite-explorer/pkg/http/http-router"
	"github.com/lintang-b-s/campsite-explorer/pkg/http/usecases"
	"github.com/lintang-b-s/campsite-explorer/pkg/kvdb"
	"github.com/lintang-b-s/campsite-explorer/pkg/search"

	"github.com/spf13/viper"
	"go.uber.org/zap"
)

func NewClusterService(log *zap.Logger, ds *datastructure.Dataset) *usecases.ClusterService {
	viper.SetDefault("CLUSTER_RADIUS_KM", 0)
	viper.SetDefault("CLUSTER_CACHE_SIZE", cache.DEFAULT_CAPACITY)

	return usecases.NewClusterService(log, ds,
		viper.GetFloat64("CLUSTER_RADIUS_KM"), viper.GetInt("CLUSTER_CACHE_SIZE"))
}

func NewSessionStore(log *zap.Logger, ds *datastructure.Dataset) *usecases.SessionStore {
	viper.SetDefault("THROTTLE_WINDOW", explorer.DEFAULT_THROTTLE_WINDOW)
	viper.SetDefault("INITIAL_ZOOM", explorer.DEFAULT_INITIAL_ZOOM)
	viper.SetDefault("SESSION_TTL", usecases.DEFAULT_SESSION_TTL)

	opts := explorer.DefaultOptions()
	opts.RadiusKM = viper.GetFloat64("CLUSTER_RADIUS_KM")
	opts.CacheCapacity = viper.GetInt("CLUSTER_CACHE_SIZE")
	opts.ThrottleWindow = viper.GetDuration("THROTTLE_WINDOW")
	opts.InitialZoom = viper.GetInt("INITIAL_ZOOM")

	return usecases.NewSessionStore(log, ds, opts, viper.GetDuration("SESSION_TTL"))
}

func NewSearcherService(log *zap.Logger, idx *search.NameIndex) *usecases.SearcherService {
	return usecases.New(log, idx)
}

func NewDatasetService(log *zap.Logger, db *kvdb.KVDB, ds *datastructure.Dataset) *usecases.DatasetService {
	return usecases.NewDatasetService(log, db, ds)
}

func NewServices(clusters *usecases.ClusterService, sessions *usecases.SessionStore,
	searcher *usecases.SearcherService, datasets *usecases.DatasetService) http_router.Services {
	return http_router.Services{
		Cluster: clusters,
		Session: sessions,
		Search:  searcher,
		Dataset: datasets,
	}
}

func NewCampsiteAPIServer(ctx context.Context, log *zap.Logger,
	services http_router.Services, sessions *usecases.SessionStore) (*searchHttp.Server, error) {
	api := searchHttp.NewServer(log)

	apiService, err := api.Use(
		ctx, log, services, sessions,
	)
	if err != nil {
		return nil, err
	}

	return apiService, nil
}
