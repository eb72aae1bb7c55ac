//go:build wireinject

//go:generate wire
package di

import (
	"github.com/lintang-b-s/campsite-explorer/pkg/di/config"
	shortcontext "github.com/lintang-b-s/campsite-explorer/pkg/di/context"
	dataset_di "github.com/lintang-b-s/campsite-explorer/pkg/di/dataset"
	kv_di "github.com/lintang-b-s/campsite-explorer/pkg/di/kv"
	logger_di "github.com/lintang-b-s/campsite-explorer/pkg/di/logger"
	search_di "github.com/lintang-b-s/campsite-explorer/pkg/di/search"
	searchHttp "github.com/lintang-b-s/campsite-explorer/pkg/http"

	"github.com/google/wire"
)

var defaultSet = wire.NewSet(
	shortcontext.New,
	config.New,
	logger_di.New,
	kv_di.New,
	dataset_di.New,
)

var campsiteSet = wire.NewSet(
	defaultSet,
	search_di.New,
	NewClusterService,
	NewSessionStore,
	NewSearcherService,
	NewDatasetService,
	NewServices,
	NewCampsiteAPIServer,
)

func InitializeCampsiteService() (*searchHttp.Server, func(), error) {

	panic(wire.Build(campsiteSet))
}
