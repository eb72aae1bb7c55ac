package http_router

import (
	"context"
	"fmt"
	"net/http"

	"github.com/lintang-b-s/campsite-explorer/pkg/http/http-router/controllers"
	router_helper "github.com/lintang-b-s/campsite-explorer/pkg/http/http-router/router-helper"
	http_server "github.com/lintang-b-s/campsite-explorer/pkg/http/server"

	"github.com/julienschmidt/httprouter"
	"github.com/justinas/alice"
	"github.com/rs/cors"
	"go.uber.org/zap"
)

type API struct {
	log *zap.Logger
}

func NewAPI(log *zap.Logger) *API {
	return &API{log: log}
}

// Services groups what the routes are served from.
type Services struct {
	Cluster controllers.ClusterService
	Session controllers.SessionService
	Search  controllers.SearchService
	Dataset controllers.DatasetService
}

// Handler builds the router wrapped in the middleware chain.
func (api *API) Handler(services Services) http.Handler {
	router := httprouter.New()

	corsHandler := cors.New(cors.Options{ //nolint:gocritic // ignore
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link", "Location"},
		AllowCredentials: true,
		MaxAge:           300, //nolint:mnd // ignore
	})

	group := router_helper.NewRouteGroup(router, "/api")

	campsiteRoutes := controllers.New(services.Cluster, services.Session, services.Search, services.Dataset, api.log)
	campsiteRoutes.Routes(group)

	return alice.New(corsHandler.Handler, EnforceJSONHandler, api.recoverPanic,
		RealIP, Heartbeat("healthz"), Logger(api.log), Labels).Then(router)
}

func (api *API) Run(
	ctx context.Context,
	config http_server.Config,
	services Services,
) error {
	api.log.Info("Run httprouter API")

	srv := http_server.New(ctx, api.Handler(services), config)
	api.log.Info(fmt.Sprintf("API run on port %d", config.Port))

	err := srv.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		return err
	}

	return nil
}
