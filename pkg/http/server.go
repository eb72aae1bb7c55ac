package http

import (
	"context"
	"time"

	http_router "github.com/lintang-b-s/campsite-explorer/pkg/http/http-router"
	http_server "github.com/lintang-b-s/campsite-explorer/pkg/http/server"
	"github.com/lintang-b-s/campsite-explorer/pkg/http/usecases"

	"github.com/spf13/viper"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

type Server struct {
	Log *zap.Logger
	g   *errgroup.Group
}

func NewServer(log *zap.Logger) *Server {
	return &Server{Log: log}
}

// Use starts the API and the idle session sweeper. Wait blocks until both stop.
func (s *Server) Use(
	ctx context.Context,
	log *zap.Logger,

	services http_router.Services,
	sessions *usecases.SessionStore,

) (*Server, error) {
	viper.SetDefault("API_PORT", 6060)

	viper.SetDefault("API_TIMEOUT", "30s")

	config := http_server.Config{
		Port:    viper.GetInt("API_PORT"),
		Timeout: viper.GetDuration("API_TIMEOUT"),
	}

	server := http_router.NewAPI(log)

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return server.Run(
			gCtx, config, services,
		)
	})

	g.Go(func() error {
		return sessions.Run(gCtx)
	})

	s.g = g
	return s, nil
}

func (s *Server) Wait() error {
	if s.g == nil {
		return nil
	}
	start := time.Now()
	err := s.g.Wait()
	s.Log.Info("API stopped", zap.Duration("uptime", time.Since(start)))
	return err
}
