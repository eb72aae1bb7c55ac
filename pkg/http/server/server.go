package http_server

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"time"
)

type Config struct {
	Port    int
	Timeout time.Duration
}

// New builds the http.Server. it shuts down when ctx is cancelled.
func New(ctx context.Context, h http.Handler, config Config) *http.Server {
	if config.Timeout > 0 {
		h = http.TimeoutHandler(h, config.Timeout, `{"error":{"code":"TIMEOUT","message":"request timed out"}}`)
	}
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", config.Port),
		Handler:      h,
		BaseContext:  func(_ net.Listener) context.Context { return ctx },
		ReadTimeout:  config.Timeout,
		WriteTimeout: config.Timeout + time.Second,
		IdleTimeout:  2 * config.Timeout,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	return srv
}
