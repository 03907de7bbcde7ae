package server

import (
	"context"
	"net"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/MKhiriev/go-web-host/internal/config"
	"github.com/MKhiriev/go-web-host/internal/host"
	"github.com/MKhiriev/go-web-host/internal/logger"
)

type server struct {
	httpServer      *httpServer
	shutdownTimeout time.Duration

	logger *logger.Logger
}

// NewServer prepares the listener for handler. The limits are applied here,
// before anything binds.
func NewServer(handler http.Handler, limits host.ListenerLimits, cfg config.Server, logger *logger.Logger) (Server, error) {
	logger.Info().Msg("creating new server...")
	if handler == nil {
		return nil, errNoHandler
	}

	httpServer, err := newHTTPServer(handler, limits, cfg, logger)
	if err != nil {
		return nil, err
	}

	logger.Info().
		Str("header_encoding", limits.ResponseHeaderEncoding.String()).
		Any("max_request_body_size", limits.MaxRequestBodySize).
		Msg("listener limits applied")

	return &server{
		httpServer:      httpServer,
		shutdownTimeout: cfg.ShutdownTimeout,
		logger:          logger,
	}, nil
}

func (s *server) RunServer(ctx context.Context) error {
	ln, err := s.httpServer.listen()
	if err != nil {
		return err
	}

	return s.run(ctx, ln)
}

func (s *server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

func (s *server) run(ctx context.Context, ln net.Listener) error {
	ctx, stop := signal.NotifyContext(
		ctx,
		syscall.SIGTERM,
		syscall.SIGINT,
		syscall.SIGQUIT,
	)
	defer stop()

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- s.httpServer.serve(ln)
	}()

	select {
	case err := <-serveErr:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
	defer cancel()

	if err := s.Shutdown(shutdownCtx); err != nil {
		s.logger.Error().Err(err).Msg("server did not shut down gracefully")
		return err
	}

	if err := <-serveErr; err != nil {
		return err
	}

	s.logger.Info().Msg("server Shutdown gracefully")
	return nil
}
