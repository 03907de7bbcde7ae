package server

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	stdlog "log"
	"net"
	"net/http"

	"github.com/MKhiriev/go-web-host/internal/config"
	"github.com/MKhiriev/go-web-host/internal/host"
	"github.com/MKhiriev/go-web-host/internal/logger"
)

type httpServer struct {
	server *http.Server

	logger *logger.Logger
}

func newHTTPServer(handler http.Handler, limits host.ListenerLimits, cfg config.Server, logger *logger.Logger) (*httpServer, error) {
	cert, err := loadCertificate(cfg)
	if err != nil {
		return nil, err
	}

	srv := &http.Server{
		Addr:              cfg.Address.String(),
		Handler:           handler,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
		TLSConfig: &tls.Config{
			Certificates: []tls.Certificate{cert},
			MinVersion:   tls.VersionTLS12,
		},
		ErrorLog: stdlog.New(logger.With().Str("component", "http").Logger(), "", 0),
	}
	limits.Apply(srv)

	return &httpServer{
		server: srv,
		logger: logger,
	}, nil
}

func loadCertificate(cfg config.Server) (tls.Certificate, error) {
	if cfg.CertFile == "" || cfg.KeyFile == "" {
		return tls.Certificate{}, errNoCertificate
	}

	cert, err := tls.LoadX509KeyPair(cfg.CertFile, cfg.KeyFile)
	if err != nil {
		return tls.Certificate{}, fmt.Errorf("%w: %w", errNoCertificate, err)
	}

	return cert, nil
}

func (h *httpServer) listen() (net.Listener, error) {
	ln, err := net.Listen("tcp", h.server.Addr)
	if err != nil {
		return nil, fmt.Errorf("error binding %s: %w", h.server.Addr, err)
	}
	return ln, nil
}

// serve blocks until the server is shut down. A clean shutdown returns nil.
func (h *httpServer) serve(ln net.Listener) error {
	h.logger.Info().Str("address", ln.Addr().String()).Msg("HTTPS server listening")

	if err := h.server.ServeTLS(ln, "", ""); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("HTTPS server: %w", err)
	}
	return nil
}

func (h *httpServer) Shutdown(ctx context.Context) error {
	h.logger.Info().Msg("HTTPS server Shutdown")
	if err := h.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("HTTPS server Shutdown: %w", err)
	}
	return nil
}
