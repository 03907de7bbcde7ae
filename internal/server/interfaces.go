package server

import "context"

// Server defines the lifecycle contract of the host's listener.
type Server interface {
	// RunServer binds the listener and serves requests until ctx is
	// cancelled or a stop signal arrives, then shuts down gracefully.
	// It returns an error if the listener cannot bind or fails while serving.
	RunServer(ctx context.Context) error

	// Shutdown gracefully stops the server and frees associated resources.
	Shutdown(ctx context.Context) error
}
