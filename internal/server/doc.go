// Package server runs the web host's HTTPS listener.
//
// It applies the listener limits before the listener binds, serves TLS on
// the configured address and shuts down gracefully on SIGTERM, SIGINT or
// SIGQUIT.
package server
