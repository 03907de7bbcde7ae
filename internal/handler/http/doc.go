// Package http implements the HTTP transport layer of the web host.
//
// It composes the request pipeline: the audit middleware wraps every other
// stage, followed by request tracing, access logging and panic recovery,
// and finally the routes themselves.
package http
