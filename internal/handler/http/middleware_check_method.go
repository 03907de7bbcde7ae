// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"

	"github.com/MKhiriev/go-web-host/internal/logger"
)

// checkHTTPMethod is registered as the router's MethodNotAllowed handler.
//
// Chi answers 405 Method Not Allowed when a path matches a registered route
// but the method does not. The host answers 404 Not Found instead, so callers
// using an unsupported method cannot tell the route exists.
func (h *Handler) checkHTTPMethod(w http.ResponseWriter, r *http.Request) {
	logger.FromRequest(r).Debug().
		Str("method", r.Method).
		Str("path", r.URL.Path).
		Msg("method is not registered for route")

	http.NotFound(w, r)
}
