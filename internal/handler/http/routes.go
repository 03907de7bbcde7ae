package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Init builds the request pipeline. It is called once at startup, before the
// listener accepts traffic.
func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(h.pipeline()...)

	router.Route("/api", func(r chi.Router) {
		r.Get("/version/", h.getServerVersion)
		r.Get("/version/build", h.getBuildInfo)
		r.Get("/health", h.getHealth)
	})
	router.Method(http.MethodGet, "/metrics", h.metrics.Handler())

	router.MethodNotAllowed(h.checkHTTPMethod)

	return router
}

// pipeline returns the stages every request goes through, outermost first.
// The audit stage must stay first so that it observes the request before,
// and the response after, everything else.
func (h *Handler) pipeline() []func(http.Handler) http.Handler {
	return []func(http.Handler) http.Handler{
		h.withAudit,
		h.withTraceID,
		h.withLogging,
		middleware.Recoverer,
	}
}
