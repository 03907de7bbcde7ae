package http

import (
	"fmt"
	"net/http"
	"os"
	"unicode/utf8"

	"github.com/rs/zerolog"

	"github.com/MKhiriev/go-web-host/internal/metrics"
	"github.com/MKhiriev/go-web-host/internal/utils"
)

// Audit record field names.
const (
	auditRequestHeaders    = "RequestHeaders"
	auditRequestBody       = "RequestBody"
	auditRequestBodyBytes  = "RequestBodyBytes"
	auditRequestBodyBinary = "RequestBodyBinary"
	auditResponseHeaders   = "ResponseHeaders"
)

// withAudit logs every request and response for diagnostics without changing
// what the rest of the pipeline sees. Per request, strictly in this order:
//
//  1. the request headers are logged;
//  2. the body is read into memory and replaced with a re-readable copy;
//  3. the body is logged if it is non-empty;
//  4. the rest of the pipeline runs to completion;
//  5. the response headers are logged, unless the client went away.
//
// All audit state is request scoped. Failures while auditing are recorded
// and otherwise ignored; they never fail the request.
func (h *Handler) withAudit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h.audit(func() { h.auditRequestHeaders(r) })

		body, err := utils.BufferBody(r)
		h.audit(func() { h.auditRequestBody(r, body, err) })

		aw := &responseWriter{ResponseWriter: w}
		next.ServeHTTP(aw, r)

		if r.Context().Err() != nil {
			h.metrics.RecordSkippedResponse()
			return
		}
		h.audit(func() { h.auditResponse(r, aw) })
	})
}

func (h *Handler) auditRequestHeaders(r *http.Request) {
	h.logger.Info().
		Str("method", r.Method).
		Str("uri", r.RequestURI).
		Str("host", r.Host).
		Any(auditRequestHeaders, r.Header).
		Msg("request headers")
}

func (h *Handler) auditRequestBody(r *http.Request, body []byte, readErr error) {
	if readErr != nil {
		h.logger.Warn().
			Err(readErr).
			Str("uri", r.RequestURI).
			Int(auditRequestBodyBytes, len(body)).
			Msg("request body could not be read completely")
	}

	var event *zerolog.Event
	switch {
	case len(body) == 0:
		h.metrics.RecordAuditedRequest(metrics.BodyEmpty)
		return
	case utf8.Valid(body):
		h.metrics.RecordAuditedRequest(metrics.BodyText)
		event = h.logger.Info().Str(auditRequestBody, string(body))
	default:
		h.metrics.RecordAuditedRequest(metrics.BodyBinary)
		event = h.logger.Info().Bool(auditRequestBodyBinary, true)
	}

	event.
		Str("uri", r.RequestURI).
		Int(auditRequestBodyBytes, len(body)).
		Msg("request body")
}

func (h *Handler) auditResponse(r *http.Request, w *responseWriter) {
	status, header := w.result()

	h.metrics.RecordAuditedResponse()
	h.logger.Info().
		Str("uri", r.RequestURI).
		Int("status", status).
		Any(auditResponseHeaders, header).
		Msg("response headers")
}

// audit runs one audit step and keeps any failure inside it away from the
// request.
func (h *Handler) audit(step func()) {
	defer func() {
		if rec := recover(); rec != nil {
			h.metrics.RecordAuditFailure()
			err := fmt.Errorf("audit: %v", rec)
			if zerolog.ErrorHandler != nil {
				zerolog.ErrorHandler(err)
				return
			}
			fmt.Fprintln(os.Stderr, err)
		}
	}()
	step()
}
