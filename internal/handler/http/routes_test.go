package http

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-web-host/internal/config"
	"github.com/MKhiriev/go-web-host/internal/host"
)

func TestInit_ReturnsRouter(t *testing.T) {
	require.NotNil(t, newTestHandler().Init())
}

func TestInit_Routes(t *testing.T) {
	router := newTestHandler().Init()

	tests := []struct {
		name       string
		method     string
		path       string
		wantStatus int
	}{
		{name: "version", method: http.MethodGet, path: "/api/version/", wantStatus: http.StatusOK},
		{name: "build info", method: http.MethodGet, path: "/api/version/build", wantStatus: http.StatusOK},
		{name: "health", method: http.MethodGet, path: "/api/health", wantStatus: http.StatusOK},
		{name: "metrics", method: http.MethodGet, path: "/metrics", wantStatus: http.StatusOK},
		{name: "unknown route", method: http.MethodGet, path: "/api/nonexistent", wantStatus: http.StatusNotFound},
		{name: "wrong method hidden as 404", method: http.MethodPost, path: "/api/version/", wantStatus: http.StatusNotFound},
		{name: "wrong method on metrics", method: http.MethodDelete, path: "/metrics", wantStatus: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(tt.method, tt.path, nil))

			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

// TestInit_AuditWrapsPipeline verifies that the audit stage is the outermost
// stage: its request record comes before anything else and its response
// record comes last and sees headers set by inner stages.
func TestInit_AuditWrapsPipeline(t *testing.T) {
	h, sink := newLoggedHandler()
	router := h.Init()

	req := httptest.NewRequest(http.MethodGet, "/api/health", strings.NewReader("ping"))
	req.Header.Set(traceIDHeader, "trace-1")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	entries := sink.entries(t)
	require.Len(t, entries, 4)

	assert.Equal(t, "request headers", entries[0]["message"])
	assert.Equal(t, "request body", entries[1]["message"])
	assert.Equal(t, "trace-1", entries[2]["trace_id"], "access log runs inside the trace stage")
	assert.Equal(t, "response headers", entries[3]["message"])

	headers, ok := entries[3][auditResponseHeaders].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, []any{"trace-1"}, headers[traceIDHeader])
	assert.NotContains(t, entries[0], "trace_id", "audit runs before the trace stage")
}

func TestInit_MetricsExposeTraffic(t *testing.T) {
	router := newTestHandler().Init()

	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/health", nil))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `webhost_http_requests_total{method="GET",status_code="200"}`)
	assert.Contains(t, body, `webhost_audit_requests_total{body="empty"}`)
}

func TestInit_HealthResponse(t *testing.T) {
	router := newTestHandler().Init()

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/health", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var got healthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "ok", got.Status)
	assert.Equal(t, "test-version", got.Version)
	assert.Equal(t, 3, got.Config.Keys)
	assert.Equal(t, "info", got.Config.LogLevel)
}

// TestInit_BehindListenerLimits runs the whole pipeline behind the listener
// limits. /api/health never reads the body, so only the limits can reject it.
func TestInit_BehindListenerLimits(t *testing.T) {
	const limit = 5
	limits := host.NewListenerLimits(config.AppConfig{MaxRequestBodySize: config.Some(limit)})
	srv := httptest.NewServer(limits.Wrap(newTestHandler().Init()))
	defer srv.Close()

	tests := []struct {
		name       string
		size       int
		chunked    bool
		wantStatus int
	}{
		{name: "chunked at the limit", size: limit, chunked: true, wantStatus: http.StatusOK},
		{name: "chunked over the limit", size: limit + 1, chunked: true, wantStatus: http.StatusRequestEntityTooLarge},
		{name: "sized at the limit", size: limit, wantStatus: http.StatusOK},
		{name: "sized over the limit", size: limit + 1, wantStatus: http.StatusRequestEntityTooLarge},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, err := http.NewRequest(http.MethodGet, srv.URL+"/api/health", strings.NewReader(strings.Repeat("x", tt.size)))
			require.NoError(t, err)
			if tt.chunked {
				req.Body = io.NopCloser(req.Body)
				req.ContentLength = -1
			}

			resp, err := http.DefaultClient.Do(req)
			require.NoError(t, err)
			defer resp.Body.Close()

			assert.Equal(t, tt.wantStatus, resp.StatusCode)
		})
	}
}
