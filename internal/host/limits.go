// Package host turns the Application section of the configuration into
// listener limits and enforces them in front of the request pipeline.
package host

import (
	"errors"
	"mime"
	"net/http"

	"github.com/MKhiriev/go-web-host/internal/config"
	"github.com/MKhiriev/go-web-host/internal/utils"
)

// HeaderEncoding selects how response header values are put on the wire.
type HeaderEncoding int

const (
	// HeaderEncodingLatin1 is the default narrow encoding: values are
	// transcoded to ISO-8859-1 and runes outside it are replaced.
	HeaderEncodingLatin1 HeaderEncoding = iota

	// HeaderEncodingUTF8 writes values as UTF-8 unchanged.
	HeaderEncodingUTF8
)

func (e HeaderEncoding) String() string {
	switch e {
	case HeaderEncodingUTF8:
		return "utf-8"
	default:
		return "iso-8859-1"
	}
}

// ListenerLimits is the set of listener settings derived from [config.AppConfig].
// An absent body limit means the listener default (unlimited) is kept.
type ListenerLimits struct {
	ResponseHeaderEncoding HeaderEncoding
	MaxRequestBodySize     config.OptionalInt64
	MultipartBodyLimit     config.OptionalInt64
}

// NewListenerLimits derives listener limits from the application settings.
// Both body ceilings always come from the same MaxRequestBodySize value.
func NewListenerLimits(cfg config.AppConfig) ListenerLimits {
	limits := ListenerLimits{
		ResponseHeaderEncoding: HeaderEncodingLatin1,
	}

	if cfg.AllowNonAsciiCharInHeaders {
		limits.ResponseHeaderEncoding = HeaderEncodingUTF8
	}

	if cfg.MaxRequestBodySize.Valid {
		limits.MaxRequestBodySize = cfg.MaxRequestBodySize
		limits.MultipartBodyLimit = cfg.MaxRequestBodySize
	}

	return limits
}

// Apply installs the limits on srv. It must be called once, before the
// server starts accepting connections.
func (l ListenerLimits) Apply(srv *http.Server) {
	srv.Handler = l.Wrap(srv.Handler)
}

// Wrap returns next guarded by the limits.
//
// A body over the ceiling is rejected with 413 and the connection is closed,
// whether its size is declared up front or only found out by reading it.
// Bodies of unknown length are therefore read in full before next runs.
func (l ListenerLimits) Wrap(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if limit, ok := l.bodyLimit(r); ok && r.Body != nil && r.Body != http.NoBody {
			if r.ContentLength > limit {
				rejectTooLarge(w)
				return
			}

			r.Body = http.MaxBytesReader(w, r.Body, limit)
			if r.ContentLength < 0 {
				_, err := utils.BufferBody(r)
				var maxErr *http.MaxBytesError
				if errors.As(err, &maxErr) {
					rejectTooLarge(w)
					return
				}
			}
		}

		if l.ResponseHeaderEncoding == HeaderEncodingLatin1 {
			hw := newHeaderEncodingWriter(w)
			next.ServeHTTP(hw, r)
			// headers set without an explicit write are sent by net/http
			hw.flushHeader()
			return
		}

		next.ServeHTTP(w, r)
	})
}

func rejectTooLarge(w http.ResponseWriter) {
	w.Header().Set("Connection", "close")
	http.Error(w, http.StatusText(http.StatusRequestEntityTooLarge), http.StatusRequestEntityTooLarge)
}

// bodyLimit returns the ceiling that applies to r, if any.
func (l ListenerLimits) bodyLimit(r *http.Request) (int64, bool) {
	limit, ok := l.MaxRequestBodySize.Value, l.MaxRequestBodySize.Valid

	if isMultipart(r) && l.MultipartBodyLimit.Valid {
		if !ok || l.MultipartBodyLimit.Value < limit {
			limit, ok = l.MultipartBodyLimit.Value, true
		}
	}

	return limit, ok
}

func isMultipart(r *http.Request) bool {
	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	return err == nil && mediaType == "multipart/form-data"
}
