package host

import (
	"net/http"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
)

// headerEncodingWriter transcodes non-ASCII response header values to
// ISO-8859-1 right before the header block is sent.
type headerEncodingWriter struct {
	http.ResponseWriter

	encoder     *encoding.Encoder
	wroteHeader bool
}

func newHeaderEncodingWriter(w http.ResponseWriter) *headerEncodingWriter {
	return &headerEncodingWriter{
		ResponseWriter: w,
		encoder:        encoding.ReplaceUnsupported(charmap.ISO8859_1.NewEncoder()),
	}
}

func (w *headerEncodingWriter) WriteHeader(statusCode int) {
	if !w.wroteHeader {
		w.wroteHeader = true
		w.encodeHeader()
	}
	w.ResponseWriter.WriteHeader(statusCode)
}

func (w *headerEncodingWriter) Write(b []byte) (int, error) {
	if !w.wroteHeader {
		w.WriteHeader(http.StatusOK)
	}
	return w.ResponseWriter.Write(b)
}

// flushHeader encodes the header block if the handler returned without
// writing anything.
func (w *headerEncodingWriter) flushHeader() {
	if !w.wroteHeader {
		w.wroteHeader = true
		w.encodeHeader()
	}
}

// Unwrap lets http.ResponseController reach the underlying writer.
func (w *headerEncodingWriter) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}

func (w *headerEncodingWriter) encodeHeader() {
	for _, values := range w.Header() {
		for i, v := range values {
			if isASCII(v) {
				continue
			}
			values[i] = w.encode(v)
		}
	}
}

func (w *headerEncodingWriter) encode(v string) string {
	if utf8.ValidString(v) {
		if encoded, err := w.encoder.String(v); err == nil {
			return encoded
		}
	}

	// not transcodable: keep the ASCII part only
	return strings.Map(func(r rune) rune {
		if r >= utf8.RuneSelf {
			return '?'
		}
		return r
	}, v)
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= utf8.RuneSelf {
			return false
		}
	}
	return true
}
