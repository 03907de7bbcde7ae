package utils

import (
	"bytes"
	"io"
	"net/http"
)

// BufferBody reads the whole request body and replaces r.Body with a copy
// that later stages can read from the start.
//
// If reading fails part way (for instance because a size limit was hit),
// the bytes read so far are returned together with the error, and the
// replacement body yields the same bytes followed by the same error. The
// downstream stage therefore observes exactly what it would have observed
// reading the original body.
//
// r.GetBody is set so the buffered body can be obtained again.
func BufferBody(r *http.Request) ([]byte, error) {
	if r.Body == nil || r.Body == http.NoBody {
		return nil, nil
	}

	body, err := io.ReadAll(r.Body)
	_ = r.Body.Close()

	var replay io.Reader = bytes.NewReader(body)
	if err != nil {
		replay = io.MultiReader(replay, errReader{err: err})
	}

	r.Body = io.NopCloser(replay)
	r.GetBody = func() (io.ReadCloser, error) {
		return io.NopCloser(bytes.NewReader(body)), nil
	}

	return body, err
}

type errReader struct {
	err error
}

func (r errReader) Read([]byte) (int, error) {
	return 0, r.err
}
