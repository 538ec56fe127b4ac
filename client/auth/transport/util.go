package transport

import (
	"bytes"
	"io"
	"net/http"
	"net/url"
	"strings"
)

// replayable returns a body factory so r can be sent more than once. r.Body is
// consumed at most once and always closed; r itself is left untouched.
func replayable(r *http.Request) (func() (io.ReadCloser, error), error) {
	if r.Body == nil || r.Body == http.NoBody {
		return nil, nil
	}
	if r.GetBody != nil {
		_ = r.Body.Close()
		return r.GetBody, nil
	}
	buf, err := io.ReadAll(r.Body)
	_ = r.Body.Close()
	if err != nil {
		return nil, err
	}
	return func() (io.ReadCloser, error) {
		return io.NopCloser(bytes.NewReader(buf)), nil
	}, nil
}

// clone copies r with a fresh body opened through getBody.
func clone(r *http.Request, getBody func() (io.ReadCloser, error)) (*http.Request, error) {
	cloned := r.Clone(r.Context())
	if getBody == nil {
		return cloned, nil
	}
	body, err := getBody()
	if err != nil {
		return nil, err
	}
	cloned.Body = body
	cloned.GetBody = getBody
	return cloned, nil
}

func hostOf(URL *url.URL) string {
	return strings.ToLower(URL.Host)
}
