package client

import "net/http"

// Request describes one logical API call.
type Request struct {
	Method      string
	Path        string
	Header      http.Header
	Body        []byte
	ContentType string
	// Anonymous requests carry no bearer token and bypass refresh.
	Anonymous bool
}

// RequestOption customises a Request
type RequestOption func(r *Request)

// NewRequest creates a request
func NewRequest(method, path string, options ...RequestOption) *Request {
	ret := &Request{Method: method, Path: path, Header: http.Header{}}
	for _, opt := range options {
		opt(ret)
	}
	return ret
}

// WithHeader adds a request header
func WithHeader(key, value string) RequestOption {
	return func(r *Request) {
		r.Header.Add(key, value)
	}
}

// WithoutAuth sends the request without credentials, used by the login endpoints
func WithoutAuth() RequestOption {
	return func(r *Request) {
		r.Anonymous = true
	}
}
