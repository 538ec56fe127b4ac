package client

import (
	"fmt"

	"github.com/DevendraPaulmerchants/Sprenza/client/auth/transport"
)

var (
	// ErrSessionExpired is returned when no valid credential could be
	// obtained; the store has been cleared by then.
	ErrSessionExpired = transport.ErrSessionExpired
	// ErrUnauthorizedAfterRefresh is returned when the retried request was
	// rejected again.
	ErrUnauthorizedAfterRefresh = transport.ErrUnauthorizedAfterRefresh
)

// TransportError is a network failure (connectivity, timeout, cancellation).
// It is never retried.
type TransportError struct {
	Method string
	URL    string
	Err    error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%v %v: %v", e.Method, e.URL, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// APIError is a non-2xx response, 401 excluded.
type APIError struct {
	StatusCode int
	Message    string
	Body       []byte
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %v", e.StatusCode, e.Message)
}
