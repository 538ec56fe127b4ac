package client

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/DevendraPaulmerchants/Sprenza/client/auth/store"
	"github.com/DevendraPaulmerchants/Sprenza/client/auth/transport"
)

// Option represents option
type Option func(c *Client)

// WithStore sets the credential store, memory by default
func WithStore(store store.Store) Option {
	return func(c *Client) {
		c.store = store
	}
}

// WithHTTPTransport sets the transport performing the actual HTTP exchange
func WithHTTPTransport(transport http.RoundTripper) Option {
	return func(c *Client) {
		if transport != nil {
			c.inner = transport
		}
	}
}

// WithTimeout sets the per-request timeout, refresh and retry included
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.timeout = timeout
	}
}

// WithRefreshPath sets the refresh endpoint path
func WithRefreshPath(path string) Option {
	return func(c *Client) {
		if path != "" {
			c.refreshPath = path
		}
	}
}

func WithRefreshTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.refreshTimeout = timeout
	}
}

// WithProactiveRefresh toggles refreshing a locally expired JWT before sending
func WithProactiveRefresh(enabled bool) Option {
	return func(c *Client) {
		c.proactive = &enabled
	}
}

// WithSessionObserver registers a forced logout observer
func WithSessionObserver(observer transport.SessionObserver) Option {
	return func(c *Client) {
		if observer != nil {
			c.observers = append(c.observers, observer)
		}
	}
}

// WithRecorder sets refresh event recorder
func WithRecorder(recorder transport.Recorder) Option {
	return func(c *Client) {
		c.recorder = recorder
	}
}

// WithLogger sets logger
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}
