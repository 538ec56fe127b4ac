package transport

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/DevendraPaulmerchants/Sprenza/client/auth/store"
)

type Option func(*RoundTripper)

// WithStore sets store
func WithStore(store store.Store) Option {
	return func(t *RoundTripper) {
		t.store = store
	}
}

// WithTransport sets the inner transport used for both API and refresh calls
func WithTransport(transport http.RoundTripper) Option {
	return func(t *RoundTripper) {
		if transport != nil {
			t.transport = transport
		}
	}
}

// WithRefreshURL sets the absolute refresh endpoint URL; its host is the only
// host that receives the bearer token
func WithRefreshURL(URL string) Option {
	return func(t *RoundTripper) {
		t.refreshURL = URL
	}
}

// WithRefreshTimeout bounds the refresh call so a hung backend cannot hold the gate
func WithRefreshTimeout(timeout time.Duration) Option {
	return func(t *RoundTripper) {
		if timeout > 0 {
			t.refreshTimeout = timeout
		}
	}
}

// WithProactiveRefresh toggles refreshing before sending a locally expired JWT
func WithProactiveRefresh(enabled bool) Option {
	return func(t *RoundTripper) {
		t.proactive = enabled
	}
}

// WithExpiryLeeway sets how early a JWT is considered expired
func WithExpiryLeeway(leeway time.Duration) Option {
	return func(t *RoundTripper) {
		t.leeway = leeway
	}
}

// WithSessionObserver registers an observer for forced logout
func WithSessionObserver(observer SessionObserver) Option {
	return func(t *RoundTripper) {
		if observer != nil {
			t.observers = append(t.observers, observer)
		}
	}
}

// WithRecorder sets refresh event recorder
func WithRecorder(recorder Recorder) Option {
	return func(t *RoundTripper) {
		if recorder != nil {
			t.recorder = recorder
		}
	}
}

// WithLogger sets logger
func WithLogger(logger *slog.Logger) Option {
	return func(t *RoundTripper) {
		if logger != nil {
			t.logger = logger
		}
	}
}
