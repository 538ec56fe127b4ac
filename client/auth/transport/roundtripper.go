package transport

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/DevendraPaulmerchants/Sprenza/client/auth/store"
)

const (
	defaultRefreshTimeout = 30 * time.Second
	defaultExpiryLeeway   = 5 * time.Second
)

// RoundTripper attaches the stored bearer token to every request and recovers
// from 401 Unauthorized by refreshing the credential once per expiry episode.
//
// Concurrent requests that fail while a refresh is in flight wait in a FIFO
// queue and are released with the new token (or ErrSessionExpired) when it
// settles. Each request is retried at most once.
type RoundTripper struct {
	store          store.Store
	transport      http.RoundTripper
	refreshURL     string
	host           string
	refreshTimeout time.Duration
	leeway         time.Duration
	proactive      bool
	observers      []SessionObserver
	recorder       Recorder
	logger         *slog.Logger

	mux        sync.Mutex
	refreshing bool
	queue      []chan refreshResult
	notified   bool
}

type refreshResult struct {
	token string
	err   error
}

// New creates a RoundTripper; WithRefreshURL is required.
func New(options ...Option) (*RoundTripper, error) {
	ret := &RoundTripper{
		transport:      http.DefaultTransport,
		store:          store.NewMemoryStore(),
		refreshTimeout: defaultRefreshTimeout,
		leeway:         defaultExpiryLeeway,
		proactive:      true,
		recorder:       nopRecorder{},
		logger:         slog.Default(),
	}
	for _, opt := range options {
		opt(ret)
	}
	if ret.refreshURL == "" {
		return nil, fmt.Errorf("refresh URL was empty")
	}
	refreshURL, err := url.Parse(ret.refreshURL)
	if err != nil || refreshURL.Host == "" {
		return nil, fmt.Errorf("invalid refresh URL %q", ret.refreshURL)
	}
	ret.host = hostOf(refreshURL)
	ret.logger = ret.logger.With(slog.String("component", "auth-transport"))
	return ret, nil
}

func (r *RoundTripper) Store() store.Store {
	return r.store
}

// Transport returns the unauthenticated transport requests are delegated to.
func (r *RoundTripper) Transport() http.RoundTripper {
	return r.transport
}

func (r *RoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	ctx := req.Context()
	if isAnonymous(ctx) {
		return r.transport.RoundTrip(req)
	}
	// Credentials belong to the API host only; redirects and absolute URLs
	// elsewhere go out bare.
	if hostOf(req.URL) != r.host {
		r.logger.Debug("foreign host, sending without credentials",
			slog.String("host", req.URL.Host))
		return r.transport.RoundTrip(req)
	}
	getBody, err := replayable(req)
	if err != nil {
		return nil, err
	}
	token, err := r.accessToken(ctx)
	if err != nil {
		return nil, err
	}

	// 1) Skip a request that is bound to fail with a locally expired JWT.
	if r.proactive && r.expired(token) {
		r.logger.Debug("access token expired locally, refreshing before send",
			slog.String("path", req.URL.Path))
		return r.retry(req, getBody, token)
	}

	// 2) Send with the current credential; anything but 401 goes back untouched.
	resp, err := r.send(req, getBody, token)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusUnauthorized {
		return resp, nil
	}
	discard(resp)
	r.logger.Info("unauthorized response, refreshing token",
		slog.String("method", req.Method),
		slog.String("path", req.URL.Path))
	return r.retry(req, getBody, token)
}

// retry obtains a fresh token and replays req exactly once.
func (r *RoundTripper) retry(req *http.Request, getBody func() (io.ReadCloser, error), staleToken string) (*http.Response, error) {
	token, err := r.awaitToken(req.Context(), staleToken)
	if err != nil {
		return nil, err
	}
	resp, err := r.send(req, getBody, token)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode == http.StatusUnauthorized {
		discard(resp)
		r.logger.Warn("request rejected after token refresh",
			slog.String("method", req.Method),
			slog.String("path", req.URL.Path))
		return nil, ErrUnauthorizedAfterRefresh
	}
	return resp, nil
}

// awaitToken returns a token newer than staleToken. The caller either joins
// the in-flight refresh or becomes the one that performs it.
func (r *RoundTripper) awaitToken(ctx context.Context, staleToken string) (string, error) {
	r.mux.Lock()
	if r.refreshing {
		ch := make(chan refreshResult, 1)
		r.queue = append(r.queue, ch)
		r.mux.Unlock()
		r.logger.Debug("token refresh in progress, request queued")
		select {
		case result := <-ch:
			return result.token, result.err
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	// A refresh that settled after this request was sent already produced a
	// newer token.
	current, err := r.accessToken(ctx)
	if err == nil && current != "" && current != staleToken && !r.expired(current) {
		r.mux.Unlock()
		return current, nil
	}
	r.refreshing = true
	r.mux.Unlock()

	token, err := r.refresh(ctx)

	r.mux.Lock()
	queue := r.queue
	r.queue = nil
	r.refreshing = false
	for _, ch := range queue {
		ch <- refreshResult{token: token, err: err}
	}
	r.mux.Unlock()
	return token, err
}

// send clones req with a fresh body, sets the bearer header and delegates to the inner transport.
func (r *RoundTripper) send(req *http.Request, getBody func() (io.ReadCloser, error), token string) (*http.Response, error) {
	out, err := clone(req, getBody)
	if err != nil {
		return nil, err
	}
	if token != "" {
		out.Header.Set("Authorization", "Bearer "+token)
	}
	return r.transport.RoundTrip(out)
}

func (r *RoundTripper) accessToken(ctx context.Context) (string, error) {
	token, _, err := r.store.Get(ctx, store.KeyAccessToken)
	if err != nil {
		return "", fmt.Errorf("failed to read access token: %w", err)
	}
	return token, nil
}

func (r *RoundTripper) expired(token string) bool {
	expiry, ok := store.TokenExpiry(token)
	if !ok {
		return false
	}
	return time.Now().After(expiry.Add(-r.leeway))
}

func discard(resp *http.Response) {
	if resp.Body == nil {
		return
	}
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 64<<10))
	_ = resp.Body.Close()
}
