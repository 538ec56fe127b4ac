package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/DevendraPaulmerchants/Sprenza/client/auth/store"
	"github.com/DevendraPaulmerchants/Sprenza/client/auth/transport"
	"golang.org/x/oauth2"
)

const (
	DefaultRefreshPath = "/auth/refresh-token"
	defaultTimeout     = 30 * time.Second
)

// Client issues requests against the attendance API with the stored bearer
// credential. All requests made through one Client share a single refresh
// gate, so uploads and JSON calls failing together cause one refresh.
type Client struct {
	baseURL        string
	refreshPath    string
	timeout        time.Duration
	refreshTimeout time.Duration
	proactive      *bool
	store          store.Store
	inner          http.RoundTripper
	observers      []transport.SessionObserver
	recorder       transport.Recorder
	logger         *slog.Logger

	auth *transport.RoundTripper
	http *http.Client
}

// New creates a client for baseURL.
func New(baseURL string, options ...Option) (*Client, error) {
	if _, err := url.ParseRequestURI(baseURL); err != nil {
		return nil, fmt.Errorf("invalid base URL %q: %w", baseURL, err)
	}
	ret := &Client{
		baseURL:     strings.TrimRight(baseURL, "/"),
		refreshPath: DefaultRefreshPath,
		timeout:     defaultTimeout,
		inner:       http.DefaultTransport,
		logger:      slog.Default(),
	}
	for _, opt := range options {
		opt(ret)
	}
	if ret.store == nil {
		ret.store = store.NewMemoryStore()
	}
	transportOptions := []transport.Option{
		transport.WithStore(ret.store),
		transport.WithTransport(ret.inner),
		transport.WithRefreshURL(ret.URL(ret.refreshPath)),
		transport.WithRefreshTimeout(ret.refreshTimeout),
		transport.WithRecorder(ret.recorder),
		transport.WithLogger(ret.logger),
	}
	if ret.proactive != nil {
		transportOptions = append(transportOptions, transport.WithProactiveRefresh(*ret.proactive))
	}
	for _, observer := range ret.observers {
		transportOptions = append(transportOptions, transport.WithSessionObserver(observer))
	}
	var err error
	if ret.auth, err = transport.New(transportOptions...); err != nil {
		return nil, err
	}
	ret.http = &http.Client{Transport: ret.auth, Timeout: ret.timeout}
	ret.logger = ret.logger.With(slog.String("component", "api-client"))
	return ret, nil
}

// URL resolves path against the base URL; absolute URLs are returned as is
// and only carry the bearer token when they point at the base host.
func (c *Client) URL(path string) string {
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}
	return c.baseURL + "/" + strings.TrimLeft(path, "/")
}

func (c *Client) BaseURL() string {
	return c.baseURL
}

func (c *Client) Store() store.Store {
	return c.store
}

// Get issues a GET request.
func (c *Client) Get(ctx context.Context, path string, options ...RequestOption) (*Response, error) {
	return c.Do(ctx, NewRequest(http.MethodGet, path, options...))
}

// Post issues a POST request with body encoded as JSON.
func (c *Client) Post(ctx context.Context, path string, body interface{}, options ...RequestOption) (*Response, error) {
	return c.sendJSON(ctx, http.MethodPost, path, body, options...)
}

// Put issues a PUT request with body encoded as JSON.
func (c *Client) Put(ctx context.Context, path string, body interface{}, options ...RequestOption) (*Response, error) {
	return c.sendJSON(ctx, http.MethodPut, path, body, options...)
}

// Delete issues a DELETE request.
func (c *Client) Delete(ctx context.Context, path string, options ...RequestOption) (*Response, error) {
	return c.Do(ctx, NewRequest(http.MethodDelete, path, options...))
}

// Upload posts form as multipart/form-data. The boundary content type comes
// from the form encoder, never application/json.
func (c *Client) Upload(ctx context.Context, path string, form *Form, options ...RequestOption) (*Response, error) {
	if form == nil {
		return nil, fmt.Errorf("upload form was nil")
	}
	body, contentType, err := form.Encode()
	if err != nil {
		return nil, fmt.Errorf("failed to encode form: %w", err)
	}
	request := NewRequest(http.MethodPost, path, options...)
	request.Body = body
	request.ContentType = contentType
	return c.Do(ctx, request)
}

func (c *Client) sendJSON(ctx context.Context, method, path string, body interface{}, options ...RequestOption) (*Response, error) {
	request := NewRequest(method, path, options...)
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request body: %w", err)
		}
		request.Body = data
	}
	return c.Do(ctx, request)
}

// Do sends request. Any status other than 401 is returned as a Response;
// 401 is handled by the refresh protocol and surfaces only as
// ErrSessionExpired or ErrUnauthorizedAfterRefresh.
func (c *Client) Do(ctx context.Context, request *Request) (*Response, error) {
	var body io.Reader
	if request.Body != nil {
		body = bytes.NewReader(request.Body)
	}
	if request.Anonymous {
		ctx = transport.Anonymous(ctx)
	}
	httpRequest, err := http.NewRequestWithContext(ctx, request.Method, c.URL(request.Path), body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	for key, values := range request.Header {
		for _, value := range values {
			httpRequest.Header.Add(key, value)
		}
	}
	switch {
	case request.ContentType != "":
		httpRequest.Header.Set("Content-Type", request.ContentType)
	case request.Body != nil:
		httpRequest.Header.Set("Content-Type", "application/json")
	}
	httpRequest.Header.Set("Accept", "application/json")

	started := time.Now()
	httpResponse, err := c.http.Do(httpRequest)
	if err != nil {
		err = c.classify(httpRequest, err)
		c.logger.Debug("request failed",
			slog.String("method", request.Method),
			slog.String("path", request.Path),
			slog.String("error", err.Error()))
		return nil, err
	}
	defer httpResponse.Body.Close()
	data, err := io.ReadAll(httpResponse.Body)
	if err != nil {
		return nil, &TransportError{Method: request.Method, URL: httpRequest.URL.String(), Err: err}
	}
	c.logger.Debug("request completed",
		slog.String("method", request.Method),
		slog.String("path", request.Path),
		slog.Int("status", httpResponse.StatusCode),
		slog.Duration("elapsed", time.Since(started)))
	return &Response{StatusCode: httpResponse.StatusCode, Header: httpResponse.Header, Body: data}, nil
}

// classify separates session failures from network ones.
func (c *Client) classify(req *http.Request, err error) error {
	cause := err
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		cause = urlErr.Err
	}
	if errors.Is(cause, ErrSessionExpired) || errors.Is(cause, ErrUnauthorizedAfterRefresh) {
		return cause
	}
	return &TransportError{Method: req.Method, URL: req.URL.String(), Err: cause}
}

// SaveCredential stores a credential obtained by login and re-arms session
// expiry notification.
func (c *Client) SaveCredential(ctx context.Context, credential *store.Credential) error {
	return c.auth.SaveCredential(ctx, credential)
}

// Logout clears the local credential without notifying session observers.
func (c *Client) Logout(ctx context.Context) error {
	return c.auth.Logout(ctx)
}

// TokenSource returns an oauth2.TokenSource over the managed credential.
func (c *Client) TokenSource(ctx context.Context) oauth2.TokenSource {
	return c.auth.TokenSource(ctx)
}
