// Package metrics exposes Prometheus metrics for the API client: an
// instrumented http.RoundTripper and a transport.Recorder for token refresh
// and session expiry events.
package metrics
