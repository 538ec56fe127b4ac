package metrics

import (
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// metricsTransport wraps an http.RoundTripper to collect metrics on API calls
type metricsTransport struct {
	base       http.RoundTripper
	collectors *Collectors
}

// NewTransport creates a transport wrapper that records every call made
// through base, refresh calls included when installed below the auth transport.
func NewTransport(base http.RoundTripper, collectors *Collectors) http.RoundTripper {
	if base == nil {
		base = http.DefaultTransport
	}
	return &metricsTransport{base: base, collectors: collectors}
}

func (t *metricsTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	start := time.Now()
	resp, err := t.base.RoundTrip(req)
	duration := time.Since(start)

	route := NormalizeRoute(req.URL.Path)
	statusCode := 0
	if resp != nil {
		statusCode = resp.StatusCode
	}
	t.collectors.APICalls.WithLabelValues(req.Method, route, strconv.Itoa(statusCode)).Inc()
	t.collectors.APIDuration.WithLabelValues(req.Method, route).Observe(float64(duration.Milliseconds()))
	if err != nil || statusCode >= 400 {
		t.collectors.APIErrors.WithLabelValues(route, classifyError(statusCode, err)).Inc()
	}
	return resp, err
}

var routePatterns = []struct {
	regex   *regexp.Regexp
	replace string
}{
	{regexp.MustCompile(`/[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}`), "/:id"},
	{regexp.MustCompile(`/[0-9a-fA-F]{24}\b`), "/:id"},
	{regexp.MustCompile(`/\d+\b`), "/:id"},
}

// NormalizeRoute replaces ids in path with placeholders to keep label cardinality low.
func NormalizeRoute(path string) string {
	normalized := path
	for _, p := range routePatterns {
		normalized = p.regex.ReplaceAllString(normalized, p.replace)
	}
	return normalized
}

func classifyError(statusCode int, err error) string {
	if err != nil {
		errStr := strings.ToLower(err.Error())
		switch {
		case strings.Contains(errStr, "timeout") || strings.Contains(errStr, "deadline"):
			return "timeout"
		case strings.Contains(errStr, "canceled"):
			return "canceled"
		case strings.Contains(errStr, "connection"):
			return "connection"
		default:
			return "network"
		}
	}
	switch {
	case statusCode == 400:
		return "bad_request"
	case statusCode == 401:
		return "unauthorized"
	case statusCode == 403:
		return "forbidden"
	case statusCode == 404:
		return "not_found"
	case statusCode == 429:
		return "rate_limited"
	case statusCode >= 500:
		return "server_error"
	default:
		return "client_error"
	}
}
