package metrics

import (
	"time"

	"github.com/DevendraPaulmerchants/Sprenza/client/auth/transport"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "sprenza"

// Collectors holds the API client metrics; it implements transport.Recorder.
type Collectors struct {
	APICalls       *prometheus.CounterVec
	APIDuration    *prometheus.HistogramVec
	APIErrors      *prometheus.CounterVec
	Refreshes      *prometheus.CounterVec
	RefreshLatency prometheus.Histogram
	SessionExpiry  *prometheus.CounterVec
}

// New registers the collectors with registerer, prometheus.DefaultRegisterer when nil.
func New(registerer prometheus.Registerer) *Collectors {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}
	factory := promauto.With(registerer)
	return &Collectors{
		APICalls: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "api_calls_total",
				Help:      "Total API calls by method, route and status code",
			},
			[]string{"method", "route", "status"},
		),
		APIDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace:                       namespace,
				Name:                            "api_call_duration_ms",
				Help:                            "API call duration in milliseconds",
				NativeHistogramBucketFactor:     1.1,
				NativeHistogramMaxBucketNumber:  100,
				NativeHistogramMinResetDuration: time.Hour,
			},
			[]string{"method", "route"},
		),
		APIErrors: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "api_errors_total",
				Help:      "Total failed API calls by route and error type",
			},
			[]string{"route", "error_type"},
		),
		Refreshes: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "token_refresh_total",
				Help:      "Token refresh attempts by outcome",
			},
			[]string{"outcome"},
		),
		RefreshLatency: factory.NewHistogram(
			prometheus.HistogramOpts{
				Namespace:                       namespace,
				Name:                            "token_refresh_duration_ms",
				Help:                            "Token refresh duration in milliseconds",
				NativeHistogramBucketFactor:     1.1,
				NativeHistogramMaxBucketNumber:  100,
				NativeHistogramMinResetDuration: time.Hour,
			},
		),
		SessionExpiry: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "session_expired_total",
				Help:      "Forced logouts by reason",
			},
			[]string{"reason"},
		),
	}
}

func (c *Collectors) RefreshCompleted(outcome string, duration time.Duration) {
	c.Refreshes.WithLabelValues(outcome).Inc()
	c.RefreshLatency.Observe(float64(duration.Milliseconds()))
}

func (c *Collectors) SessionExpired(reason transport.Reason) {
	c.SessionExpiry.WithLabelValues(string(reason)).Inc()
}

var _ transport.Recorder = (*Collectors)(nil)
