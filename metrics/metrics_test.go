package metrics

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DevendraPaulmerchants/Sprenza/client"
	"github.com/DevendraPaulmerchants/Sprenza/client/auth/mock"
	"github.com/DevendraPaulmerchants/Sprenza/client/auth/transport"
)

func TestNormalizeRoute(t *testing.T) {
	tests := []struct {
		name     string
		path     string
		expected string
	}{
		{name: "static", path: "/attendance/today", expected: "/attendance/today"},
		{name: "numeric id", path: "/attendance/records/42", expected: "/attendance/records/:id"},
		{name: "uuid", path: "/attendance/records/3f2b6a1e-9c1d-4e5f-8a7b-0c1d2e3f4a5b", expected: "/attendance/records/:id"},
		{name: "object id", path: "/users/64b7f0c2a1b2c3d4e5f60718/profile", expected: "/users/:id/profile"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizeRoute(tt.path))
		})
	}
}

func TestClassifyError(t *testing.T) {
	assert.Equal(t, "timeout", classifyError(0, errors.New("context deadline exceeded")))
	assert.Equal(t, "connection", classifyError(0, errors.New("dial tcp: connection refused")))
	assert.Equal(t, "network", classifyError(0, errors.New("eof")))
	assert.Equal(t, "unauthorized", classifyError(401, nil))
	assert.Equal(t, "server_error", classifyError(503, nil))
	assert.Equal(t, "client_error", classifyError(422, nil))
}

func TestCollectors_Recorder(t *testing.T) {
	collectors := New(prometheus.NewRegistry())
	collectors.RefreshCompleted(transport.RefreshSucceeded, 20*time.Millisecond)
	collectors.RefreshCompleted(transport.RefreshFailed, time.Millisecond)
	collectors.SessionExpired(transport.ReasonRefreshFailed)

	assert.Equal(t, 1.0, testutil.ToFloat64(collectors.Refreshes.WithLabelValues(transport.RefreshSucceeded)))
	assert.Equal(t, 1.0, testutil.ToFloat64(collectors.Refreshes.WithLabelValues(transport.RefreshFailed)))
	assert.Equal(t, 1.0, testutil.ToFloat64(collectors.SessionExpiry.WithLabelValues(string(transport.ReasonRefreshFailed))))
}

func TestTransport_WithClient(t *testing.T) {
	server, err := mock.NewHTTPTestAttendanceServer()
	require.NoError(t, err)
	defer server.Close()

	collectors := New(prometheus.NewRegistry())
	cli, err := client.New(server.URL,
		client.WithHTTPTransport(NewTransport(nil, collectors)),
		client.WithRecorder(collectors))
	require.NoError(t, err)
	ctx := context.Background()
	credential, err := server.IssueCredential()
	require.NoError(t, err)
	require.NoError(t, cli.SaveCredential(ctx, credential))

	server.ExpireAccessTokens()
	resp, err := cli.Get(ctx, "/attendance/today")
	require.NoError(t, err)
	assert.True(t, resp.OK())

	assert.Equal(t, 1.0, testutil.ToFloat64(collectors.APICalls.WithLabelValues("GET", "/attendance/today", "401")))
	assert.Equal(t, 1.0, testutil.ToFloat64(collectors.APICalls.WithLabelValues("GET", "/attendance/today", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(collectors.APICalls.WithLabelValues("POST", "/auth/refresh-token", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(collectors.APIErrors.WithLabelValues("/attendance/today", "unauthorized")))
	assert.Equal(t, 1.0, testutil.ToFloat64(collectors.Refreshes.WithLabelValues(transport.RefreshSucceeded)))
}
