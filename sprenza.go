package sprenza

import (
	"context"
	"fmt"

	"github.com/DevendraPaulmerchants/Sprenza/attendance"
	"github.com/DevendraPaulmerchants/Sprenza/client"
	"github.com/DevendraPaulmerchants/Sprenza/client/auth"
	"github.com/DevendraPaulmerchants/Sprenza/metrics"
)

// Service is the composition root: one authenticated client shared by the
// session flows and the attendance endpoints.
type Service struct {
	Client     *client.Client
	Auth       *auth.Service
	Attendance *attendance.Service
	// Metrics is nil unless Options.Registerer was set.
	Metrics *metrics.Collectors
}

// New creates the services configured via Options.
func New(ctx context.Context, options *Options) (*Service, error) {
	options.Init()
	if err := options.Validate(); err != nil {
		return nil, err
	}
	credentials, err := options.NewStore(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to open credential store: %w", err)
	}
	ret := &Service{}
	clientOptions := []client.Option{
		client.WithStore(credentials),
		client.WithTimeout(options.Timeout),
		client.WithRefreshPath(options.RefreshPath),
		client.WithLogger(options.Logger),
	}
	if options.Registerer != nil {
		ret.Metrics = metrics.New(options.Registerer)
		clientOptions = append(clientOptions,
			client.WithHTTPTransport(metrics.NewTransport(nil, ret.Metrics)),
			client.WithRecorder(ret.Metrics))
	}
	for _, observer := range options.Observers {
		clientOptions = append(clientOptions, client.WithSessionObserver(observer))
	}
	if ret.Client, err = client.New(options.BaseURL, clientOptions...); err != nil {
		return nil, err
	}
	authOptions := []auth.Option{auth.WithLogger(options.Logger)}
	if options.Authenticator != nil {
		authOptions = append(authOptions, auth.WithAuthenticator(options.Authenticator))
	}
	ret.Auth = auth.New(ret.Client, authOptions...)
	ret.Attendance = attendance.New(ret.Client, attendance.WithLogger(options.Logger))
	return ret, nil
}
