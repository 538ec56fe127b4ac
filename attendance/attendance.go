package attendance

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/DevendraPaulmerchants/Sprenza/client"
)

const (
	PathPunchIn  = "/attendance/punch-in"
	PathPunchOut = "/attendance/punch-out"
	PathHistory  = "/attendance/history"
	PathToday    = "/attendance/today"

	defaultImageType = "image/jpeg"
)

var ErrMissingImage = errors.New("selfie image is required")

// Service submits punches and reads attendance. Business rules such as one
// punch-in per day are enforced by the server.
type Service struct {
	client client.Interface
	now    func() time.Time
	logger *slog.Logger
}

// PunchIn uploads a punch-in with location and selfie.
func (s *Service) PunchIn(ctx context.Context, punch *Punch) (*Record, error) {
	return s.punch(ctx, PathPunchIn, punch)
}

// PunchOut uploads a punch-out with location and selfie.
func (s *Service) PunchOut(ctx context.Context, punch *Punch) (*Record, error) {
	return s.punch(ctx, PathPunchOut, punch)
}

// History returns the attendance records of the signed-in user.
func (s *Service) History(ctx context.Context) ([]Record, error) {
	var ret []Record
	if err := s.get(ctx, PathHistory, &ret); err != nil {
		return nil, err
	}
	return ret, nil
}

// Today returns today's attendance state.
func (s *Service) Today(ctx context.Context) (*Today, error) {
	ret := &Today{}
	if err := s.get(ctx, PathToday, ret); err != nil {
		return nil, err
	}
	return ret, nil
}

func (s *Service) punch(ctx context.Context, path string, punch *Punch) (*Record, error) {
	form, err := s.form(punch)
	if err != nil {
		return nil, err
	}
	resp, err := s.client.Upload(ctx, path, form)
	if err != nil {
		return nil, err
	}
	if err = resp.Err(); err != nil {
		return nil, err
	}
	ret := &Record{}
	if err = resp.DecodeData(ret); err != nil {
		return nil, err
	}
	s.logger.Info("punch recorded", slog.String("path", path), slog.String("status", ret.Status))
	return ret, nil
}

func (s *Service) form(punch *Punch) (*client.Form, error) {
	if punch == nil || len(punch.Image.Data) == 0 {
		return nil, ErrMissingImage
	}
	address := strings.TrimSpace(punch.Address)
	if address == "" {
		return nil, fmt.Errorf("address was empty")
	}
	name := punch.Image.Name
	if name == "" {
		name = fmt.Sprintf("selfie_%d.jpg", s.now().UnixMilli())
	}
	contentType := punch.Image.ContentType
	if contentType == "" {
		contentType = defaultImageType
	}
	return client.NewForm().
		AddField("latitude", strconv.FormatFloat(punch.Latitude, 'f', -1, 64)).
		AddField("longitude", strconv.FormatFloat(punch.Longitude, 'f', -1, 64)).
		AddField("address", address).
		AddFile("image", name, contentType, punch.Image.Data), nil
}

func (s *Service) get(ctx context.Context, path string, target interface{}) error {
	resp, err := s.client.Get(ctx, path)
	if err != nil {
		return err
	}
	if err = resp.Err(); err != nil {
		return err
	}
	return resp.DecodeData(target)
}

// New creates an attendance service
func New(aClient client.Interface, options ...Option) *Service {
	ret := &Service{client: aClient, now: time.Now, logger: slog.Default()}
	for _, opt := range options {
		opt(ret)
	}
	ret.logger = ret.logger.With(slog.String("component", "attendance"))
	return ret
}

type Option func(s *Service)

// WithClock sets the clock used to name unnamed selfies
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}
