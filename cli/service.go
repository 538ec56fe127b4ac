package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"path/filepath"

	sprenza "github.com/DevendraPaulmerchants/Sprenza"
	"github.com/DevendraPaulmerchants/Sprenza/attendance"
	"github.com/DevendraPaulmerchants/Sprenza/client/auth"
	"github.com/DevendraPaulmerchants/Sprenza/client/auth/flow"
	"github.com/DevendraPaulmerchants/Sprenza/client/auth/transport"
	"github.com/DevendraPaulmerchants/Sprenza/internal/logger"
	"github.com/viant/afs"
)

// Service runs CLI commands against the attendance API services.
type Service struct {
	*sprenza.Service
	fs     afs.Service
	out    io.Writer
	logger *slog.Logger
}

func New(ctx context.Context, config *Config, in io.Reader, out io.Writer) (*Service, error) {
	log, err := logger.SetupLogger(logger.Config{
		Level:   logger.ParseLevel(config.Log.Level),
		Format:  config.Log.Format,
		LogFile: config.Log.File,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to setup logger: %w", err)
	}
	ret := &Service{fs: afs.New(), out: out, logger: log}
	options := config.Options
	options.Logger = log
	options.Authenticator = flow.NewTerminalFlow(in, out)
	options.Observers = append(options.Observers, transport.ObserverFunc(ret.onSessionExpired))
	if ret.Service, err = sprenza.New(ctx, &options); err != nil {
		return nil, err
	}
	return ret, nil
}

// Execute runs command
func (s *Service) Execute(ctx context.Context, command string, options *Options) error {
	logger.WithCommand(s.logger, command).Debug("executing")
	switch command {
	case "login":
		message, err := s.Auth.SendOTP(ctx, options.Login.Email)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(s.out, message)
		return err
	case "verify":
		session, err := s.Auth.VerifyOTP(ctx, options.Verify.Email, options.Verify.OTP)
		if err != nil {
			return err
		}
		return s.print(session)
	case "restore":
		session, err := s.Auth.Restore(ctx)
		if err != nil {
			return err
		}
		return s.print(session)
	case "session":
		session, err := s.Auth.CurrentSession(ctx)
		if err != nil {
			return err
		}
		if session == nil {
			return auth.ErrNoSavedCredentials
		}
		return s.print(session)
	case "punch-in":
		punch, err := s.punch(ctx, &options.PunchIn)
		if err != nil {
			return err
		}
		record, err := s.Attendance.PunchIn(ctx, punch)
		if err != nil {
			return err
		}
		return s.print(record)
	case "punch-out":
		punch, err := s.punch(ctx, &options.PunchOut)
		if err != nil {
			return err
		}
		record, err := s.Attendance.PunchOut(ctx, punch)
		if err != nil {
			return err
		}
		return s.print(record)
	case "history":
		records, err := s.Attendance.History(ctx)
		if err != nil {
			return err
		}
		return s.print(records)
	case "today":
		today, err := s.Attendance.Today(ctx)
		if err != nil {
			return err
		}
		return s.print(today)
	case "token":
		token, err := s.Client.TokenSource(ctx).Token()
		if err != nil {
			return err
		}
		if options.Token.JSON {
			return s.print(token)
		}
		_, err = fmt.Fprintln(s.out, token.AccessToken)
		return err
	case "logout":
		return s.Auth.Logout(ctx)
	}
	return fmt.Errorf("unsupported command: %v", command)
}

func (s *Service) punch(ctx context.Context, options *PunchOptions) (*attendance.Punch, error) {
	data, err := s.fs.DownloadWithURL(ctx, options.Image)
	if err != nil {
		return nil, fmt.Errorf("failed to read image %v: %w", options.Image, err)
	}
	return &attendance.Punch{
		Latitude:  options.Latitude,
		Longitude: options.Longitude,
		Address:   options.Address,
		Image: attendance.Image{
			Name:        filepath.Base(options.Image),
			ContentType: mime.TypeByExtension(filepath.Ext(options.Image)),
			Data:        data,
		},
	}, nil
}

func (s *Service) print(value interface{}) error {
	encoder := json.NewEncoder(s.out)
	encoder.SetIndent("", "  ")
	return encoder.Encode(value)
}

func (s *Service) onSessionExpired(ctx context.Context, reason transport.Reason) {
	s.logger.Warn("session expired, please login again", slog.String("reason", string(reason)))
}
