package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/DevendraPaulmerchants/Sprenza/client"
	"github.com/DevendraPaulmerchants/Sprenza/client/auth/store"
	"github.com/DevendraPaulmerchants/Sprenza/client/auth/transport"
	"github.com/google/uuid"
)

const (
	pathSendOTP   = "/auth/send-otp"
	pathVerifyOTP = "/auth/verify-otp"
	pathLogout    = "/auth/logout"

	DeviceTypeMobile = "MOBILE"
)

var (
	// ErrNoSavedCredentials is returned by Restore when the store holds no complete session.
	ErrNoSavedCredentials = errors.New("no saved credentials")
	ErrInvalidEmail       = errors.New("invalid email")
)

// Authenticator verifies the user locally (biometric prompt on a device)
// before a saved session is resumed.
type Authenticator interface {
	Available(ctx context.Context) bool
	Authenticate(ctx context.Context, prompt string) error
}

// Session is the signed-in state exposed to the application.
type Session struct {
	User     *store.User
	DeviceID string
	// ExpiresAt is the access token expiry, zero when unknown.
	ExpiresAt time.Time
}

// Service runs the login flows and owns the credential lifecycle outside the
// refresh protocol.
type Service struct {
	client        *client.Client
	authenticator Authenticator
	deviceType    string
	prompt        string
	logger        *slog.Logger
}

// SendOTP requests a one-time password for email and returns the server message.
func (s *Service) SendOTP(ctx context.Context, email string) (string, error) {
	email, err := normalizeEmail(email)
	if err != nil {
		return "", err
	}
	deviceID, err := s.deviceID(ctx)
	if err != nil {
		return "", err
	}
	payload := map[string]interface{}{
		"email": email,
		"device": map[string]string{
			"deviceId":   deviceID,
			"deviceType": s.deviceType,
		},
	}
	resp, err := s.client.Post(ctx, pathSendOTP, payload, client.WithoutAuth())
	if err != nil {
		return "", err
	}
	if err = resp.Err(); err != nil {
		return "", err
	}
	s.logger.Info("otp requested", slog.String("email", email))
	return resp.Message(), nil
}

// VerifyOTP exchanges the one-time password for a credential and saves it.
func (s *Service) VerifyOTP(ctx context.Context, email, otp string) (*Session, error) {
	email, err := normalizeEmail(email)
	if err != nil {
		return nil, err
	}
	otp = strings.TrimSpace(otp)
	if otp == "" {
		return nil, fmt.Errorf("otp was empty")
	}
	resp, err := s.client.Post(ctx, pathVerifyOTP, map[string]string{"email": email, "otp": otp}, client.WithoutAuth())
	if err != nil {
		return nil, err
	}
	if err = resp.Err(); err != nil {
		return nil, err
	}
	credential, err := transport.DecodeAuthPayload(resp.Body)
	if err != nil {
		return nil, err
	}
	if err = s.client.SaveCredential(ctx, credential); err != nil {
		return nil, fmt.Errorf("failed to save credential: %w", err)
	}
	s.logger.Info("signed in", slog.String("email", email))
	return s.session(ctx, credential)
}

// Restore resumes a saved session after local user verification.
func (s *Service) Restore(ctx context.Context) (*Session, error) {
	credential, err := s.client.Store().LoadCredential(ctx)
	if err != nil {
		return nil, err
	}
	if credential == nil || credential.User == nil {
		return nil, ErrNoSavedCredentials
	}
	if s.authenticator != nil {
		if !s.authenticator.Available(ctx) {
			return nil, fmt.Errorf("user verification not available")
		}
		if err = s.authenticator.Authenticate(ctx, s.prompt); err != nil {
			return nil, fmt.Errorf("user verification failed: %w", err)
		}
	}
	return s.session(ctx, credential)
}

// CurrentSession returns the stored session without verification, nil when signed out.
func (s *Service) CurrentSession(ctx context.Context) (*Session, error) {
	credential, err := s.client.Store().LoadCredential(ctx)
	if err != nil || credential == nil {
		return nil, err
	}
	return s.session(ctx, credential)
}

// Logout tells the server best effort, then clears the local credential
// whatever the outcome.
func (s *Service) Logout(ctx context.Context) error {
	credential, err := s.client.Store().LoadCredential(ctx)
	if err == nil && credential != nil {
		resp, err := s.client.Post(ctx, pathLogout, nil)
		switch {
		case err != nil:
			s.logger.Warn("logout request failed", slog.String("error", err.Error()))
		case !resp.OK():
			s.logger.Warn("logout rejected", slog.Int("status", resp.StatusCode), slog.String("message", resp.Message()))
		}
	}
	return s.client.Logout(ctx)
}

func (s *Service) session(ctx context.Context, credential *store.Credential) (*Session, error) {
	deviceID, _, err := s.client.Store().Get(ctx, store.KeyDeviceID)
	if err != nil {
		return nil, err
	}
	ret := &Session{User: credential.User, DeviceID: deviceID}
	if expiry, ok := credential.ExpiresAt(); ok {
		ret.ExpiresAt = expiry
	}
	return ret, nil
}

// deviceID returns the stored device id, creating one on first use.
func (s *Service) deviceID(ctx context.Context) (string, error) {
	aStore := s.client.Store()
	deviceID, ok, err := aStore.Get(ctx, store.KeyDeviceID)
	if err != nil {
		return "", err
	}
	if ok && deviceID != "" {
		return deviceID, nil
	}
	deviceID = uuid.NewString()
	if err = aStore.Set(ctx, store.KeyDeviceID, deviceID); err != nil {
		return "", fmt.Errorf("failed to save device id: %w", err)
	}
	return deviceID, nil
}

func normalizeEmail(email string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	at := strings.Index(email, "@")
	if at <= 0 || at == len(email)-1 {
		return "", fmt.Errorf("%w: %q", ErrInvalidEmail, email)
	}
	return email, nil
}

// New creates a session service on top of an authenticated client.
func New(aClient *client.Client, options ...Option) *Service {
	ret := &Service{
		client:     aClient,
		deviceType: DeviceTypeMobile,
		prompt:     "Authenticate to continue",
		logger:     slog.Default(),
	}
	for _, opt := range options {
		opt(ret)
	}
	ret.logger = ret.logger.With(slog.String("component", "auth"))
	return ret
}
