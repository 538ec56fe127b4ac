package auth

import "log/slog"

type Option func(s *Service)

// WithAuthenticator sets the local user verification used by Restore
func WithAuthenticator(authenticator Authenticator) Option {
	return func(s *Service) {
		s.authenticator = authenticator
	}
}

// WithDeviceType sets the device type reported with OTP requests
func WithDeviceType(deviceType string) Option {
	return func(s *Service) {
		if deviceType != "" {
			s.deviceType = deviceType
		}
	}
}

// WithPrompt sets the verification prompt
func WithPrompt(prompt string) Option {
	return func(s *Service) {
		s.prompt = prompt
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}
