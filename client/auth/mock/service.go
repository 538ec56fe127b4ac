package mock

import (
	"crypto/rand"
	"fmt"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/DevendraPaulmerchants/Sprenza/client/auth/store"
)

// AttendanceService simulates the attendance backend: OTP login, token refresh
// with rotation, logout and the protected attendance endpoints.
type AttendanceService struct {
	Secret    []byte
	Issuer    string
	OTP       string
	AccessTTL time.Duration
	User      store.User

	RefreshHandler   func(w http.ResponseWriter, r *http.Request)
	SendOTPHandler   func(w http.ResponseWriter, r *http.Request)
	VerifyOTPHandler func(w http.ResponseWriter, r *http.Request)
	LogoutHandler    func(w http.ResponseWriter, r *http.Request)
	// ResourceHandler replaces every /attendance endpoint when set.
	ResourceHandler func(w http.ResponseWriter, r *http.Request)

	RefreshCalls atomic.Int32
	LogoutCalls  atomic.Int32

	mu            sync.Mutex
	accessTokens  map[string]bool
	refreshTokens map[string]bool
	devices       map[string]string
	records       []Record
}

// NewAttendanceService creates a new mock attendance backend
func NewAttendanceService(opts ...Option) (*AttendanceService, error) {
	secret := make([]byte, 32)
	if _, err := rand.Read(secret); err != nil {
		return nil, fmt.Errorf("failed to generate signing secret: %v", err)
	}
	service := &AttendanceService{
		Secret:        secret,
		OTP:           "123456",
		AccessTTL:     time.Hour,
		User:          store.User{ID: "emp-1", Name: "Asha Verma", Email: "asha@example.com", Role: "EMPLOYEE"},
		accessTokens:  map[string]bool{},
		refreshTokens: map[string]bool{},
		devices:       map[string]string{},
	}
	for _, opt := range opts {
		opt(service)
	}
	return service, nil
}

// Option customises the mock service
type Option func(*AttendanceService)

// WithAccessTTL sets access token lifetime; a negative value issues expired tokens
func WithAccessTTL(ttl time.Duration) Option {
	return func(s *AttendanceService) {
		s.AccessTTL = ttl
	}
}

// WithOTP sets the one-time password accepted by verify-otp
func WithOTP(otp string) Option {
	return func(s *AttendanceService) {
		s.OTP = otp
	}
}

// Register registers HTTP handlers for all mock endpoints onto the given ServeMux.
func (m *AttendanceService) Register(mux *http.ServeMux) {
	mux.Handle("/", &Handler{Server: m})
}

// Handler returns an http.Handler for all mock endpoints, suitable for any HTTP server.
func (m *AttendanceService) Handler() http.Handler {
	mux := http.NewServeMux()
	m.Register(mux)
	return mux
}

// IssueCredential mints a valid token pair without going through OTP login.
func (m *AttendanceService) IssueCredential() (*store.Credential, error) {
	access, refresh, err := m.issuePair()
	if err != nil {
		return nil, err
	}
	user := m.User
	return &store.Credential{AccessToken: access, RefreshToken: refresh, User: &user}, nil
}

// ExpireAccessTokens revokes every access token issued so far; the next
// protected call answers 401.
func (m *AttendanceService) ExpireAccessTokens() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.accessTokens = map[string]bool{}
}

// RevokeRefreshTokens makes every outstanding refresh token unusable.
func (m *AttendanceService) RevokeRefreshTokens() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.refreshTokens = map[string]bool{}
}

// Records returns a copy of the punches recorded so far.
func (m *AttendanceService) Records() []Record {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Record(nil), m.records...)
}

// DeviceFor returns the device id last used to request an OTP for email.
func (m *AttendanceService) DeviceFor(email string) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.devices[email]
}

func (m *AttendanceService) issuePair() (string, string, error) {
	access, err := m.createJWT(m.User.ID, "access", m.AccessTTL)
	if err != nil {
		return "", "", err
	}
	refresh, err := m.createJWT(m.User.ID, "refresh", 30*24*time.Hour)
	if err != nil {
		return "", "", err
	}
	m.mu.Lock()
	m.accessTokens[access] = true
	m.refreshTokens[refresh] = true
	m.mu.Unlock()
	return access, refresh, nil
}
