package mock

import (
	"net/http"
	"strings"
)

// Handler routes HTTP requests to the appropriate mock backend endpoints.
type Handler struct {
	// Server is the mock attendance service with endpoint handlers.
	Server *AttendanceService
}

// ServeHTTP dispatches incoming HTTP requests based on URL path.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch r.URL.Path {
	case "/auth/refresh-token", "/auth/refresh-tokens":
		if h.Server.RefreshHandler != nil {
			h.Server.RefreshHandler(w, r)
		} else {
			h.Server.defaultRefreshHandler(w, r)
		}
	case "/auth/send-otp":
		if h.Server.SendOTPHandler != nil {
			h.Server.SendOTPHandler(w, r)
		} else {
			h.Server.defaultSendOTPHandler(w, r)
		}
	case "/auth/verify-otp":
		if h.Server.VerifyOTPHandler != nil {
			h.Server.VerifyOTPHandler(w, r)
		} else {
			h.Server.defaultVerifyOTPHandler(w, r)
		}
	case "/auth/logout":
		if h.Server.LogoutHandler != nil {
			h.Server.LogoutHandler(w, r)
		} else {
			h.Server.defaultLogoutHandler(w, r)
		}
	default:
		if !strings.HasPrefix(r.URL.Path, "/attendance/") {
			http.NotFound(w, r)
			return
		}
		if h.Server.ResourceHandler != nil {
			h.Server.ResourceHandler(w, r)
		} else {
			h.Server.defaultResourceHandler(w, r)
		}
	}
}
