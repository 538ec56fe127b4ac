package mock

import (
	"encoding/json"
	"net/http"
	"strings"
)

// defaultSendOTPHandler handles /auth/send-otp requests
func (m *AttendanceService) defaultSendOTPHandler(w http.ResponseWriter, r *http.Request) {
	var request struct {
		Email  string `json:"email"`
		Device struct {
			DeviceID   string `json:"deviceId"`
			DeviceType string `json:"deviceType"`
		} `json:"device"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil || !strings.Contains(request.Email, "@") {
		writeMessage(w, http.StatusBadRequest, "Valid email is required")
		return
	}
	if request.Device.DeviceID == "" {
		writeMessage(w, http.StatusBadRequest, "Device id is required")
		return
	}
	m.mu.Lock()
	m.devices[request.Email] = request.Device.DeviceID
	m.mu.Unlock()
	writeJSON(w, http.StatusOK, map[string]interface{}{"success": true, "message": "OTP sent to " + request.Email})
}

// defaultVerifyOTPHandler handles /auth/verify-otp requests
func (m *AttendanceService) defaultVerifyOTPHandler(w http.ResponseWriter, r *http.Request) {
	var request struct {
		Email string `json:"email"`
		OTP   string `json:"otp"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request")
		return
	}
	m.mu.Lock()
	_, requested := m.devices[request.Email]
	m.mu.Unlock()
	if !requested {
		writeMessage(w, http.StatusBadRequest, "OTP not requested")
		return
	}
	if request.OTP != m.OTP {
		writeMessage(w, http.StatusUnauthorized, "Invalid OTP")
		return
	}
	m.writeAuthPayload(w, "Login successful")
}

// defaultLogoutHandler handles /auth/logout requests
func (m *AttendanceService) defaultLogoutHandler(w http.ResponseWriter, r *http.Request) {
	m.LogoutCalls.Add(1)
	token, ok := m.authorize(r)
	if !ok {
		writeMessage(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	m.mu.Lock()
	delete(m.accessTokens, token)
	m.mu.Unlock()
	writeJSON(w, http.StatusOK, map[string]interface{}{"success": true, "message": "Logged out"})
}
