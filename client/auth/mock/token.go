package mock

import (
	"encoding/json"
	"net/http"
)

// defaultRefreshHandler handles /auth/refresh-token requests, rotating both tokens
func (m *AttendanceService) defaultRefreshHandler(w http.ResponseWriter, r *http.Request) {
	m.RefreshCalls.Add(1)
	if r.Method != http.MethodPost {
		writeMessage(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}
	var request struct {
		RefreshToken string `json:"refreshToken"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil || request.RefreshToken == "" {
		writeMessage(w, http.StatusBadRequest, "refreshToken is required")
		return
	}
	if err := m.verifyJWT(request.RefreshToken, "refresh"); err != nil {
		writeMessage(w, http.StatusUnauthorized, "Invalid refresh token")
		return
	}
	m.mu.Lock()
	valid := m.refreshTokens[request.RefreshToken]
	delete(m.refreshTokens, request.RefreshToken)
	m.mu.Unlock()
	if !valid {
		writeMessage(w, http.StatusUnauthorized, "Refresh token revoked")
		return
	}
	m.writeAuthPayload(w, "Token refreshed")
}

func (m *AttendanceService) writeAuthPayload(w http.ResponseWriter, message string) {
	access, refresh, err := m.issuePair()
	if err != nil {
		writeMessage(w, http.StatusInternalServerError, "Server error")
		return
	}
	writeJSON(w, http.StatusOK, AuthResponse(message, access, refresh, m.User))
}

// AuthResponse builds the envelope returned by verify-otp and refresh-token.
func AuthResponse(message, access, refresh string, user interface{}) map[string]interface{} {
	return map[string]interface{}{
		"success": true,
		"message": message,
		"data": map[string]interface{}{
			"tokens": map[string]interface{}{
				"access":  map[string]string{"token": access},
				"refresh": map[string]string{"token": refresh},
			},
			"user": user,
		},
	}
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeMessage(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]interface{}{"success": false, "message": message})
}
