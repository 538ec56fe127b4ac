package mock

import (
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Record is the attendance row kept by the mock backend.
type Record struct {
	ID       string     `json:"id"`
	Date     string     `json:"date"`
	Status   string     `json:"status"`
	PunchIn  *time.Time `json:"punchIn,omitempty"`
	PunchOut *time.Time `json:"punchOut,omitempty"`
	Location Location   `json:"location"`
	Image    string     `json:"image,omitempty"`
	ImageLen int        `json:"imageSize,omitempty"`
}

// Location is where a punch was made.
type Location struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Address   string  `json:"address"`
}

// authorize returns the bearer token when it is one the service issued and
// has not revoked.
func (m *AttendanceService) authorize(r *http.Request) (string, bool) {
	authHeader := r.Header.Get("Authorization")
	token, ok := strings.CutPrefix(authHeader, "Bearer ")
	if !ok || token == "" {
		return "", false
	}
	if err := m.verifyJWT(token, "access"); err != nil {
		return "", false
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return token, m.accessTokens[token]
}

// defaultResourceHandler serves the protected /attendance endpoints
func (m *AttendanceService) defaultResourceHandler(w http.ResponseWriter, r *http.Request) {
	if _, ok := m.authorize(r); !ok {
		writeMessage(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	switch {
	case r.URL.Path == "/attendance/punch-in" && r.Method == http.MethodPost:
		m.punchIn(w, r)
	case r.URL.Path == "/attendance/punch-out" && r.Method == http.MethodPost:
		m.punchOut(w, r)
	case r.URL.Path == "/attendance/history" && r.Method == http.MethodGet:
		writeJSON(w, http.StatusOK, map[string]interface{}{"success": true, "data": m.Records()})
	case r.URL.Path == "/attendance/today" && r.Method == http.MethodGet:
		m.today(w)
	default:
		writeMessage(w, http.StatusNotFound, "Not found")
	}
}

func (m *AttendanceService) punchIn(w http.ResponseWriter, r *http.Request) {
	location, image, size, ok := readPunch(w, r)
	if !ok {
		return
	}
	now := time.Now()
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.todayIndex(now) >= 0 {
		writeMessage(w, http.StatusBadRequest, "Already punched in today")
		return
	}
	record := Record{
		ID:       uuid.NewString(),
		Date:     now.Format(time.DateOnly),
		Status:   "PRESENT",
		PunchIn:  &now,
		Location: location,
		Image:    image,
		ImageLen: size,
	}
	m.records = append(m.records, record)
	writeJSON(w, http.StatusCreated, map[string]interface{}{"success": true, "message": "Punched in", "data": record})
}

func (m *AttendanceService) punchOut(w http.ResponseWriter, r *http.Request) {
	location, image, size, ok := readPunch(w, r)
	if !ok {
		return
	}
	now := time.Now()
	m.mu.Lock()
	defer m.mu.Unlock()
	index := m.todayIndex(now)
	if index < 0 {
		writeMessage(w, http.StatusBadRequest, "Not punched in today")
		return
	}
	record := &m.records[index]
	if record.PunchOut != nil {
		writeMessage(w, http.StatusBadRequest, "Already punched out today")
		return
	}
	record.PunchOut = &now
	record.Location = location
	record.Image = image
	record.ImageLen = size
	writeJSON(w, http.StatusOK, map[string]interface{}{"success": true, "message": "Punched out", "data": *record})
}

func (m *AttendanceService) today(w http.ResponseWriter) {
	now := time.Now()
	m.mu.Lock()
	index := m.todayIndex(now)
	data := map[string]interface{}{"isCheckedIn": false, "isCheckedOut": false, "status": "ABSENT"}
	if index >= 0 {
		record := m.records[index]
		data["isCheckedIn"] = true
		data["isCheckedOut"] = record.PunchOut != nil
		data["status"] = record.Status
		data["location"] = record.Location
		data["punchIn"] = record.PunchIn
		data["punchOut"] = record.PunchOut
	}
	m.mu.Unlock()
	writeJSON(w, http.StatusOK, map[string]interface{}{"success": true, "data": data})
}

// todayIndex expects m.mu held.
func (m *AttendanceService) todayIndex(now time.Time) int {
	date := now.Format(time.DateOnly)
	for i := range m.records {
		if m.records[i].Date == date {
			return i
		}
	}
	return -1
}

func readPunch(w http.ResponseWriter, r *http.Request) (Location, string, int, bool) {
	if err := r.ParseMultipartForm(10 << 20); err != nil {
		writeMessage(w, http.StatusBadRequest, "Multipart form expected")
		return Location{}, "", 0, false
	}
	latitude, latErr := strconv.ParseFloat(r.FormValue("latitude"), 64)
	longitude, lngErr := strconv.ParseFloat(r.FormValue("longitude"), 64)
	if latErr != nil || lngErr != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid coordinates")
		return Location{}, "", 0, false
	}
	address := strings.TrimSpace(r.FormValue("address"))
	if address == "" {
		writeMessage(w, http.StatusBadRequest, "Invalid address")
		return Location{}, "", 0, false
	}
	file, header, err := r.FormFile("image")
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "Selfie image is required")
		return Location{}, "", 0, false
	}
	defer file.Close()
	data, err := io.ReadAll(file)
	if err != nil || len(data) == 0 {
		writeMessage(w, http.StatusBadRequest, "Selfie image is required")
		return Location{}, "", 0, false
	}
	return Location{Latitude: latitude, Longitude: longitude, Address: address}, header.Filename, len(data), true
}
