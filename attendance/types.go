package attendance

import "time"

// Punch is the input of a punch-in or punch-out; location and image are
// acquired by the caller.
type Punch struct {
	Latitude  float64
	Longitude float64
	Address   string
	Image     Image
}

// Image is the selfie attached to a punch.
type Image struct {
	Name        string
	ContentType string
	Data        []byte
}

type Location struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Address   string  `json:"address"`
}

// Record is one attendance day.
type Record struct {
	ID       string     `json:"id"`
	Date     string     `json:"date"`
	Status   string     `json:"status"`
	PunchIn  *time.Time `json:"punchIn,omitempty"`
	PunchOut *time.Time `json:"punchOut,omitempty"`
	Location Location   `json:"location"`
	Image    string     `json:"image,omitempty"`
}

// Today is the current day state.
type Today struct {
	IsCheckedIn  bool       `json:"isCheckedIn"`
	IsCheckedOut bool       `json:"isCheckedOut"`
	Status       string     `json:"status"`
	Location     *Location  `json:"location,omitempty"`
	PunchIn      *time.Time `json:"punchIn,omitempty"`
	PunchOut     *time.Time `json:"punchOut,omitempty"`
}
