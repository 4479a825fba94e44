package usage

import "time"

// Usage is a user's AI-parse consumption within the current window.
// The window rolls over lazily: any read or consume past ResetsAt
// starts a fresh period.
type Usage struct {
	Plan     string    `json:"plan"`
	Limit    int       `json:"limit"`
	Used     int       `json:"used"`
	ResetsAt time.Time `json:"resetsAt"`
}
