package models

import "time"

// TimestampLayout is the display format of a dream's creation time,
// e.g. "24.12.2025 09:30". Ordering uses CreatedAt, never this string.
const TimestampLayout = "02.01.2006 15:04"

// Dream is one persisted analysis result tied to a user. Records are created
// exactly once per successful analysis and never updated.
type Dream struct {
	ID             string    `json:"id"`
	UserID         string    `json:"user_id"`
	Title          string    `json:"title"`
	Emotion        string    `json:"emotion"`
	DreamText      string    `json:"dream_text"`
	Interpretation string    `json:"interpretation"`
	ImageURL       string    `json:"image_url"`
	Timestamp      string    `json:"timestamp"`
	CreatedAt      time.Time `json:"-"`
}
