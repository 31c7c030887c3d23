package models

import "time"

type WeakTopic struct {
	Topic       string    `json:"topic"`
	ErrorCount  int       `json:"error_count"`
	LastErrorAt time.Time `json:"last_error"`
	NeedsReview bool      `json:"needs_review"`
}
