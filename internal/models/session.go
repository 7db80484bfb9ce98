package models

import "time"

// Session — срок жизни абсолютный (created+14d), не скользящий.
// Протухшие строки не чистятся активно, их отсекает middleware.
type Session struct {
	ID        string    `json:"id"`
	UserID    int64     `json:"user_id"`
	ExpiresAt time.Time `json:"expires_at"`
}

func (s *Session) Expired(now time.Time) bool {
	return now.After(s.ExpiresAt)
}
