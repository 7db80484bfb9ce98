package models

import "time"

// LoginLog — аудит входа. SessionID обнуляется при удалении сессии,
// сама строка лога остаётся.
type LoginLog struct {
	ID         int64     `json:"id"`
	SessionID  *string   `json:"session_id,omitempty"`
	UserID     int64     `json:"user_id"`
	Browser    string    `json:"browser"`
	Device     string    `json:"device"`
	OS         string    `json:"os"`
	IP         string    `json:"ip"`
	LoggedInAt time.Time `json:"logged_in_at"`
}
