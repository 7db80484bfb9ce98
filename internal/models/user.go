package models

import "time"

type User struct {
	ID            int64     `json:"id"`
	FullName      string    `json:"full_name"`
	UserName      string    `json:"user_name"`
	Email         string    `json:"email"`
	ProfilePhoto  string    `json:"profile_photo,omitempty"`
	RoleID        int64     `json:"role_id,omitempty"`
	EmailVerified bool      `json:"email_verified"`
	CreatedAt     time.Time `json:"created_at"`
}

// Password — одна строка на пользователя, user_id = PK.
// Хранится только bcrypt-хэш, plaintext не пишем никогда.
type Password struct {
	UserID int64  `json:"-"`
	Hash   string `json:"-"`
}

type SignupRequest struct {
	Name     string `json:"name" binding:"required,min=2"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}
