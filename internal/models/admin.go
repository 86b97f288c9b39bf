package models

import "time"

type Admin struct {
	ID           int64  `json:"admin_id"`
	LastName     string `json:"last_name"`
	FirstName    string `json:"first_name"`
	MiddleName   string `json:"middle_name"`
	Login        string `json:"login"`
	PasswordHash string `json:"-"`
	Phone        string `json:"phone"`
	Email        string `json:"email"`
}

// Session identifies a logged-in admin. The presentation shell holds one and
// passes it to every entity manager instead of keeping global window state.
type Session struct {
	Token     string    `json:"token"`
	AdminID   int64     `json:"admin_id"`
	AdminName string    `json:"admin_name"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Expired reports whether the session is past its expiry.
func (s *Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && now.After(s.ExpiresAt)
}
