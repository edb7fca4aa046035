package entity

import "time"

// Session is the server-side record referenced by the session cookie.
type Session struct {
	ID        string    `json:"id"`
	Token     string    `json:"token"`
	User      UserInfo  `json:"user"`
	CreatedAt time.Time `json:"createdAt"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// Expired reports whether the session is past its expiry at now.
func (s *Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && !now.Before(s.ExpiresAt)
}
