package models

import "time"

// Identity is the signed-in user attached to a session.
type Identity struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	Name      string `json:"name"`
	AvatarURL string `json:"avatarUrl"`
	Provider  string `json:"provider,omitempty"` // "password" or the OAuth provider name
}

// Session is the persisted auth state for one client.
// ExpiresAt is a unix timestamp; sessions past it are treated as signed out
// on the next read (lazy expiry, not actively scheduled).
type Session struct {
	User      Identity `json:"user"`
	ExpiresAt int64    `json:"expires_at"`
}

// Expired reports whether the session's expiry is in the past.
func (s *Session) Expired(now time.Time) bool {
	return s.ExpiresAt < now.Unix()
}
