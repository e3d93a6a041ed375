package domain

import "time"

// Session is a server-side record mapping a cookie token to a logged-in user.
// The cookie carries only the session ID (wrapped in an encrypted token);
// everything else lives here.
type Session struct {
	ID        string    `json:"id"`
	UserID    int64     `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// IsExpired reports whether the session has passed its expiry time.
func (s *Session) IsExpired() bool {
	return time.Now().After(s.ExpiresAt)
}
