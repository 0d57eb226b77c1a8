package models

import "time"

// Token is a session. Expires is unix milliseconds.
type Token struct {
	ID      string `json:"id"`
	Email   string `json:"email"`
	Expires int64  `json:"expires"`
}

// ExpiresAt returns Expires as a time.
func (t *Token) ExpiresAt() time.Time {
	return time.UnixMilli(t.Expires)
}

// Live reports whether the token is still valid at now.
func (t *Token) Live(now time.Time) bool {
	return t.Expires > now.UnixMilli()
}
