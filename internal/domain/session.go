package domain

import "time"

// SessionToken is a signed credential asserting that SubjectID authenticated.
// Tokens are never stored or revoked; they simply expire.
type SessionToken struct {
	Token     string    `json:"token"`
	SubjectID int64     `json:"subject_id"`
	IssuedAt  time.Time `json:"issued_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// ExpirationMillis reports the expiry as milliseconds since the Unix epoch,
// the unit the front end works with.
func (t SessionToken) ExpirationMillis() int64 {
	return t.ExpiresAt.UnixMilli()
}
