package domain

import "time"

// ClockToken is the opaque code shown on the shared attendance terminal. It
// proves physical presence, not identity: the scanning staff member's own
// authenticated id decides whose status flips. Single use; consumed on the
// first successful scan or swept after expiry.
type ClockToken struct {
	Value     string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// Expired reports whether the token is past its validity window at now.
func (t ClockToken) Expired(now time.Time) bool {
	return now.After(t.ExpiresAt)
}
