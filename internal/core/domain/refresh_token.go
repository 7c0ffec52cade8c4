package domain

import "time"

// RefreshTokenRecord is the server-side record of an issued refresh token.
// The token is usable only while this record exists.
type RefreshTokenRecord struct {
	Token     string           `json:"token"`
	UserID    string           `json:"user_id"`
	Verify    UserVerifyStatus `json:"verify"`
	IssuedAt  time.Time        `json:"iat"`
	ExpiresAt time.Time        `json:"exp"`
	CreatedAt time.Time        `json:"created_at"`
}

// Expired reports whether the token is past its expiry at the given time.
func (t RefreshTokenRecord) Expired(now time.Time) bool {
	return !now.Before(t.ExpiresAt)
}
