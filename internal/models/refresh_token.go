package models

import "time"

// RefreshToken is the stored form of an issued refresh token. Exp carries the
// store TTL in the document store.
type RefreshToken struct {
	Token     string    `bson:"token" db:"token"`
	UserID    string    `bson:"user_id" db:"user_id"`
	Verify    int       `bson:"verify" db:"verify"`
	Iat       time.Time `bson:"iat" db:"iat"`
	Exp       time.Time `bson:"exp" db:"exp"`
	CreatedAt time.Time `bson:"created_at" db:"created_at"`
}
