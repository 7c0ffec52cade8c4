package models

import "time"

// Follower is the stored form of a follow edge.
type Follower struct {
	UserID         string    `bson:"user_id" db:"user_id"`
	FollowedUserID string    `bson:"followed_user_id" db:"followed_user_id"`
	CreatedAt      time.Time `bson:"created_at" db:"created_at"`
}
