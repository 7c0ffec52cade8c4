package domain

import "time"

// Follower is an edge of the follow graph: UserID follows FollowedUserID.
type Follower struct {
	UserID         string    `json:"user_id"`
	FollowedUserID string    `json:"followed_user_id"`
	CreatedAt      time.Time `json:"created_at"`
}
