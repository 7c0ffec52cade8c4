package repositories

import (
	"context"

	"github.com/SscSPs/social_media_app/internal/core/domain"
)

// FollowerRepository stores edges of the follow graph.
type FollowerRepository interface {
	// InsertFollower creates the edge if it does not exist yet.
	InsertFollower(ctx context.Context, follower domain.Follower) error

	// DeleteFollower removes the edge and reports whether it existed.
	DeleteFollower(ctx context.Context, userID, followedUserID string) (bool, error)

	// FindFollower returns apperrors.ErrNotFound when the edge does not exist.
	FindFollower(ctx context.Context, userID, followedUserID string) (*domain.Follower, error)
}
