package services

import (
	"context"
	"time"

	"github.com/SscSPs/social_media_app/internal/core/domain"
)

// UpdateMeInput lists the profile fields a user may change. Nil fields are untouched.
type UpdateMeInput struct {
	Name        *string
	DateOfBirth *time.Time
	Bio         *string
	Location    *string
	Website     *string
	Username    *string
	Avatar      *string
	CoverPhoto  *string
}

// UserReaderSvc defines read operations for user data
type UserReaderSvc interface {
	// GetMe retrieves the authenticated user's own profile.
	GetMe(ctx context.Context, userID string) (*domain.User, error)

	// GetProfile retrieves a public profile by username.
	GetProfile(ctx context.Context, username string) (*domain.User, error)
}

// UserWriterSvc defines write operations for user data
type UserWriterSvc interface {
	// UpdateMe changes profile fields of the authenticated user.
	UpdateMe(ctx context.Context, userID string, in UpdateMeInput) (*domain.User, error)
}

// FollowSvc defines follow graph operations. Both are idempotent.
type FollowSvc interface {
	Follow(ctx context.Context, userID, followedUserID string) error
	Unfollow(ctx context.Context, userID, followedUserID string) error
}

// UserSvcFacade combines all user-related service interfaces
type UserSvcFacade interface {
	UserReaderSvc
	UserWriterSvc
	FollowSvc
}
